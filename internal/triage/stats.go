package triage

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
)

// TopDistrictLimit caps Stats.TopDistricts.
const TopDistrictLimit = 15

// ReportFilter selects stored reports. Nil and empty fields match
// everything; set fields must all match.
type ReportFilter struct {
	EventType *domain.EventType
	Priority  *domain.Priority
	District  string
}

// Match reports whether r passes the filter. District compares exactly.
func (f ReportFilter) Match(r domain.Report) bool {
	if f.EventType != nil && r.Analysis.EventType != *f.EventType {
		return false
	}
	if f.Priority != nil && r.Analysis.Priority != *f.Priority {
		return false
	}
	if f.District != "" && (r.Analysis.District == nil || *r.Analysis.District != f.District) {
		return false
	}
	return true
}

// DistrictCount is one row of the district ranking.
type DistrictCount struct {
	District string `json:"district"`
	Count    int    `json:"count"`
}

// Stats is the aggregate view of a set of reports. ByUnit counts the
// primary unit of each report.
type Stats struct {
	Total        int                      `json:"total"`
	ByPriority   map[domain.Priority]int  `json:"by_priority"`
	ByEventType  map[domain.EventType]int `json:"by_event_type"`
	ByUnit       map[domain.Unit]int      `json:"by_unit"`
	TopDistricts []DistrictCount          `json:"top_districts"`
}

// Summarize counts reports by priority, event type and primary unit, and
// ranks the districts with the most reports. Reports without a district
// are left out of the ranking; ties are ordered by name.
func Summarize(reports []domain.Report) Stats {
	st := Stats{
		Total:        len(reports),
		ByPriority:   make(map[domain.Priority]int),
		ByEventType:  make(map[domain.EventType]int),
		ByUnit:       make(map[domain.Unit]int),
		TopDistricts: []DistrictCount{},
	}
	districts := make(map[string]int)
	for _, r := range reports {
		st.ByPriority[r.Analysis.Priority]++
		st.ByEventType[r.Analysis.EventType]++
		st.ByUnit[r.Analysis.PrimaryUnit()]++
		if d := r.Analysis.District; d != nil {
			districts[*d]++
		}
	}

	for name, n := range districts {
		st.TopDistricts = append(st.TopDistricts, DistrictCount{District: name, Count: n})
	}
	slices.SortFunc(st.TopDistricts, func(a, b DistrictCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.District, b.District)
	})
	if len(st.TopDistricts) > TopDistrictLimit {
		st.TopDistricts = st.TopDistricts[:TopDistrictLimit]
	}
	return st
}
