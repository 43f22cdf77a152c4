// Package store holds the flat row form shared by the report stores.
package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
)

// unitSeparator joins the ordered unit labels in the units column.
const unitSeparator = ", "

// Columns is the persisted column order.
var Columns = []string{
	"id", "received_at", "text", "event_type", "priority", "unit", "units",
	"district", "neighborhood", "avenue", "street", "region",
	"lat", "lon", "geo_source", "geo_label", "source", "processed_at",
}

// Row is one persisted report. Location fields are empty when absent.
type Row struct {
	ID           string  `db:"id"`
	ReceivedAt   string  `db:"received_at"`
	Text         string  `db:"text"`
	EventType    string  `db:"event_type"`
	Priority     string  `db:"priority"`
	Unit         string  `db:"unit"`
	Units        string  `db:"units"`
	District     string  `db:"district"`
	Neighborhood string  `db:"neighborhood"`
	Avenue       string  `db:"avenue"`
	Street       string  `db:"street"`
	Region       string  `db:"region"`
	Lat          float64 `db:"lat"`
	Lon          float64 `db:"lon"`
	GeoSource    string  `db:"geo_source"`
	GeoLabel     string  `db:"geo_label"`
	Source       string  `db:"source"`
	ProcessedAt  string  `db:"processed_at"`
}

// FromReport flattens a report. The facility is not persisted.
func FromReport(r domain.Report) Row {
	a := r.Analysis
	units := make([]string, len(a.Units))
	for i, u := range a.Units {
		units[i] = u.String()
	}
	return Row{
		ID:           r.ID,
		ReceivedAt:   formatTime(r.ReceivedAt),
		Text:         r.Text,
		EventType:    a.EventType.String(),
		Priority:     a.Priority.String(),
		Unit:         a.PrimaryUnit().String(),
		Units:        strings.Join(units, unitSeparator),
		District:     deref(a.District),
		Neighborhood: deref(a.Neighborhood),
		Avenue:       deref(a.Avenue),
		Street:       deref(a.Street),
		Region:       deref(a.Region),
		Lat:          r.Geo.Lat,
		Lon:          r.Geo.Lon,
		GeoSource:    string(r.GeoSource),
		GeoLabel:     r.GeoLabel,
		Source:       r.Source,
		ProcessedAt:  formatTime(r.ProcessedAt),
	}
}

// Report rebuilds the domain report from a row.
func (row Row) Report() (domain.Report, error) {
	eventType, err := domain.ParseEventType(row.EventType)
	if err != nil {
		return domain.Report{}, fmt.Errorf("row %s: %w", row.ID, err)
	}
	priority, err := domain.ParsePriority(row.Priority)
	if err != nil {
		return domain.Report{}, fmt.Errorf("row %s: %w", row.ID, err)
	}
	var units []domain.Unit
	if row.Units != "" {
		for _, label := range strings.Split(row.Units, unitSeparator) {
			u, err := domain.ParseUnit(label)
			if err != nil {
				return domain.Report{}, fmt.Errorf("row %s: %w", row.ID, err)
			}
			units = append(units, u)
		}
	}
	if len(units) == 0 {
		units = []domain.Unit{primaryUnit(row.Unit)}
	}
	receivedAt, err := parseTime(row.ReceivedAt)
	if err != nil {
		return domain.Report{}, fmt.Errorf("row %s received_at: %w", row.ID, err)
	}
	processedAt, err := parseTime(row.ProcessedAt)
	if err != nil {
		return domain.Report{}, fmt.Errorf("row %s processed_at: %w", row.ID, err)
	}

	return domain.Report{
		ID:         row.ID,
		Text:       row.Text,
		Source:     row.Source,
		ReceivedAt: receivedAt,
		Analysis: domain.AnalysisResult{
			EventType: eventType,
			Priority:  priority,
			Units:     units,
			Location: domain.Location{
				District:     optional(row.District),
				Neighborhood: optional(row.Neighborhood),
				Avenue:       optional(row.Avenue),
				Street:       optional(row.Street),
				Region:       optional(row.Region),
			},
		},
		Geo:         domain.Geo{Lat: row.Lat, Lon: row.Lon},
		GeoLabel:    row.GeoLabel,
		GeoSource:   domain.GeoSource(row.GeoSource),
		ProcessedAt: processedAt,
	}, nil
}

// Values returns the row as strings in Columns order.
func (row Row) Values() []string {
	return []string{
		row.ID, row.ReceivedAt, row.Text, row.EventType, row.Priority, row.Unit, row.Units,
		row.District, row.Neighborhood, row.Avenue, row.Street, row.Region,
		strconv.FormatFloat(row.Lat, 'f', -1, 64), strconv.FormatFloat(row.Lon, 'f', -1, 64),
		row.GeoSource, row.GeoLabel, row.Source, row.ProcessedAt,
	}
}

// RowFromRecord reads a record using a header-derived column index. Columns
// missing from the header stay empty, so older files with fewer columns
// still load.
func RowFromRecord(index map[string]int, record []string) (Row, error) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}
	lat, err := parseFloat(get("lat"))
	if err != nil {
		return Row{}, fmt.Errorf("lat: %w", err)
	}
	lon, err := parseFloat(get("lon"))
	if err != nil {
		return Row{}, fmt.Errorf("lon: %w", err)
	}
	return Row{
		ID:           get("id"),
		ReceivedAt:   get("received_at"),
		Text:         get("text"),
		EventType:    get("event_type"),
		Priority:     get("priority"),
		Unit:         get("unit"),
		Units:        get("units"),
		District:     get("district"),
		Neighborhood: get("neighborhood"),
		Avenue:       get("avenue"),
		Street:       get("street"),
		Region:       get("region"),
		Lat:          lat,
		Lon:          lon,
		GeoSource:    get("geo_source"),
		GeoLabel:     get("geo_label"),
		Source:       get("source"),
		ProcessedAt:  get("processed_at"),
	}, nil
}

// HeaderIndex maps column names to their position in a header record.
func HeaderIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	return index
}

// Dedupe keeps the last row written for each ID, at the position the ID
// first appeared.
func Dedupe(rows []Row) []Row {
	pos := make(map[string]int, len(rows))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if i, ok := pos[r.ID]; ok {
			out[i] = r
			continue
		}
		pos[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}

// primaryUnit recovers the unit list of a row written without the units
// column.
func primaryUnit(label string) domain.Unit {
	if u, err := domain.ParseUnit(label); err == nil {
		return u
	}
	return domain.DefaultUnit
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
