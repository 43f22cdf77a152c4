package dataset

import "github.com/couchcryptid/akom-triage-service/internal/domain"

// Score counts correct predictions out of a total.
type Score struct {
	Correct int
	Total   int
}

// Accuracy is Correct/Total, or 0 for an empty score.
func (s Score) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

func (s *Score) add(ok bool) {
	s.Total++
	if ok {
		s.Correct++
	}
}

// Evaluation compares analyzer output with dataset labels.
type Evaluation struct {
	Records   int
	EventType Score
	Priority  Score
	District  Score
	// PerEvent is keyed by the labeled event type.
	PerEvent map[domain.EventType]Score
	// Confusion counts labeled -> predicted event types for misses only.
	Confusion map[domain.EventType]map[domain.EventType]int
}

// Evaluate analyzes every record's text and scores the result. Records
// without a district label are left out of the district score.
func Evaluate(a *domain.Analyzer, records []Record) Evaluation {
	ev := Evaluation{
		Records:   len(records),
		PerEvent:  make(map[domain.EventType]Score),
		Confusion: make(map[domain.EventType]map[domain.EventType]int),
	}
	for _, rec := range records {
		res := a.Analyze(rec.Text)

		hit := res.EventType == rec.EventType
		ev.EventType.add(hit)
		s := ev.PerEvent[rec.EventType]
		s.add(hit)
		ev.PerEvent[rec.EventType] = s
		if !hit {
			row := ev.Confusion[rec.EventType]
			if row == nil {
				row = make(map[domain.EventType]int)
				ev.Confusion[rec.EventType] = row
			}
			row[res.EventType]++
		}

		ev.Priority.add(res.Priority == rec.Priority)

		if rec.District != "" {
			ev.District.add(res.District != nil && *res.District == rec.District)
		}
	}
	return ev
}
