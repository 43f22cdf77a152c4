package domain

import "time"

// Feedback is an operator's correction of a report's classification. The
// predicted labels are copied from the report so the record stands alone.
type Feedback struct {
	ReportID          string    `json:"report_id"`
	Text              string    `json:"text"`
	PredictedEvent    EventType `json:"predicted_event_type"`
	CorrectEvent      EventType `json:"correct_event_type"`
	PredictedPriority Priority  `json:"predicted_priority"`
	CorrectPriority   Priority  `json:"correct_priority"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewFeedback records the correct labels for r, stamped from the package
// clock.
func NewFeedback(r Report, event EventType, priority Priority) Feedback {
	return Feedback{
		ReportID:          r.ID,
		Text:              r.Text,
		PredictedEvent:    r.Analysis.EventType,
		CorrectEvent:      event,
		PredictedPriority: r.Analysis.Priority,
		CorrectPriority:   priority,
		CreatedAt:         clock.Now().UTC(),
	}
}

// Agrees reports whether the operator confirmed both predicted labels.
func (f Feedback) Agrees() bool {
	return f.PredictedEvent == f.CorrectEvent && f.PredictedPriority == f.CorrectPriority
}
