package store

import (
	"fmt"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
)

// FeedbackColumns is the persisted feedback column order. The Turkish
// names match the correction sheets operators already keep.
var FeedbackColumns = []string{
	"report_id", "tarih", "ihbar",
	"tahmin_olay", "dogru_olay", "tahmin_oncelik", "dogru_oncelik",
}

// FeedbackRow is one persisted correction.
type FeedbackRow struct {
	ReportID          string `db:"report_id"`
	CreatedAt         string `db:"tarih"`
	Text              string `db:"ihbar"`
	PredictedEvent    string `db:"tahmin_olay"`
	CorrectEvent      string `db:"dogru_olay"`
	PredictedPriority string `db:"tahmin_oncelik"`
	CorrectPriority   string `db:"dogru_oncelik"`
}

// FromFeedback flattens a correction.
func FromFeedback(f domain.Feedback) FeedbackRow {
	return FeedbackRow{
		ReportID:          f.ReportID,
		CreatedAt:         formatTime(f.CreatedAt),
		Text:              f.Text,
		PredictedEvent:    f.PredictedEvent.String(),
		CorrectEvent:      f.CorrectEvent.String(),
		PredictedPriority: f.PredictedPriority.String(),
		CorrectPriority:   f.CorrectPriority.String(),
	}
}

// Feedback rebuilds the domain correction from a row.
func (row FeedbackRow) Feedback() (domain.Feedback, error) {
	var (
		f   = domain.Feedback{ReportID: row.ReportID, Text: row.Text}
		err error
	)
	if f.PredictedEvent, err = domain.ParseEventType(row.PredictedEvent); err != nil {
		return domain.Feedback{}, fmt.Errorf("feedback %s: %w", row.ReportID, err)
	}
	if f.CorrectEvent, err = domain.ParseEventType(row.CorrectEvent); err != nil {
		return domain.Feedback{}, fmt.Errorf("feedback %s: %w", row.ReportID, err)
	}
	if f.PredictedPriority, err = domain.ParsePriority(row.PredictedPriority); err != nil {
		return domain.Feedback{}, fmt.Errorf("feedback %s: %w", row.ReportID, err)
	}
	if f.CorrectPriority, err = domain.ParsePriority(row.CorrectPriority); err != nil {
		return domain.Feedback{}, fmt.Errorf("feedback %s: %w", row.ReportID, err)
	}
	if f.CreatedAt, err = parseTime(row.CreatedAt); err != nil {
		return domain.Feedback{}, fmt.Errorf("feedback %s tarih: %w", row.ReportID, err)
	}
	return f, nil
}

// Values returns the row as strings in FeedbackColumns order.
func (row FeedbackRow) Values() []string {
	return []string{
		row.ReportID, row.CreatedAt, row.Text,
		row.PredictedEvent, row.CorrectEvent, row.PredictedPriority, row.CorrectPriority,
	}
}

// FeedbackRowFromRecord reads a feedback record using a header-derived
// column index.
func FeedbackRowFromRecord(index map[string]int, record []string) FeedbackRow {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}
	return FeedbackRow{
		ReportID:          get("report_id"),
		CreatedAt:         get("tarih"),
		Text:              get("ihbar"),
		PredictedEvent:    get("tahmin_olay"),
		CorrectEvent:      get("dogru_olay"),
		PredictedPriority: get("tahmin_oncelik"),
		CorrectPriority:   get("dogru_oncelik"),
	}
}
