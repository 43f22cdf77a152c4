package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyText is returned when a submission carries no report text.
var ErrEmptyText = errors.New("report text is empty")

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Submission is an incoming report before triage. It is the JSON payload
// of the source topic and of POST /v1/reports.
type Submission struct {
	Text       string    `json:"text"`
	Source     string    `json:"source,omitempty"`
	ReceivedAt time.Time `json:"received_at,omitempty"`
}

// GeoSource records which step of the fallback chain placed a report.
type GeoSource string

const (
	GeoSourceGeocoded GeoSource = "geocoded"
	GeoSourceDistrict GeoSource = "district"
	GeoSourceDefault  GeoSource = "default"
)

// Report is a triaged submission with its coordinates and nearest facility.
type Report struct {
	ID          string         `json:"id"`
	Text        string         `json:"text"`
	Source      string         `json:"source,omitempty"`
	ReceivedAt  time.Time      `json:"received_at"`
	Analysis    AnalysisResult `json:"analysis"`
	Geo         Geo            `json:"geo"`
	GeoLabel    string         `json:"geo_label,omitempty"`
	GeoSource   GeoSource      `json:"geo_source"`
	Facility    *Facility      `json:"facility,omitempty"`
	ProcessedAt time.Time      `json:"processed_at"`
}

// ParseRawReport decodes a source-topic message. A missing received_at is
// taken from the message timestamp, and a missing source from the topic.
func ParseRawReport(raw RawEvent) (Submission, error) {
	var sub Submission
	if err := json.Unmarshal(raw.Value, &sub); err != nil {
		return Submission{}, fmt.Errorf("parse raw report: %w", err)
	}
	if sub.ReceivedAt.IsZero() {
		sub.ReceivedAt = raw.Timestamp
	}
	if sub.Source == "" {
		sub.Source = raw.Topic
	}
	return NormalizeSubmission(sub)
}

// NormalizeSubmission trims the text and fills a missing ReceivedAt from
// the package clock.
func NormalizeSubmission(sub Submission) (Submission, error) {
	sub.Text = strings.TrimSpace(sub.Text)
	if sub.Text == "" {
		return Submission{}, ErrEmptyText
	}
	sub.Source = strings.TrimSpace(sub.Source)
	if sub.ReceivedAt.IsZero() {
		sub.ReceivedAt = clock.Now()
	}
	sub.ReceivedAt = sub.ReceivedAt.UTC()
	return sub, nil
}

// NewReport pairs a submission with its analysis. Location and facility
// enrichment happen afterwards.
func NewReport(sub Submission, analysis AnalysisResult) Report {
	return Report{
		ID:         generateID(sub.Text, sub.Source, sub.ReceivedAt),
		Text:       sub.Text,
		Source:     sub.Source,
		ReceivedAt: sub.ReceivedAt,
		Analysis:   analysis,
		GeoSource:  GeoSourceDefault,
		Geo:        CityCenter,
	}
}

// Stamp sets ProcessedAt from the package clock.
func (r Report) Stamp() Report {
	r.ProcessedAt = clock.Now().UTC()
	return r
}

// SerializeReport encodes a report for the sink topic, keyed by ID.
func SerializeReport(r Report) (OutputEvent, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize report %s: %w", r.ID, err)
	}
	return OutputEvent{
		Key:   []byte(r.ID),
		Value: data,
		Headers: map[string]string{
			"event_type":   r.Analysis.EventType.String(),
			"priority":     r.Analysis.Priority.String(),
			"processed_at": r.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}

// generateID produces a deterministic ID from the submission's key fields,
// so replaying the same message yields the same report ID.
func generateID(text, source string, receivedAt time.Time) string {
	input := fmt.Sprintf("%s|%s|%s", text, source, receivedAt.UTC().Format(time.RFC3339Nano))
	hash := sha256.Sum256([]byte(input))
	return "rpt-" + hex.EncodeToString(hash[:8])
}
