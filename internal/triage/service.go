// Package triage is the request-facing service behind the HTTP API and the
// CLI. It runs the report transformer, transcribes audio, persists results
// and records operator feedback.
package triage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
	"github.com/couchcryptid/akom-triage-service/internal/pipeline"
)

var (
	// ErrNoTranscriber is returned by SubmitAudio when transcription is not configured.
	ErrNoTranscriber = errors.New("transcription is not configured")
	// ErrNoSpeech is returned when the audio contained no recognizable speech.
	ErrNoSpeech = errors.New("no speech recognized in audio")
	// ErrNoStore is returned by List when no report store is configured.
	ErrNoStore = errors.New("report store is not configured")
	// ErrTranscription wraps failures of the transcription provider.
	ErrTranscription = errors.New("transcription failed")
	// ErrNoFeedbackStore is returned by SubmitFeedback when feedback is not persisted.
	ErrNoFeedbackStore = errors.New("feedback store is not configured")
	// ErrReportNotFound is returned when feedback names an unknown report.
	ErrReportNotFound = errors.New("report not found")
)

// Result is a processed submission. StoreErr is set when the report was
// triaged but could not be persisted; the report itself is still valid.
//
// Duplicate is the latest stored report of the same event type in the same
// district, meaning a team is likely already on that incident.
type Result struct {
	Report     domain.Report
	Transcript string
	Duplicate  *domain.Report
	StoreErr   error
}

// Service wires the transformer to the optional transcriber and stores.
type Service struct {
	processor   *pipeline.ReportTransformer
	transcriber domain.Transcriber
	store       domain.ReportStore
	feedback    domain.FeedbackStore
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithFeedbackStore enables SubmitFeedback and Feedback.
func WithFeedbackStore(fs domain.FeedbackStore) Option {
	return func(s *Service) { s.feedback = fs }
}

// New creates a Service. transcriber and store may be nil.
func New(
	processor *pipeline.ReportTransformer,
	transcriber domain.Transcriber,
	store domain.ReportStore,
	metrics *observability.Metrics,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		processor:   processor,
		transcriber: transcriber,
		store:       store,
		metrics:     metrics,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze classifies text without enrichment or persistence.
func (s *Service) Analyze(text string) domain.AnalysisResult {
	return s.processor.Analyze(text)
}

// Submit triages a submission and appends it to the store.
func (s *Service) Submit(ctx context.Context, sub domain.Submission) (Result, error) {
	report, err := s.processor.Process(ctx, sub)
	if err != nil {
		return Result{}, err
	}
	// The duplicate check reads the store before this report joins it.
	dup := s.findDuplicate(ctx, report)
	return Result{Report: report, Duplicate: dup, StoreErr: s.persist(ctx, report)}, nil
}

// SubmitAudio transcribes a recording and submits the transcript.
func (s *Service) SubmitAudio(ctx context.Context, audio []byte, filename, source string) (Result, error) {
	if s.transcriber == nil {
		return Result{}, ErrNoTranscriber
	}
	text, err := s.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrTranscription, err)
	}
	if text == "" {
		return Result{}, ErrNoSpeech
	}

	res, err := s.Submit(ctx, domain.Submission{Text: text, Source: source})
	if err != nil {
		return Result{}, err
	}
	res.Transcript = text
	return res, nil
}

// List returns the stored reports that match filter, in store order.
func (s *Service) List(ctx context.Context, filter ReportFilter) ([]domain.Report, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Report, 0, len(all))
	for _, r := range all {
		if filter.Match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Stats summarizes the stored reports that match filter.
func (s *Service) Stats(ctx context.Context, filter ReportFilter) (Stats, error) {
	reports, err := s.List(ctx, filter)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(reports), nil
}

// SubmitFeedback records the operator's labels for a stored report.
func (s *Service) SubmitFeedback(ctx context.Context, reportID string, event domain.EventType, priority domain.Priority) (domain.Feedback, error) {
	if s.feedback == nil {
		return domain.Feedback{}, ErrNoFeedbackStore
	}
	report, err := s.find(ctx, reportID)
	if err != nil {
		return domain.Feedback{}, err
	}

	f := domain.NewFeedback(report, event, priority)
	if err := s.feedback.AppendFeedback(ctx, f); err != nil {
		return domain.Feedback{}, fmt.Errorf("record feedback for %s: %w", reportID, err)
	}
	verdict := "corrected"
	if f.Agrees() {
		verdict = "confirmed"
	}
	s.metrics.FeedbackRecorded.WithLabelValues(verdict).Inc()
	s.logger.Info("feedback recorded", "id", reportID, "verdict", verdict,
		"event_type", event.String(), "priority", priority.String())
	return f, nil
}

// Feedback returns every recorded correction.
func (s *Service) Feedback(ctx context.Context) ([]domain.Feedback, error) {
	if s.feedback == nil {
		return nil, ErrNoFeedbackStore
	}
	return s.feedback.Feedback(ctx)
}

// TranscriptionEnabled reports whether SubmitAudio can succeed.
func (s *Service) TranscriptionEnabled() bool {
	return s.transcriber != nil
}

func (s *Service) find(ctx context.Context, id string) (domain.Report, error) {
	if s.store == nil {
		return domain.Report{}, ErrNoStore
	}
	all, err := s.store.All(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	for _, r := range all {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Report{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
}

// findDuplicate returns nil when there is no store, the report has no
// district, or the store cannot be read.
func (s *Service) findDuplicate(ctx context.Context, r domain.Report) *domain.Report {
	if s.store == nil || r.Analysis.District == nil {
		return nil
	}
	all, err := s.store.All(ctx)
	if err != nil {
		s.logger.Warn("duplicate check failed", "id", r.ID, "error", err)
		return nil
	}
	for i := len(all) - 1; i >= 0; i-- {
		if sameIncident(all[i], r) {
			dup := all[i]
			s.metrics.DuplicateReports.Inc()
			s.logger.Info("possible duplicate report", "id", r.ID, "earlier_id", dup.ID,
				"district", *r.Analysis.District, "event_type", r.Analysis.EventType.String())
			return &dup
		}
	}
	return nil
}

// sameIncident matches a different report with the same event type in the
// same district.
func sameIncident(earlier, r domain.Report) bool {
	if earlier.ID == r.ID || earlier.Analysis.EventType != r.Analysis.EventType {
		return false
	}
	d := earlier.Analysis.District
	return d != nil && *d == *r.Analysis.District
}

func (s *Service) persist(ctx context.Context, report domain.Report) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Append(ctx, report); err != nil {
		s.metrics.StoreWrites.WithLabelValues("error").Inc()
		s.logger.Warn("store write failed", "id", report.ID, "error", err)
		return err
	}
	s.metrics.StoreWrites.WithLabelValues("success").Inc()
	return nil
}
