package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
)

// ReportTransformer implements Transformer: it parses a raw message, runs
// the analyzer and enriches the result with coordinates and the nearest
// facility. The HTTP API and CLI call Process directly.
type ReportTransformer struct {
	analyzer *domain.Analyzer
	geocoder domain.Geocoder
	locator  domain.FacilityLocator
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewTransformer creates a ReportTransformer. A nil geocoder or locator
// disables that enrichment step.
func NewTransformer(
	analyzer *domain.Analyzer,
	geocoder domain.Geocoder,
	locator domain.FacilityLocator,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *ReportTransformer {
	if analyzer == nil {
		analyzer = domain.NewAnalyzer()
	}
	return &ReportTransformer{
		analyzer: analyzer,
		geocoder: geocoder,
		locator:  locator,
		metrics:  metrics,
		logger:   logger,
	}
}

func (t *ReportTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.Report, error) {
	sub, err := domain.ParseRawReport(raw)
	if err != nil {
		return domain.Report{}, err
	}
	return t.process(ctx, sub), nil
}

// Process triages a submission. Enrichment failures degrade the report to
// fallback coordinates and never fail the call; only an empty text does.
func (t *ReportTransformer) Process(ctx context.Context, sub domain.Submission) (domain.Report, error) {
	sub, err := domain.NormalizeSubmission(sub)
	if err != nil {
		return domain.Report{}, err
	}
	return t.process(ctx, sub), nil
}

// Analyze runs the analyzer alone, without enrichment or metrics.
func (t *ReportTransformer) Analyze(text string) domain.AnalysisResult {
	return t.analyzer.Analyze(text)
}

func (t *ReportTransformer) process(ctx context.Context, sub domain.Submission) domain.Report {
	report := domain.NewReport(sub, t.analyzer.Analyze(sub.Text))
	report = domain.Geolocate(ctx, report, t.geocoder, t.logger)
	report = domain.LocateFacility(ctx, report, t.locator, t.logger)
	report = report.Stamp()

	t.metrics.ReportsAnalyzed.WithLabelValues(
		report.Analysis.EventType.String(),
		report.Analysis.Priority.String(),
	).Inc()
	t.metrics.GeoSource.WithLabelValues(string(report.GeoSource)).Inc()

	t.logger.Debug("report triaged",
		"id", report.ID,
		"event_type", report.Analysis.EventType.String(),
		"priority", report.Analysis.Priority.String(),
		"geo_source", report.GeoSource,
	)
	return report
}
