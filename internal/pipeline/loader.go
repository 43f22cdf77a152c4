package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
)

// StoreLoader appends each report to a ReportStore. Write failures are
// logged and counted but do not fail the batch, so a broken store never
// blocks the sink.
type StoreLoader struct {
	store   domain.ReportStore
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewStoreLoader(store domain.ReportStore, metrics *observability.Metrics, logger *slog.Logger) *StoreLoader {
	return &StoreLoader{store: store, metrics: metrics, logger: logger}
}

func (l *StoreLoader) LoadBatch(ctx context.Context, reports []domain.Report) error {
	for i := range reports {
		if err := l.store.Append(ctx, reports[i]); err != nil {
			l.metrics.StoreWrites.WithLabelValues("error").Inc()
			l.logger.Warn("store write failed", "error", err, "id", reports[i].ID)
			continue
		}
		l.metrics.StoreWrites.WithLabelValues("success").Inc()
	}
	return nil
}

// MultiLoader fans a batch out to several loaders in order. The first error
// stops the fan-out and is returned, so the batch is retried as a whole.
type MultiLoader []BatchLoader

func (m MultiLoader) LoadBatch(ctx context.Context, reports []domain.Report) error {
	for _, l := range m {
		if err := l.LoadBatch(ctx, reports); err != nil {
			return err
		}
	}
	return nil
}
