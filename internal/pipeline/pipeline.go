package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
)

// BatchExtractor reads up to batchSize raw events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer triages one raw message into a report.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.Report, error)
}

// BatchLoader writes triaged reports to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, reports []domain.Report) error
}

const (
	initialBackoff    = 200 * time.Millisecond
	defaultMaxBackoff = 5 * time.Second
)

// Pipeline orchestrates the extract-triage-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once the first batch has been loaded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any messages yet")
	}
	return nil
}

// Run consumes batches until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	bo := newBackoff(initialBackoff, defaultMaxBackoff)
	for ctx.Err() == nil {
		if !p.runCycle(ctx, bo) {
			break
		}
	}
	p.logger.Info("pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// runCycle extracts, triages and loads one batch. It returns false when the
// context ended mid-cycle.
func (p *Pipeline) runCycle(ctx context.Context, bo *backoff) bool {
	start := time.Now()

	batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	switch {
	case err != nil && ctx.Err() != nil:
		return false
	case err != nil:
		p.logger.Error("extract batch failed", "error", err, "retry_in", bo.current)
		return bo.wait(ctx)
	case len(batch) == 0:
		return true
	}

	p.metrics.MessagesConsumed.Add(float64(len(batch)))
	p.metrics.BatchSize.Observe(float64(len(batch)))
	bo.reset()

	reports, accepted := p.triageBatch(ctx, batch)
	if len(reports) == 0 {
		return true
	}

	if err := p.loader.LoadBatch(ctx, reports); err != nil {
		p.logger.Error("load batch failed", "error", err, "reports", len(reports), "retry_in", bo.current)
		return bo.wait(ctx)
	}
	p.metrics.MessagesProduced.Add(float64(len(reports)))
	for _, raw := range accepted {
		p.commit(ctx, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	p.logger.Debug("batch loaded",
		"consumed", len(batch),
		"loaded", len(reports),
		"critical", countCritical(reports),
		"duration", time.Since(start),
	)
	return true
}

// triageBatch transforms every message. Messages that cannot be triaged are
// committed and dropped at once so a poison message cannot stall the
// partition; the rest are returned with their source events for commit
// after load.
func (p *Pipeline) triageBatch(ctx context.Context, batch []domain.RawEvent) ([]domain.Report, []domain.RawEvent) {
	reports := make([]domain.Report, 0, len(batch))
	accepted := make([]domain.RawEvent, 0, len(batch))

	for _, raw := range batch {
		report, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			reason := skipReason(err)
			p.logger.Warn("skipping message",
				"reason", reason,
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.WithLabelValues(reason).Inc()
			p.commit(ctx, raw)
			continue
		}
		reports = append(reports, report)
		accepted = append(accepted, raw)
	}
	return reports, accepted
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func skipReason(err error) string {
	if errors.Is(err, domain.ErrEmptyText) {
		return "empty_text"
	}
	return "invalid"
}

func countCritical(reports []domain.Report) int {
	n := 0
	for _, r := range reports {
		if r.Analysis.Priority == domain.PriorityCritical {
			n++
		}
	}
	return n
}

// backoff tracks the retry delay between failed cycles. It doubles on every
// wait up to max and drops back to initial after a good extract.
type backoff struct {
	initial, max, current time.Duration
}

func newBackoff(initial, maxDelay time.Duration) *backoff {
	return &backoff{initial: initial, max: maxDelay, current: initial}
}

func (b *backoff) reset() { b.current = b.initial }

// wait sleeps for the current delay and grows it. It returns false when the
// context ends first.
func (b *backoff) wait(ctx context.Context) bool {
	if !retry.SleepWithContext(ctx, b.current) {
		return false
	}
	b.current = retry.NextBackoff(b.current, b.max)
	return true
}
