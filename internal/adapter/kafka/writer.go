package kafka

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/akom-triage-service/internal/config"
	"github.com/couchcryptid/akom-triage-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// headerOrder fixes the order of sink message headers.
var headerOrder = []string{"event_type", "priority", "processed_at"}

// Writer produces triaged reports to the sink topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes the reports and publishes them in a single
// WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, reports []domain.Report) error {
	if len(reports) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(reports))
	for i := range reports {
		out, err := domain.SerializeReport(reports[i])
		if err != nil {
			return err
		}
		msgs[i] = toMessage(out)
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// toMessage converts an OutputEvent into a Kafka message. Known headers come
// first in a fixed order; any others are dropped.
func toMessage(out domain.OutputEvent) kafkago.Message {
	headers := make([]kafkago.Header, 0, len(headerOrder))
	for _, key := range headerOrder {
		if v, ok := out.Headers[key]; ok {
			headers = append(headers, kafkago.Header{Key: key, Value: []byte(v)})
		}
	}
	return kafkago.Message{
		Key:     out.Key,
		Value:   out.Value,
		Headers: headers,
	}
}
