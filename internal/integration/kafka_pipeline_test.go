//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/akom-triage-service/internal/adapter/kafka"
	"github.com/couchcryptid/akom-triage-service/internal/config"
	"github.com/couchcryptid/akom-triage-service/internal/dataset"
	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
	"github.com/couchcryptid/akom-triage-service/internal/pipeline"
	"github.com/couchcryptid/akom-triage-service/internal/store/sqlstore"
)

const (
	testSourceTopic = "test-raw-reports"
	testSinkTopic   = "test-triaged-reports"
)

var receivedAt = time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC)

// triagedMessage holds a deserialized message read from the sink topic.
type triagedMessage struct {
	Report  domain.Report
	Key     string
	Headers map[string]string
}

func readTriaged(ctx context.Context, t *testing.T, consumer *kafkago.Reader) triagedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var report domain.Report
	require.NoError(t, json.Unmarshal(msg.Value, &report), "unmarshal sink message")

	return triagedMessage{Report: report, Key: string(msg.Key), Headers: headers}
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}
}

func sinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func submission(t *testing.T, text string) []byte {
	t.Helper()
	payload, err := json.Marshal(domain.Submission{Text: text, Source: "hotline", ReceivedAt: receivedAt})
	require.NoError(t, err)
	return payload
}

// TestKafkaReaderWriter round-trips one report through kafka.Reader and
// kafka.Writer.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-reader")

	payload := submission(t, "Avcılar Cihangir Mahallesi Cumhuriyet Caddesi'nde bina çöktü, enkaz altında insanlar var")

	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{Key: []byte("call-1"), Value: payload}))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	// The consumer group may need a rebalance before partitions are assigned.
	var batch []domain.RawEvent
	for len(batch) == 0 {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	raw := batch[0]
	assert.Equal(t, []byte("call-1"), raw.Key)
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit)
	require.NoError(t, raw.Commit(ctx))

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(domain.NewAnalyzer(), nil, nil, metrics, discardLogger())
	report, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, []domain.Report{report}))

	tm := readTriaged(ctx, t, sinkConsumer(t, broker))
	assert.Equal(t, report.ID, tm.Key)
	assert.Equal(t, "Deprem", tm.Headers["event_type"])
	assert.Equal(t, "Kritik", tm.Headers["priority"])
	_, err = time.Parse(time.RFC3339, tm.Headers["processed_at"])
	require.NoError(t, err, "processed_at should be RFC3339")

	assert.Equal(t, domain.EventEarthquake, tm.Report.Analysis.EventType)
	require.NotNil(t, tm.Report.Analysis.District)
	assert.Equal(t, "Avcılar", *tm.Report.Analysis.District)
	require.NotNil(t, tm.Report.Analysis.Neighborhood)
	assert.Equal(t, "Cihangir", *tm.Report.Analysis.Neighborhood)
	assert.Equal(t, "hotline", tm.Report.Source)
	assert.Equal(t, receivedAt, tm.Report.ReceivedAt)
}

// TestPipelineEndToEnd runs the full pipeline over a generated dataset and
// mirrors every report into a SQLite store.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-pipeline")

	records := dataset.NewGenerator(dataset.DefaultSeed).Generate(60)

	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })

	msgs := make([]kafkago.Message, 0, len(records))
	for i, rec := range records {
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(fmt.Sprintf("record-%d", i)),
			Value: submission(t, rec.Text),
		})
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	store, err := sqlstore.Open(ctx, filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	metrics := observability.NewMetricsForTesting()
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	transformer := pipeline.NewTransformer(domain.NewAnalyzer(), nil, nil, metrics, discardLogger())
	loader := pipeline.MultiLoader{writer, pipeline.NewStoreLoader(store, metrics, discardLogger())}
	p := pipeline.New(reader, transformer, loader, discardLogger(), metrics, 25)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := sinkConsumer(t, broker)
	received := make([]triagedMessage, 0, len(records))
	for len(received) < len(records) {
		received = append(received, readTriaged(ctx, t, consumer))
	}

	pipelineCancel()
	require.NoError(t, <-errCh)
	require.NoError(t, p.CheckReadiness(ctx))

	byText := make(map[string]dataset.Record, len(records))
	for _, rec := range records {
		byText[rec.Text] = rec
	}
	for _, tm := range received {
		rec, ok := byText[tm.Report.Text]
		require.True(t, ok, "unexpected report %q", tm.Report.Text)
		assert.Equal(t, tm.Report.Analysis.EventType.String(), tm.Headers["event_type"])
		assert.Equal(t, tm.Report.Analysis.Priority.String(), tm.Headers["priority"])
		require.NotNil(t, tm.Report.Analysis.Neighborhood)
		assert.Equal(t, rec.Neighborhood, *tm.Report.Analysis.Neighborhood)
		assert.Equal(t, domain.GeoSourceDistrict, tm.Report.GeoSource)
	}

	stored, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, len(records))
}

// TestPipelineTransformError verifies that a poison message is skipped and the
// pipeline keeps processing valid messages.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-poison")

	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		kafkago.Message{Key: []byte("empty"), Value: []byte(`{"text":"   "}`)},
		kafkago.Message{Key: []byte("good"), Value: submission(t, "Kadıköy'de su baskını var, bodrum katlar su altında")},
	))

	metrics := observability.NewMetricsForTesting()
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	transformer := pipeline.NewTransformer(domain.NewAnalyzer(), nil, nil, metrics, discardLogger())
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := sinkConsumer(t, broker)
	tm := readTriaged(ctx, t, consumer)
	assert.Equal(t, domain.EventFlood, tm.Report.Analysis.EventType)

	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
