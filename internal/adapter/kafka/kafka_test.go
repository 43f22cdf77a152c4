package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte(`{"text":"Kadıköy'de yangın"}`),
		Topic:     "raw-emergency-reports",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("call-center")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("key-1"), raw.Key)
	assert.JSONEq(t, `{"text":"Kadıköy'de yangın"}`, string(raw.Value))
	assert.Equal(t, "raw-emergency-reports", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "call-center", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	report := domain.Report{
		ID:   "rpt-1",
		Text: "Avcılar'da deprem",
		Analysis: domain.AnalysisResult{
			EventType: domain.EventEarthquake,
			Priority:  domain.PriorityCritical,
			Units:     []domain.Unit{domain.UnitAFAD},
		},
		Geo:         domain.Geo{Lat: 40.9792, Lon: 28.7214},
		GeoSource:   domain.GeoSourceDistrict,
		ProcessedAt: now,
	}

	out, err := domain.SerializeReport(report)
	require.NoError(t, err)
	msg := toMessage(out)

	assert.Equal(t, []byte("rpt-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"event_type":"Deprem"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("Deprem"), msg.Headers[0].Value)
	assert.Equal(t, "priority", msg.Headers[1].Key)
	assert.Equal(t, []byte("Kritik"), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}

func TestToMessage_DropsUnknownHeaders(t *testing.T) {
	msg := toMessage(domain.OutputEvent{
		Key:     []byte("k"),
		Value:   []byte("{}"),
		Headers: map[string]string{"priority": "Orta", "trace": "x"},
	})

	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "priority", msg.Headers[0].Key)
}
