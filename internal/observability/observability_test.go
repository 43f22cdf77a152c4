package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTextLogger(&buf, "warn")

	logger.Info("dropped")
	logger.Warn("geocoding failed", "report_id", "rpt-1")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "report_id=rpt-1")
}

func TestMetrics_RegisterOnce(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(m.ReportsAnalyzed))

	m.ReportsAnalyzed.WithLabelValues("Deprem", "Kritik").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "akom_reports_analyzed_total", families[0].GetName())
	require.Len(t, families[0].GetMetric(), 1)
	assert.InDelta(t, 1.0, families[0].GetMetric()[0].GetCounter().GetValue(), 0.001)

	for _, c := range m.collectors() {
		assert.NotNil(t, c)
	}
}

func TestNewMetricsWith_PrivateRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWith(reg)
	m.DuplicateReports.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "akom_duplicate_reports_total")

	// A second set on its own registry does not collide.
	assert.NotPanics(t, func() { NewMetricsWith(prometheus.NewRegistry()) })
	assert.Panics(t, func() { NewMetricsWith(reg) })
}
