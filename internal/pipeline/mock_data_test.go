package pipeline_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/akom-triage-service/internal/dataset"
	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/pipeline"
)

func TestReportTransformer_WithGeneratedDataset(t *testing.T) {
	freezeClock(t, time.Date(2024, 3, 2, 6, 0, 0, 0, time.UTC))
	tfm := pipeline.NewTransformer(domain.NewAnalyzer(), nil, nil, newTestMetrics(), discardLogger())
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	records := dataset.NewGenerator(dataset.DefaultSeed).Generate(120)
	seen := make(map[string]bool, len(records))

	for i, rec := range records {
		payload, err := json.Marshal(domain.Submission{
			Text:       rec.Text,
			Source:     "generator",
			ReceivedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)

		report, err := tfm.Transform(context.Background(), domain.RawEvent{Value: payload})
		require.NoError(t, err, rec.Text)

		assert.False(t, seen[report.ID], "duplicate id for %q", rec.Text)
		seen[report.ID] = true

		a := report.Analysis
		assert.True(t, a.EventType.Valid())
		assert.True(t, a.Priority.Valid())
		assert.NotEmpty(t, a.Units)

		// Generated locations always start with a district name, so every
		// report resolves at least to a district centroid.
		require.NotNil(t, a.District, rec.Text)
		assert.Equal(t, domain.GeoSourceDistrict, report.GeoSource, rec.Text)
		centroid, ok := domain.DistrictCentroid(*a.District)
		require.True(t, ok)
		assert.Equal(t, centroid, report.Geo)

		require.NotNil(t, a.Neighborhood, rec.Text)

		out, err := domain.SerializeReport(report)
		require.NoError(t, err)
		assert.Equal(t, a.EventType.String(), out.Headers["event_type"])
		assert.Equal(t, "2024-03-02T06:00:00Z", out.Headers["processed_at"])
	}
}
