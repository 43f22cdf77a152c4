//go:build nominatim

package nominatim

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the public Nominatim API.
// Run with: go test -tags=nominatim ./internal/adapter/nominatim/ -v -count=1

func smokeClient() *Client {
	return NewClient(DefaultBaseURL, "akom-triage-service-smoke/1.0", 10*time.Second, 1,
		observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_Geocode(t *testing.T) {
	result, err := smokeClient().Geocode(context.Background(), domain.AddressQuery{
		Neighborhood: "Moda",
		District:     "Kadıköy",
	})
	require.NoError(t, err)

	require.True(t, result.Found)
	assert.InDelta(t, 40.98, result.Lat, 0.1, "lat should be near Kadıköy")
	assert.InDelta(t, 29.03, result.Lon, 0.1, "lon should be near Kadıköy")
	assert.Contains(t, result.Label, "Kadıköy")
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	cached := NewCachedGeocoder(smokeClient(), 10, observability.NewMetricsForTesting())
	q := domain.AddressQuery{Neighborhood: "Cihangir", District: "Beyoğlu"}

	r1, err := cached.Geocode(context.Background(), q)
	require.NoError(t, err)

	r2, err := cached.Geocode(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
