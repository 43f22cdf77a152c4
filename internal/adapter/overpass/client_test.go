package overpass

import (
	"context"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second, 0, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const twoStations = `{
  "elements": [
    {"type": "node", "id": 1, "lat": 41.0500, "lon": 28.9800, "tags": {"name": "Uzak İtfaiye"}},
    {"type": "way", "id": 2, "center": {"lat": 41.0100, "lon": 28.9790}, "tags": {"name": "Fatih İtfaiye Grubu"}},
    {"type": "node", "id": 3, "tags": {"name": "Konumsuz"}}
  ]
}`

func TestClient_Nearest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		q := r.PostForm.Get("data")
		assert.Contains(t, q, "node[amenity=fire_station](around:10000,41.008200,28.978400);")
		assert.Contains(t, q, "way[amenity=fire_station]")
		assert.Contains(t, q, "out center;")

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(twoStations))
	}))
	defer srv.Close()

	f, ok, err := testClient(srv.URL).Nearest(context.Background(), 41.0082, 28.9784, domain.FacilityFireStation)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "Fatih İtfaiye Grubu", f.Name)
	assert.Equal(t, domain.FacilityFireStation, f.Kind)
	assert.Equal(t, domain.Geo{Lat: 41.0100, Lon: 28.9790}, f.Geo)
	assert.InDelta(t, 0.21, f.DistanceKm, 0.005)
}

func TestClient_Nearest_UnnamedFacility(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"elements":[{"type":"node","lat":41.01,"lon":28.98}]}`))
	}))
	defer srv.Close()

	f, ok, err := testClient(srv.URL).Nearest(context.Background(), 41.0082, 28.9784, domain.FacilityHospital)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Hastane", f.Name)
}

func TestClient_Nearest_NoElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	_, ok, err := testClient(srv.URL).Nearest(context.Background(), 41.0082, 28.9784, domain.FacilityPolice)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_Nearest_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	_, ok, err := testClient(srv.URL).Nearest(context.Background(), 41.0082, 28.9784, domain.FacilityFireStation)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "status 504")
}

func TestClient_Nearest_UnknownKind(t *testing.T) {
	_, _, err := testClient("http://127.0.0.1:0").Nearest(context.Background(), 41, 29, domain.FacilityKind("school"))
	require.Error(t, err)
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, haversineKm(41.0082, 28.9784, 41.0082, 28.9784), 1e-9)
	// Avcılar to Kadıköy centroids.
	assert.InDelta(t, 25.8, haversineKm(40.9792, 28.7214, 40.9927, 29.0277), 0.5)
}

func TestNearest_RoundsDistance(t *testing.T) {
	lat, lon := 41.02, 28.99
	f, ok := nearest([]element{{Lat: &lat, Lon: &lon}}, 41.0082, 28.9784, domain.FacilityPolice)
	require.True(t, ok)
	assert.Equal(t, "Polis Merkezi", f.Name)
	assert.InDelta(t, math.Round(f.DistanceKm*100)/100, f.DistanceKm, 1e-12)
}
