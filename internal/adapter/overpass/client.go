package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
)

// DefaultBaseURL is the public Overpass API interpreter.
const DefaultBaseURL = "https://overpass-api.de/api/interpreter"

// DefaultRadiusMeters bounds the facility search around a report.
const DefaultRadiusMeters = 10000

const earthRadiusKm = 6371.0

// Client implements domain.FacilityLocator using the Overpass API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	radiusMeters int
	metrics      *observability.Metrics
	logger       *slog.Logger
}

// NewClient creates an Overpass client. radiusMeters <= 0 uses
// DefaultRadiusMeters.
func NewClient(baseURL string, timeout time.Duration, radiusMeters int, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      baseURL,
		radiusMeters: radiusMeters,
		metrics:      metrics,
		logger:       logger,
	}
}

// Nearest returns the closest facility of kind within the search radius.
func (c *Client) Nearest(ctx context.Context, lat, lon float64, kind domain.FacilityKind) (domain.Facility, bool, error) {
	if !kind.Valid() {
		return domain.Facility{}, false, fmt.Errorf("unknown facility kind %q", kind)
	}

	form := url.Values{"data": {buildQuery(kind, lat, lon, c.radiusMeters)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Facility{}, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.FacilityAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FacilityRequests.WithLabelValues(string(kind), "error").Inc()
		return domain.Facility{}, false, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.FacilityRequests.WithLabelValues(string(kind), "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Facility{}, false, fmt.Errorf("overpass API error: status %d: %s", resp.StatusCode, body)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.metrics.FacilityRequests.WithLabelValues(string(kind), "error").Inc()
		return domain.Facility{}, false, fmt.Errorf("decode response: %w", err)
	}

	f, ok := nearest(out.Elements, lat, lon, kind)
	if !ok {
		c.metrics.FacilityRequests.WithLabelValues(string(kind), "empty").Inc()
		return domain.Facility{}, false, nil
	}
	c.metrics.FacilityRequests.WithLabelValues(string(kind), "success").Inc()
	c.logger.Debug("nearest facility", "kind", string(kind), "name", f.Name, "distance_km", f.DistanceKm)
	return f, true, nil
}

func buildQuery(kind domain.FacilityKind, lat, lon float64, radius int) string {
	around := fmt.Sprintf("(around:%d,%f,%f)", radius, lat, lon)
	return fmt.Sprintf("[out:json][timeout:10];\n(\n  node[amenity=%s]%s;\n  way[amenity=%s]%s;\n);\nout center;",
		kind, around, kind, around)
}

// nearest picks the element closest to (lat, lon). Elements without
// coordinates are skipped; unnamed ones get the kind's generic name.
func nearest(elements []element, lat, lon float64, kind domain.FacilityKind) (domain.Facility, bool) {
	var (
		best    domain.Facility
		bestKm  = math.Inf(1)
		present bool
	)
	for _, el := range elements {
		elLat, elLon, ok := el.position()
		if !ok {
			continue
		}
		d := haversineKm(lat, lon, elLat, elLon)
		if d >= bestKm {
			continue
		}
		name := el.Tags["name"]
		if name == "" {
			name = kind.DisplayName()
		}
		best = domain.Facility{
			Kind:       kind,
			Name:       name,
			Geo:        domain.Geo{Lat: elLat, Lon: elLon},
			DistanceKm: math.Round(d*100) / 100,
		}
		bestKm = d
		present = true
	}
	return best, present
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Overpass API response types. Nodes carry lat/lon; ways carry a center.

type response struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *center           `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (e element) position() (lat, lon float64, ok bool) {
	if e.Lat != nil && e.Lon != nil {
		return *e.Lat, *e.Lon, true
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}
