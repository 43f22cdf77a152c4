package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result GeocodingResult
	err    error
	calls  int
	last   AddressQuery
}

func (m *mockGeocoder) Geocode(_ context.Context, q AddressQuery) (GeocodingResult, error) {
	m.calls++
	m.last = q
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func reportFor(text string) Report {
	return NewReport(Submission{Text: text}, NewAnalyzer().Analyze(text))
}

// --- tests ---

func TestGeolocate_Geocoded(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{Lat: 40.98, Lon: 28.72, Label: "Cumhuriyet Caddesi, Avcılar", Found: true}}

	r := Geolocate(context.Background(), reportFor(avcilarReport), geo, discardLogger())

	assert.Equal(t, Geo{Lat: 40.98, Lon: 28.72}, r.Geo)
	assert.Equal(t, "Cumhuriyet Caddesi, Avcılar", r.GeoLabel)
	assert.Equal(t, GeoSourceGeocoded, r.GeoSource)
	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, AddressQuery{Neighborhood: "Cihangir", Avenue: "Cumhuriyet", District: "Avcılar"}, geo.last)
}

func TestGeolocate_GeocoderErrorFallsBackToDistrict(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("connection refused")}

	r := Geolocate(context.Background(), reportFor(avcilarReport), geo, discardLogger())

	assert.Equal(t, Geo{Lat: 40.9792, Lon: 28.7214}, r.Geo)
	assert.Equal(t, GeoSourceDistrict, r.GeoSource)
	assert.Equal(t, "Avcılar, İstanbul", r.GeoLabel)
}

func TestGeolocate_NotFoundFallsBackToDistrict(t *testing.T) {
	geo := &mockGeocoder{}

	r := Geolocate(context.Background(), reportFor(avcilarReport), geo, discardLogger())

	assert.Equal(t, GeoSourceDistrict, r.GeoSource)
	assert.Equal(t, 1, geo.calls)
}

func TestGeolocate_DistrictOnlySkipsGeocoder(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{Lat: 1, Lon: 1, Found: true}}

	r := Geolocate(context.Background(), reportFor("Tuzla'da kimyasal sızıntı"), geo, discardLogger())

	assert.Equal(t, 0, geo.calls)
	assert.Equal(t, Geo{Lat: 40.8167, Lon: 29.3000}, r.Geo)
	assert.Equal(t, GeoSourceDistrict, r.GeoSource)
}

func TestGeolocate_NilGeocoder(t *testing.T) {
	r := Geolocate(context.Background(), reportFor(avcilarReport), nil, discardLogger())

	assert.Equal(t, GeoSourceDistrict, r.GeoSource)
}

func TestGeolocate_CityCenterDefault(t *testing.T) {
	r := Geolocate(context.Background(), reportFor("bir yerde duman var"), nil, discardLogger())

	assert.Equal(t, CityCenter, r.Geo)
	assert.Equal(t, GeoSourceDefault, r.GeoSource)
	assert.Equal(t, "İstanbul", r.GeoLabel)
}

func TestDistrictCentroid_CoversDistrictList(t *testing.T) {
	for _, d := range Districts() {
		_, ok := DistrictCentroid(d)
		assert.True(t, ok, "no centroid for %s", d)
	}
	_, ok := DistrictCentroid("Ankara")
	assert.False(t, ok)
}

func TestAddressQuery_Variants(t *testing.T) {
	tests := []struct {
		name string
		q    AddressQuery
		want []string
	}{
		{
			name: "all fields",
			q:    AddressQuery{Neighborhood: "Cihangir", Avenue: "Cumhuriyet", District: "Avcılar"},
			want: []string{
				"Cumhuriyet Caddesi, Cihangir Mahallesi, Avcılar, İstanbul",
				"Cumhuriyet Caddesi, Avcılar, İstanbul",
				"Cihangir Mahallesi, Avcılar, İstanbul",
				"Cihangir, Avcılar",
			},
		},
		{
			name: "neighborhood only",
			q:    AddressQuery{Neighborhood: "Moda"},
			want: []string{"Moda, İstanbul"},
		},
		{
			name: "avenue without district",
			q:    AddressQuery{Avenue: "Bağdat"},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.Variants(CityName))
		})
	}
}
