package domain

import (
	"context"
	"fmt"
)

// AddressQuery is the address fragment handed to a Geocoder. Empty fields
// are unknown.
type AddressQuery struct {
	Neighborhood string
	Avenue       string
	District     string
}

// AddressQueryFor copies the extracted address fields out of a result.
func AddressQueryFor(loc Location) AddressQuery {
	return AddressQuery{
		Neighborhood: deref(loc.Neighborhood),
		Avenue:       deref(loc.Avenue),
		District:     deref(loc.District),
	}
}

// Empty reports whether the query carries nothing a geocoder could resolve
// below district level.
func (q AddressQuery) Empty() bool {
	return q.Neighborhood == "" && q.Avenue == ""
}

// Variants lists free-text address queries from most to least specific.
// city closes every variant.
func (q AddressQuery) Variants(city string) []string {
	var out []string
	if q.Avenue != "" && q.Neighborhood != "" && q.District != "" {
		out = append(out, fmt.Sprintf("%s Caddesi, %s Mahallesi, %s, %s", q.Avenue, q.Neighborhood, q.District, city))
	}
	if q.Avenue != "" && q.District != "" {
		out = append(out, fmt.Sprintf("%s Caddesi, %s, %s", q.Avenue, q.District, city))
	}
	if q.Neighborhood != "" && q.District != "" {
		out = append(out, fmt.Sprintf("%s Mahallesi, %s, %s", q.Neighborhood, q.District, city))
	}
	if q.Neighborhood != "" {
		area := q.District
		if area == "" {
			area = city
		}
		out = append(out, fmt.Sprintf("%s, %s", q.Neighborhood, area))
	}
	return out
}

// GeocodingResult is a resolved coordinate. Found is false when the
// provider had no match, which is not an error.
type GeocodingResult struct {
	Lat   float64
	Lon   float64
	Label string
	Found bool
}

// Geocoder resolves an address fragment to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, q AddressQuery) (GeocodingResult, error)
}

// FacilityKind is an emergency facility category.
type FacilityKind string

const (
	FacilityFireStation FacilityKind = "fire_station"
	FacilityHospital    FacilityKind = "hospital"
	FacilityPolice      FacilityKind = "police"
)

var facilityNames = map[FacilityKind]string{
	FacilityFireStation: "İtfaiye",
	FacilityHospital:    "Hastane",
	FacilityPolice:      "Polis Merkezi",
}

// DisplayName is the generic Turkish name used when a facility is unnamed.
func (k FacilityKind) DisplayName() string {
	if n, ok := facilityNames[k]; ok {
		return n
	}
	return facilityNames[FacilityFireStation]
}

// Valid reports whether k is a known kind.
func (k FacilityKind) Valid() bool {
	_, ok := facilityNames[k]
	return ok
}

// Facility is the emergency centre nearest to a report.
type Facility struct {
	Kind       FacilityKind `json:"kind"`
	Name       string       `json:"name"`
	Geo        Geo          `json:"geo"`
	DistanceKm float64      `json:"distance_km"`
}

// FacilityLocator finds the nearest facility of a kind. ok is false when
// nothing is within range.
type FacilityLocator interface {
	Nearest(ctx context.Context, lat, lon float64, kind FacilityKind) (f Facility, ok bool, err error)
}

// Transcriber converts audio to text. An empty string means no speech was
// recognized.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// ReportStore persists triaged reports. Writes are last-writer-wins.
type ReportStore interface {
	Append(ctx context.Context, r Report) error
	All(ctx context.Context) ([]Report, error)
}

// FeedbackStore persists operator corrections in arrival order.
type FeedbackStore interface {
	AppendFeedback(ctx context.Context, f Feedback) error
	Feedback(ctx context.Context) ([]Feedback, error)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
