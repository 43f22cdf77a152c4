package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLocator struct {
	facility Facility
	ok       bool
	err      error
	kind     FacilityKind
	calls    int
}

func (m *mockLocator) Nearest(_ context.Context, _, _ float64, kind FacilityKind) (Facility, bool, error) {
	m.calls++
	m.kind = kind
	return m.facility, m.ok, m.err
}

func TestFacilityKindFor(t *testing.T) {
	tests := []struct {
		name  string
		event EventType
		units []Unit
		want  FacilityKind
	}{
		{"fire service lead", EventBuildingFire, []Unit{UnitFireService}, FacilityFireStation},
		{"fire in event label", EventForestFire, []Unit{UnitAFAD}, FacilityFireStation},
		{"health lead", EventOther, []Unit{UnitHealthTeams}, FacilityHospital},
		{"earthquake", EventEarthquake, []Unit{UnitAFAD, UnitRescueTeams}, FacilityHospital},
		{"traffic", EventTrafficAccident, []Unit{UnitTrafficTeams}, FacilityFireStation},
		{"other", EventOther, []Unit{UnitAFAD}, FacilityFireStation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FacilityKindFor(AnalysisResult{EventType: tt.event, Units: tt.units})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFacilityKind_DisplayName(t *testing.T) {
	assert.Equal(t, "İtfaiye", FacilityFireStation.DisplayName())
	assert.Equal(t, "Hastane", FacilityHospital.DisplayName())
	assert.Equal(t, "Polis Merkezi", FacilityPolice.DisplayName())
	assert.Equal(t, "İtfaiye", FacilityKind("bakery").DisplayName())
	assert.False(t, FacilityKind("bakery").Valid())
}

func TestLocateFacility(t *testing.T) {
	found := Facility{Kind: FacilityHospital, Name: "Avcılar Devlet Hastanesi", Geo: Geo{Lat: 40.98, Lon: 28.71}, DistanceKm: 1.24}

	t.Run("found", func(t *testing.T) {
		loc := &mockLocator{facility: found, ok: true}
		r := LocateFacility(context.Background(), reportFor(avcilarReport), loc, discardLogger())

		require.NotNil(t, r.Facility)
		assert.Equal(t, found, *r.Facility)
		assert.Equal(t, FacilityHospital, loc.kind)
	})

	t.Run("nothing nearby", func(t *testing.T) {
		loc := &mockLocator{}
		r := LocateFacility(context.Background(), reportFor(avcilarReport), loc, discardLogger())

		assert.Nil(t, r.Facility)
		assert.Equal(t, 1, loc.calls)
	})

	t.Run("locator error", func(t *testing.T) {
		loc := &mockLocator{err: errors.New("timeout")}
		r := LocateFacility(context.Background(), reportFor(avcilarReport), loc, discardLogger())

		assert.Nil(t, r.Facility)
	})

	t.Run("nil locator", func(t *testing.T) {
		r := LocateFacility(context.Background(), reportFor(avcilarReport), nil, discardLogger())
		assert.Nil(t, r.Facility)
	})
}
