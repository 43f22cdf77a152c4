package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownLabel is returned when a label does not name a catalog member.
var ErrUnknownLabel = errors.New("unknown catalog label")

// EventType is the classified incident category of a report.
// The zero value is EventOther, the sentinel for "nothing matched".
type EventType int

// Event catalog in definition order. The order is significant: it is the
// tie-break order used by the event classifier.
const (
	EventOther EventType = iota
	EventEarthquake
	EventFlood
	EventForestFire
	EventSnowstorm
	EventLandslide
	EventTrafficAccident
	EventMetroTunnelAccident
	EventBuildingFire
	EventGasLeak
	EventInfrastructureFailure
	EventExplosion
	EventChemicalAccident
)

var eventTypeLabels = [...]string{
	EventOther:                 "Diğer",
	EventEarthquake:            "Deprem",
	EventFlood:                 "Sel Baskını",
	EventForestFire:            "Orman Yangını",
	EventSnowstorm:             "Kar Fırtınası",
	EventLandslide:             "Heyelan",
	EventTrafficAccident:       "Trafik Kazası",
	EventMetroTunnelAccident:   "Metro/Tünel Kazası",
	EventBuildingFire:          "Bina Yangını",
	EventGasLeak:               "Gaz Kaçağı",
	EventInfrastructureFailure: "Altyapı Arızası",
	EventExplosion:             "Patlama",
	EventChemicalAccident:      "Kimyasal Kaza",
}

// EventTypes returns the event catalog in definition order, without the
// EventOther sentinel.
func EventTypes() []EventType {
	out := make([]EventType, 0, len(eventTypeLabels)-1)
	for e := EventEarthquake; int(e) < len(eventTypeLabels); e++ {
		out = append(out, e)
	}
	return out
}

// Valid reports whether e is a catalog member or the EventOther sentinel.
func (e EventType) Valid() bool {
	return e >= EventOther && int(e) < len(eventTypeLabels)
}

// String returns the canonical Turkish label.
func (e EventType) String() string {
	if !e.Valid() {
		return fmt.Sprintf("EventType(%d)", int(e))
	}
	return eventTypeLabels[e]
}

func (e EventType) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("marshal event type %d: %w", int(e), ErrUnknownLabel)
	}
	return []byte(e.String()), nil
}

func (e *EventType) UnmarshalText(b []byte) error {
	v, err := ParseEventType(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseEventType resolves a canonical label back to its EventType.
func ParseEventType(label string) (EventType, error) {
	for i, l := range eventTypeLabels {
		if l == label {
			return EventType(i), nil
		}
	}
	return EventOther, fmt.Errorf("event type %q: %w", label, ErrUnknownLabel)
}

// Priority is the severity tier of a report. Larger values are more severe;
// the zero value is the lowest tier.
type Priority int

const (
	PriorityMedium Priority = iota
	PriorityHigh
	PriorityCritical
)

var priorityLabels = [...]string{
	PriorityMedium:   "Orta",
	PriorityHigh:     "Yüksek",
	PriorityCritical: "Kritik",
}

// Tiers returns the priority tiers in severity order, most severe first.
func Tiers() []Priority {
	return []Priority{PriorityCritical, PriorityHigh, PriorityMedium}
}

// LowestTier is the default priority when no tier keyword matches.
const LowestTier = PriorityMedium

func (p Priority) Valid() bool {
	return p >= PriorityMedium && int(p) < len(priorityLabels)
}

func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityLabels[p]
}

func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("marshal priority %d: %w", int(p), ErrUnknownLabel)
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePriority resolves a canonical tier label.
func ParsePriority(label string) (Priority, error) {
	for i, l := range priorityLabels {
		if l == label {
			return Priority(i), nil
		}
	}
	return LowestTier, fmt.Errorf("priority %q: %w", label, ErrUnknownLabel)
}

// Unit is a responding organization.
type Unit int

const (
	UnitAFAD Unit = iota
	UnitFireService
	UnitISKI
	UnitIGDAS
	UnitRoadMaintenance
	UnitHealthTeams
	UnitRescueTeams
	UnitTrafficTeams
	UnitMetroIstanbul
	UnitForestryDirectorate
	UnitBEDAS
	UnitTransportationDept
)

var unitLabels = [...]string{
	UnitAFAD:                "AFAD",
	UnitFireService:         "İtfaiye",
	UnitISKI:                "İSKİ",
	UnitIGDAS:               "İGDAŞ",
	UnitRoadMaintenance:     "Yol Bakım ve Altyapı",
	UnitHealthTeams:         "Sağlık Ekipleri",
	UnitRescueTeams:         "Kurtarma Ekipleri",
	UnitTrafficTeams:        "Trafik Ekipleri",
	UnitMetroIstanbul:       "Metro İstanbul",
	UnitForestryDirectorate: "Orman Bölge Müdürlüğü",
	UnitBEDAS:               "BEDAŞ",
	UnitTransportationDept:  "Ulaşım Daire Başkanlığı",
}

// DefaultUnit handles any event type without a unit assignment.
const DefaultUnit = UnitAFAD

// Units returns the unit catalog in definition order.
func Units() []Unit {
	out := make([]Unit, len(unitLabels))
	for i := range unitLabels {
		out[i] = Unit(i)
	}
	return out
}

func (u Unit) Valid() bool {
	return u >= UnitAFAD && int(u) < len(unitLabels)
}

func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitLabels[u]
}

func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("marshal unit %d: %w", int(u), ErrUnknownLabel)
	}
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(b []byte) error {
	v, err := ParseUnit(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// ParseUnit resolves a canonical unit label.
func ParseUnit(label string) (Unit, error) {
	for i, l := range unitLabels {
		if l == label {
			return Unit(i), nil
		}
	}
	return DefaultUnit, fmt.Errorf("unit %q: %w", label, ErrUnknownLabel)
}
