package domain

import (
	"context"
	"log/slog"
	"strings"
)

// FacilityKindFor picks the facility type that should respond to an
// analysis: fire stations for fire-service or fire events, hospitals for
// health units and earthquakes, fire stations otherwise.
func FacilityKindFor(a AnalysisResult) FacilityKind {
	unit := a.PrimaryUnit().String()
	event := a.EventType.String()

	switch {
	case strings.Contains(unit, "İtfaiye") || strings.Contains(event, "Yangın"):
		return FacilityFireStation
	case strings.Contains(unit, "Sağlık") || strings.Contains(unit, "Ambulans") || a.EventType == EventEarthquake:
		return FacilityHospital
	default:
		return FacilityFireStation
	}
}

// LocateFacility attaches the nearest facility to a placed report. Absence
// and locator errors leave Facility nil; errors are logged.
func LocateFacility(ctx context.Context, report Report, locator FacilityLocator, logger *slog.Logger) Report {
	if locator == nil {
		return report
	}
	kind := FacilityKindFor(report.Analysis)
	f, ok, err := locator.Nearest(ctx, report.Geo.Lat, report.Geo.Lon, kind)
	if err != nil {
		logger.Warn("facility lookup failed",
			"report_id", report.ID,
			"kind", string(kind),
			"lat", report.Geo.Lat,
			"lon", report.Geo.Lon,
			"error", err,
		)
		return report
	}
	if !ok {
		return report
	}
	report.Facility = &f
	return report
}
