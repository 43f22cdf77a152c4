package domain

import (
	"context"
	"log/slog"
)

// CityCenter is the last-resort coordinate for reports with no usable
// location.
var CityCenter = Geo{Lat: 41.0082, Lon: 28.9784}

// CityName closes every geocoding query.
const CityName = "İstanbul"

var districtCentroids = map[string]Geo{
	"Avcılar":       {40.9792, 28.7214},
	"Kadıköy":       {40.9927, 29.0277},
	"Beşiktaş":      {41.0430, 29.0094},
	"Beyoğlu":       {41.0370, 28.9770},
	"Fatih":         {41.0186, 28.9397},
	"Şişli":         {41.0602, 28.9877},
	"Üsküdar":       {41.0234, 29.0152},
	"Bakırköy":      {40.9819, 28.8772},
	"Sarıyer":       {41.1667, 29.0500},
	"Maltepe":       {40.9346, 29.1296},
	"Kartal":        {40.8903, 29.1856},
	"Pendik":        {40.8761, 29.2336},
	"Bağcılar":      {41.0364, 28.8567},
	"Bahçelievler":  {41.0019, 28.8614},
	"Esenyurt":      {41.0333, 28.6833},
	"Beylikdüzü":    {41.0000, 28.6333},
	"Büyükçekmece":  {41.0167, 28.5833},
	"Silivri":       {41.0736, 28.2469},
	"Çatalca":       {41.1439, 28.4614},
	"Arnavutköy":    {41.1833, 28.7333},
	"Başakşehir":    {41.0939, 28.8011},
	"Esenler":       {41.0436, 28.8756},
	"Gaziosmanpaşa": {41.0667, 28.9167},
	"Eyüpsultan":    {41.0500, 28.9333},
	"Kağıthane":     {41.0833, 28.9667},
	"Sultangazi":    {41.1000, 28.8667},
	"Ataşehir":      {40.9833, 29.1167},
	"Ümraniye":      {41.0167, 29.1167},
	"Sancaktepe":    {41.0000, 29.2333},
	"Sultanbeyli":   {40.9667, 29.2667},
	"Çekmeköy":      {41.0333, 29.1667},
	"Beykoz":        {41.1333, 29.1000},
	"Şile":          {41.1756, 29.6128},
	"Adalar":        {40.8761, 29.0906},
	"Tuzla":         {40.8167, 29.3000},
}

// DistrictCentroid returns the centroid of a known district.
func DistrictCentroid(district string) (Geo, bool) {
	g, ok := districtCentroids[district]
	return g, ok
}

// Geolocate places a report. It tries the geocoder when a neighborhood or
// avenue was extracted, then the district centroid, then CityCenter.
// Geocoder errors are logged and never returned. A nil geocoder skips the
// first step.
func Geolocate(ctx context.Context, report Report, geocoder Geocoder, logger *slog.Logger) Report {
	q := AddressQueryFor(report.Analysis.Location)

	if geocoder != nil && !q.Empty() {
		result, err := geocoder.Geocode(ctx, q)
		switch {
		case err != nil:
			logger.Warn("geocoding failed",
				"report_id", report.ID,
				"neighborhood", q.Neighborhood,
				"avenue", q.Avenue,
				"district", q.District,
				"error", err,
			)
		case result.Found:
			report.Geo = Geo{Lat: result.Lat, Lon: result.Lon}
			report.GeoLabel = result.Label
			report.GeoSource = GeoSourceGeocoded
			return report
		}
	}

	if g, ok := DistrictCentroid(q.District); ok {
		report.Geo = g
		report.GeoLabel = q.District + ", " + CityName
		report.GeoSource = GeoSourceDistrict
		return report
	}

	report.Geo = CityCenter
	report.GeoLabel = CityName
	report.GeoSource = GeoSourceDefault
	return report
}
