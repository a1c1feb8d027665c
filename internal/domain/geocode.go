package domain

import (
	"context"
	"log/slog"
)

// placeholderVillage is the form's catch-all option; it names no place.
const placeholderVillage = "Other"

// EnrichWithGeocoding attempts to locate the report's village within region.
// If geocoder is nil or geocoding fails, the report is returned with
// GeoSource set accordingly (graceful degradation).
func EnrichWithGeocoding(ctx context.Context, report CaseReport, geocoder Geocoder, region string, logger *slog.Logger) CaseReport {
	if geocoder == nil {
		return report
	}

	if report.Village == "" || report.Village == placeholderVillage {
		report.GeoSource = "original"
		return report
	}

	result, err := geocoder.ForwardGeocode(ctx, report.Village, region)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"report_id", report.ID,
			"village", report.Village,
			"region", region,
			"error", err,
		)
		report.GeoSource = "failed"
		return report
	}
	if result.Lat != 0 || result.Lon != 0 {
		report.Geo = Geo{Lat: result.Lat, Lon: result.Lon}
		report.FormattedAddress = result.FormattedAddress
		report.GeoConfidence = result.Confidence
		report.GeoSource = "forward"
		return report
	}

	report.GeoSource = "original"
	return report
}
