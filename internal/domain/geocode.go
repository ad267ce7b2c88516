package domain

import (
	"context"
	"log/slog"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

// EnrichWithGeocoding fills in coordinates for regions that lack them by
// forward geocoding the region name. Regions that already have coordinates
// are left untouched. If geocoder is nil the input is returned as is.
// Failures are logged and recorded in GeoSource; they never abort enrichment.
func EnrichWithGeocoding(ctx context.Context, regions []Region, geocoder Geocoder, logger *slog.Logger) []Region {
	if geocoder == nil {
		return regions
	}

	out := make([]Region, len(regions))
	for i, region := range regions {
		out[i] = enrichRegion(ctx, region, geocoder, logger)
	}
	return out
}

func enrichRegion(ctx context.Context, region Region, geocoder Geocoder, logger *slog.Logger) Region {
	if region.Geo != nil || region.Name == "" {
		return region
	}

	result, err := geocoder.ForwardGeocode(ctx, region.Name)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"region", region.Name,
			"line", region.Line,
			"error", err,
		)
		region.GeoSource = "failed"
		return region
	}
	if result.Lat == 0 && result.Lon == 0 {
		logger.Debug("forward geocoding returned no match", "region", region.Name)
		region.GeoSource = "failed"
		return region
	}

	region.Geo = &Geo{Lat: result.Lat, Lon: result.Lon}
	region.Geohash = geohash.Encode(result.Lat, result.Lon)
	region.FormattedAddress = result.FormattedAddress
	region.GeoConfidence = result.Confidence
	region.GeoSource = "forward"
	return region
}
