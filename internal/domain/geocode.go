package domain

import "context"

// GeocodeResult is a geocoding provider hit for a free-text query.
type GeocodeResult struct {
	Lat         float64
	Lng         float64
	DisplayName string
}

// Geocoder resolves a free-text location query to coordinates.
// Found is false when the provider returned no usable result.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (result GeocodeResult, found bool, err error)
}
