package domain

// Ward represents a Mumbai administrative ward with its polygon boundary.
// Boundary vertices are (lng, lat) pairs, GeoJSON coordinate order.
type Ward struct {
	ID       string       `json:"ward_id"`
	Name     string       `json:"name"`
	Boundary [][2]float64 `json:"-"`
}

// Centroid returns the mean of the boundary vertices as (lat, lng).
// ok is false when the ward has no usable geometry.
func (w Ward) Centroid() (lat, lng float64, ok bool) {
	if len(w.Boundary) == 0 {
		return 0, 0, false
	}
	for _, c := range w.Boundary {
		lng += c[0]
		lat += c[1]
	}
	n := float64(len(w.Boundary))
	return lat / n, lng / n, true
}

// WardMatch is the result of resolving a point or search query to a ward.
type WardMatch struct {
	WardID          string  `json:"ward_id"`
	Name            string  `json:"name"`
	DistanceKm      float64 `json:"distance_km"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	SearchQuery     string  `json:"search_query,omitempty"`
	MatchedLocation string  `json:"matched_location,omitempty"`
	SearchLat       float64 `json:"search_lat,omitempty"`
	SearchLng       float64 `json:"search_lng,omitempty"`
}

// GeoJSON FeatureCollection types for the ward boundary file and /api/wards.

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   Geometry               `json:"geometry"`
}

type Geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// MumbaiCenter coordinates and the radius within which a location is
// considered part of the city.
const (
	MumbaiCenterLat   = 19.0760
	MumbaiCenterLng   = 72.8777
	MaxWardDistanceKm = 30.0
)
