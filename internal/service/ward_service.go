package service

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
	"github.com/vishal-chaure/RapidPSv/pkg/utils"
)

// WardService owns the ward geometry collection. The collection is loaded or
// generated once at startup and read-only afterwards, so it is safe to share
// across concurrent requests without locking.
type WardService struct {
	wards []domain.Ward
	index map[string]int // ward id -> position in wards
}

// NewWardService loads ward boundaries from the GeoJSON file at path, or
// synthesizes a mock collection around the Mumbai center when the file is
// missing or unreadable. The resulting collection is never empty.
func NewWardService(path string) *WardService {
	s := &WardService{index: make(map[string]int)}

	if wards, err := loadWardFile(path); err == nil && len(wards) > 0 {
		s.wards = wards
		log.Printf("Loaded %d ward boundaries from %s", len(wards), path)
	} else {
		if err != nil {
			log.Printf("Ward GeoJSON not available (%v), generating mock wards", err)
		}
		s.wards = generateMockWards()
		log.Printf("Generated %d mock wards around Mumbai center", len(s.wards))
	}

	for i, w := range s.wards {
		s.index[w.ID] = i
	}
	return s
}

// Wards returns the collection in its stable iteration order.
func (s *WardService) Wards() []domain.Ward {
	return s.wards
}

// Get returns the ward with the given id.
func (s *WardService) Get(id string) (domain.Ward, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.Ward{}, false
	}
	return s.wards[i], true
}

// NearestWard resolves (lat, lng) to the closest ward centroid by
// great-circle distance. Ties keep the first-encountered ward. Returns nil
// when the minimum distance exceeds the city radius.
func (s *WardService) NearestWard(lat, lng float64) *domain.WardMatch {
	var nearest *domain.WardMatch
	minDist := -1.0

	for _, w := range s.wards {
		cLat, cLng, ok := w.Centroid()
		if !ok {
			continue
		}
		dist := utils.Haversine(lat, lng, cLat, cLng)
		if minDist < 0 || dist < minDist {
			minDist = dist
			nearest = &domain.WardMatch{
				WardID:     w.ID,
				Name:       w.Name,
				DistanceKm: utils.RoundTo(dist, 2),
				Latitude:   cLat,
				Longitude:  cLng,
			}
		}
	}

	if nearest == nil || minDist > domain.MaxWardDistanceKm {
		return nil
	}
	return nearest
}

// GeoJSON returns the collection as a FeatureCollection for /api/wards.
func (s *WardService) GeoJSON() domain.FeatureCollection {
	fc := domain.FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]domain.Feature, 0, len(s.wards)),
	}
	for _, w := range s.wards {
		fc.Features = append(fc.Features, domain.Feature{
			Type: "Feature",
			Properties: map[string]interface{}{
				"ward_id": w.ID,
				"name":    w.Name,
			},
			Geometry: domain.Geometry{
				Type:        "Polygon",
				Coordinates: [][][2]float64{w.Boundary},
			},
		})
	}
	return fc
}

func loadWardFile(path string) ([]domain.Ward, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc domain.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse ward geojson: %w", err)
	}

	wards := make([]domain.Ward, 0, len(fc.Features))
	for _, f := range fc.Features {
		id, _ := f.Properties["ward_id"].(string)
		if id == "" {
			continue
		}
		name, _ := f.Properties["name"].(string)
		if name == "" {
			name = fmt.Sprintf("Ward %s", id)
		}
		var boundary [][2]float64
		if len(f.Geometry.Coordinates) > 0 {
			boundary = f.Geometry.Coordinates[0]
		}
		wards = append(wards, domain.Ward{ID: id, Name: name, Boundary: boundary})
	}
	return wards, nil
}

// generateMockWards scatters small square wards around the Mumbai center,
// mirroring the shape of real ward data closely enough for the demo paths.
func generateMockWards() []domain.Ward {
	wards := make([]domain.Ward, 0, 40)

	for i := 0; i < 40; i++ {
		latOffset := rand.Float64() * 0.05
		if rand.Float64() > 0.5 {
			latOffset = -latOffset
		}
		lngOffset := rand.Float64() * 0.05
		if rand.Float64() > 0.5 {
			lngOffset = -lngOffset
		}

		lat := domain.MumbaiCenterLat + latOffset
		lng := domain.MumbaiCenterLng + lngOffset

		const r = 0.005 // square half-width in degrees
		boundary := [][2]float64{
			{lng - r, lat - r},
			{lng + r, lat - r},
			{lng + r, lat + r},
			{lng - r, lat + r},
			{lng - r, lat - r},
		}

		wards = append(wards, domain.Ward{
			ID:       fmt.Sprintf("W%d", i+1),
			Name:     fmt.Sprintf("Ward %c%d", 'A'+i%26, i/26+1),
			Boundary: boundary,
		})
	}
	return wards
}

// NewWardServiceFromWards builds a store over a fixed collection. Used by
// tests that need known geometry.
func NewWardServiceFromWards(wards []domain.Ward) *WardService {
	s := &WardService{wards: wards, index: make(map[string]int)}
	for i, w := range wards {
		s.index[w.ID] = i
	}
	return s
}
