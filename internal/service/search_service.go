package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
	"github.com/vishal-chaure/RapidPSv/internal/observability"
	"github.com/vishal-chaure/RapidPSv/pkg/utils"
)

// SearchService resolves free-text location queries to wards via geocoding.
type SearchService struct {
	wardSvc  *WardService
	geocoder domain.Geocoder
	metrics  *observability.Metrics
}

// NewSearchService creates a new search service. metrics may be nil.
func NewSearchService(wardSvc *WardService, geocoder domain.Geocoder, metrics *observability.Metrics) *SearchService {
	return &SearchService{
		wardSvc:  wardSvc,
		geocoder: geocoder,
		metrics:  metrics,
	}
}

// Search geocodes the query and maps the hit to the nearest ward. Locations
// outside the city radius, geocoder misses, and geocoder failures all resolve
// to ErrNotFound: the geocoder fails closed rather than fabricating a match.
func (s *SearchService) Search(ctx context.Context, query string) (domain.WardMatch, error) {
	if strings.TrimSpace(query) == "" {
		s.count("invalid")
		return domain.WardMatch{}, fmt.Errorf("%w: search query is required", domain.ErrInvalidInput)
	}

	// Qualify bare queries so the provider resolves within the right city.
	if !strings.Contains(strings.ToLower(query), "mumbai") {
		query = query + ", Mumbai, India"
	}

	result, found, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		log.Printf("Geocoding failed for %q: %v", query, err)
		s.count("geocode_error")
		return domain.WardMatch{}, fmt.Errorf("%w: location could not be resolved", domain.ErrNotFound)
	}
	if !found {
		s.count("not_found")
		return domain.WardMatch{}, fmt.Errorf("%w: location not found", domain.ErrNotFound)
	}

	distToCity := utils.Haversine(domain.MumbaiCenterLat, domain.MumbaiCenterLng, result.Lat, result.Lng)
	if distToCity > domain.MaxWardDistanceKm {
		s.count("not_found")
		return domain.WardMatch{}, fmt.Errorf("%w: location is not in the Mumbai area", domain.ErrNotFound)
	}

	match := s.wardSvc.NearestWard(result.Lat, result.Lng)
	if match == nil {
		s.count("not_found")
		return domain.WardMatch{}, fmt.Errorf("%w: no ward near the resolved location", domain.ErrNotFound)
	}

	match.SearchQuery = query
	match.MatchedLocation = result.DisplayName
	match.SearchLat = result.Lat
	match.SearchLng = result.Lng

	s.count("found")
	return *match, nil
}

func (s *SearchService) count(outcome string) {
	if s.metrics != nil {
		s.metrics.SearchRequests.WithLabelValues(outcome).Inc()
	}
}
