package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
)

// NominatimClient implements domain.Geocoder against a Nominatim-compatible
// search endpoint. Nominatim's usage policy requires a User-Agent.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimClient creates a geocoding client with a bounded timeout.
// An empty baseURL falls back to the public OpenStreetMap instance.
func NewNominatimClient(baseURL string, timeout time.Duration) *NominatimClient {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: "mumbai-safety-predictor/1.0",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// nominatimHit is one result row; Nominatim returns coordinates as strings.
type nominatimHit struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-text query to coordinates.
func (c *NominatimClient) Geocode(ctx context.Context, query string) (domain.GeocodeResult, bool, error) {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return domain.GeocodeResult{}, false, fmt.Errorf("geocode: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeocodeResult{}, false, fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.GeocodeResult{}, false, fmt.Errorf("geocode: provider returned status %d", resp.StatusCode)
	}

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return domain.GeocodeResult{}, false, fmt.Errorf("geocode: failed to decode response: %w", err)
	}
	if len(hits) == 0 {
		return domain.GeocodeResult{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(hits[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(hits[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.GeocodeResult{}, false, fmt.Errorf("geocode: malformed coordinates in response")
	}

	return domain.GeocodeResult{
		Lat:         lat,
		Lng:         lon,
		DisplayName: hits[0].DisplayName,
	}, true, nil
}
