package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
	"github.com/vishal-chaure/RapidPSv/internal/observability"
	"github.com/vishal-chaure/RapidPSv/internal/repository/postgres"
	"github.com/vishal-chaure/RapidPSv/internal/service"
)

// stubGeocoder returns a fixed geocoding result.
type stubGeocoder struct {
	result domain.GeocodeResult
	found  bool
}

func (g *stubGeocoder) Geocode(_ context.Context, _ string) (domain.GeocodeResult, bool, error) {
	return g.result, g.found, nil
}

func testWards() []domain.Ward {
	square := func(lat, lng, r float64) [][2]float64 {
		return [][2]float64{
			{lng - r, lat - r},
			{lng + r, lat - r},
			{lng + r, lat + r},
			{lng - r, lat + r},
			{lng - r, lat - r},
		}
	}
	return []domain.Ward{
		{ID: "W1", Name: "Ward A1", Boundary: square(19.0760, 72.8777, 0.005)},
		{ID: "W2", Name: "Ward B1", Boundary: square(19.1000, 72.9000, 0.005)},
	}
}

func newTestApp(geo domain.Geocoder) *fiber.App {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC))
	metrics := observability.NewMetricsForTesting()

	wardSvc := service.NewWardServiceFromWards(testWards())
	safetySvc := service.NewSafetyService(wardSvc)
	historySvc := service.NewHistoryService(wardSvc, clock)
	futureSvc := service.NewFutureService(wardSvc, safetySvc, clock)
	tipsSvc := service.NewTipsService(safetySvc, clock)
	searchSvc := service.NewSearchService(wardSvc, geo, metrics)

	handler := NewHandler(wardSvc, safetySvc, historySvc, futureSvc, tipsSvc, searchSvc,
		postgres.NewMockRepository(), metrics)

	app := fiber.New()
	SetupRoutes(app, handler)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp.StatusCode, payload
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	status, payload := doRequest(t, app, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", payload["status"])
}

func TestPredictEndpoint(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	status, payload := doRequest(t, app, "/api/predict?hour=12")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, float64(12), payload["hour"])
	assert.Equal(t, "12:00", payload["timestamp"])

	wards, ok := payload["wards"].([]interface{})
	require.True(t, ok)
	require.Len(t, wards, 2)

	first := wards[0].(map[string]interface{})
	assert.Equal(t, "W1", first["ward_id"])
	assert.Contains(t, []string{"green", "yellow", "red"}, first["safety_level"])
}

func TestPredictEndpoint_DefaultHour(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	status, payload := doRequest(t, app, "/api/predict")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(12), payload["hour"])
}

func TestPredictEndpoint_InvalidHour(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	for _, path := range []string{"/api/predict?hour=25", "/api/predict?hour=-1", "/api/predict?hour=abc"} {
		status, payload := doRequest(t, app, path)
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.NotEmpty(t, payload["error"], path)
	}
}

func TestWardsEndpoint(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	status, payload := doRequest(t, app, "/api/wards")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "FeatureCollection", payload["type"])
	features, ok := payload["features"].([]interface{})
	require.True(t, ok)
	assert.Len(t, features, 2)
}

func TestHistoricalEndpoint(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	status, payload := doRequest(t, app, "/api/historical/W1")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "W1", payload["ward_id"])
	assert.Equal(t, float64(7), payload["days_analyzed"])
	assert.Contains(t, payload, "period_stats")
}

func TestHistoricalEndpoint_ClampsDays(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	status, payload := doRequest(t, app, "/api/historical/W1?days=45")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(30), payload["days_analyzed"])
}

func TestHistoricalEndpoint_Errors(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	status, _ := doRequest(t, app, "/api/historical/unknown")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, app, "/api/historical/W1?days=-1")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, "/api/historical/W1?days=abc")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestFutureEndpoint(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	status, payload := doRequest(t, app, "/api/future/W1?hours=5")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "W1", payload["ward_id"])
	predictions, ok := payload["predictions"].([]interface{})
	require.True(t, ok)
	assert.Len(t, predictions, 5)
}

func TestFutureEndpoint_Errors(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	status, _ := doRequest(t, app, "/api/future/W1?hours=0")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, "/api/future/unknown")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTipsEndpoint(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	status, payload := doRequest(t, app, "/api/tips/W1?hour=12")
	require.Equal(t, http.StatusOK, status)

	general, ok := payload["general_tips"].([]interface{})
	require.True(t, ok)
	assert.Len(t, general, 4)
	assert.NotEmpty(t, payload["specific_tips"])
}

func TestTipsEndpoint_Errors(t *testing.T) {
	app := newTestApp(&stubGeocoder{})

	status, _ := doRequest(t, app, "/api/tips/W1?hour=99")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, "/api/tips/W1?hour=abc")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, "/api/tips/unknown")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSearchEndpoint(t *testing.T) {
	geo := &stubGeocoder{
		result: domain.GeocodeResult{Lat: 19.0760, Lng: 72.8777, DisplayName: "Dadar, Mumbai, India"},
		found:  true,
	}
	app := newTestApp(geo)

	status, payload := doRequest(t, app, "/api/search?q=Dadar")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "W1", payload["ward_id"])
	assert.Equal(t, "Dadar, Mumbai, India", payload["matched_location"])
}

func TestSearchEndpoint_Errors(t *testing.T) {
	app := newTestApp(&stubGeocoder{found: false})

	status, _ := doRequest(t, app, "/api/search")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, "/api/search?q=nowhere")
	assert.Equal(t, http.StatusNotFound, status)
}
