package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
	"github.com/vishal-chaure/RapidPSv/internal/observability"
	"github.com/vishal-chaure/RapidPSv/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	wardSvc    *service.WardService
	safetySvc  *service.SafetyService
	historySvc *service.HistoryService
	futureSvc  *service.FutureService
	tipsSvc    *service.TipsService
	searchSvc  *service.SearchService
	repo       service.PredictionRepository
	metrics    *observability.Metrics
}

// NewHandler creates a new handler
func NewHandler(
	wardSvc *service.WardService,
	safetySvc *service.SafetyService,
	historySvc *service.HistoryService,
	futureSvc *service.FutureService,
	tipsSvc *service.TipsService,
	searchSvc *service.SearchService,
	repo service.PredictionRepository,
	metrics *observability.Metrics,
) *Handler {
	return &Handler{
		wardSvc:    wardSvc,
		safetySvc:  safetySvc,
		historySvc: historySvc,
		futureSvc:  futureSvc,
		tipsSvc:    tipsSvc,
		searchSvc:  searchSvc,
		repo:       repo,
		metrics:    metrics,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "mumbai-safety-predictor",
		"version": "1.0.0",
	})
}

// Predict returns safety predictions for every ward at the requested hour
func (h *Handler) Predict(c *fiber.Ctx) error {
	hour, err := queryInt(c, "hour", 12)
	if err != nil {
		return h.errorResponse(c, err)
	}

	set, err := h.safetySvc.Predict(hour)
	if err != nil {
		return h.errorResponse(c, err)
	}
	h.metrics.PredictionsServed.Inc()

	// Log the snapshot to the database asynchronously
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if saveErr := h.repo.SavePredictions(bgCtx, set); saveErr != nil {
			log.Printf("Failed to save prediction snapshot: %v", saveErr)
		}
	}()

	return c.JSON(set)
}

// GetWards returns the ward boundaries as a GeoJSON FeatureCollection
func (h *Handler) GetWards(c *fiber.Ctx) error {
	return c.JSON(h.wardSvc.GeoJSON())
}

// GetHistorical returns a ward's synthetic history with period stats
func (h *Handler) GetHistorical(c *fiber.Ctx) error {
	wardID := c.Params("ward_id")
	days, err := queryInt(c, "days", 7)
	if err != nil {
		return h.errorResponse(c, err)
	}

	data, err := h.historySvc.HistoricalData(wardID, days)
	if err != nil {
		return h.errorResponse(c, err)
	}
	h.metrics.HistoricalQueries.Inc()

	return c.JSON(data)
}

// GetFuture returns projected risk for the next N hours
func (h *Handler) GetFuture(c *fiber.Ctx) error {
	wardID := c.Params("ward_id")
	hours, err := queryInt(c, "hours", 24)
	if err != nil {
		return h.errorResponse(c, err)
	}

	data, err := h.futureSvc.FutureRisk(wardID, hours)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(data)
}

// GetTips returns composed safety tips for a ward and hour
func (h *Handler) GetTips(c *fiber.Ctx) error {
	wardID := c.Params("ward_id")

	var hour *int
	if raw := c.Query("hour"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return h.errorResponse(c, fmt.Errorf("%w: hour must be an integer", domain.ErrInvalidInput))
		}
		// Out-of-range hours are rejected by the predictor.
		hour = &parsed
	}

	tips, err := h.tipsSvc.SafetyTips(wardID, hour)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(tips)
}

// Search resolves a free-text location query to a ward
func (h *Handler) Search(c *fiber.Ctx) error {
	query := c.Query("q")

	match, err := h.searchSvc.Search(c.Context(), query)
	if err != nil {
		return h.errorResponse(c, err)
	}

	// Log the search asynchronously
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if saveErr := h.repo.SaveSearchLog(bgCtx, query, &match); saveErr != nil {
			log.Printf("Failed to save search log: %v", saveErr)
		}
	}()

	return c.JSON(match)
}

// errorResponse maps domain errors onto the API error payload. Unexpected
// errors are logged server-side and surfaced as a generic 500.
func (h *Handler) errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	default:
		log.Printf("Unexpected error handling %s: %v", c.Path(), err)
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}

// queryInt parses an optional integer query parameter. Unlike fiber's
// QueryInt it rejects malformed values instead of silently defaulting.
func queryInt(c *fiber.Ctx, key string, defaultValue int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	return v, nil
}
