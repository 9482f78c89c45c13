package service

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
	"github.com/vishal-chaure/RapidPSv/pkg/utils"
)

// riskFactorCatalog is the fixed pool risk factors are sampled from.
// Factor-specific tips in tips_service.go are keyed by these exact strings.
var riskFactorCatalog = []string{
	"Poorly lit areas",
	"High pedestrian traffic",
	"Proximity to transit hubs",
	"Entertainment venues",
	"Commercial activity",
	"Residential density",
	"Previous incidents",
	"School/college proximity",
}

// SafetyService maps (hour, ward) to a safety level and crime probability.
// All scoring is pure and deterministic: a piecewise hour-of-day base curve
// perturbed by a stable per-ward hash jitter.
type SafetyService struct {
	wardSvc *WardService
}

// NewSafetyService creates a new safety service
func NewSafetyService(wardSvc *WardService) *SafetyService {
	return &SafetyService{wardSvc: wardSvc}
}

// Predict scores every ward for the given hour, in store order.
func (s *SafetyService) Predict(hour int) (domain.PredictionSet, error) {
	if hour < 0 || hour > 23 {
		return domain.PredictionSet{}, fmt.Errorf("%w: hour must be between 0 and 23", domain.ErrInvalidInput)
	}

	wards := s.wardSvc.Wards()
	set := domain.PredictionSet{
		Hour:      hour,
		Timestamp: fmt.Sprintf("%02d:00", hour),
		Wards:     make([]domain.WardPrediction, 0, len(wards)),
	}

	base := baseSafety(hour)
	for _, w := range wards {
		score := utils.Clamp(base+wardJitter(w.ID), 0, 1)
		set.Wards = append(set.Wards, domain.WardPrediction{
			WardID:           w.ID,
			Name:             w.Name,
			SafetyLevel:      classify(score),
			CrimeProbability: utils.RoundTo(1-score, 3),
			RiskFactors:      s.RiskFactors(hour, w.ID),
		})
	}
	return set, nil
}

// RiskFactors samples 1-3 factors from the catalog without replacement,
// seeded by (ward, hour) so identical inputs always select the same factors.
func (s *SafetyService) RiskFactors(hour int, wardID string) []string {
	seed := int64(utils.StableHash(fmt.Sprintf("%s_%d", wardID, hour)))
	rng := rand.New(rand.NewSource(seed))

	n := 1 + rng.Intn(3)
	perm := rng.Perm(len(riskFactorCatalog))

	factors := make([]string, 0, n)
	for _, idx := range perm[:n] {
		factors = append(factors, riskFactorCatalog[idx])
	}
	return factors
}

// baseSafety returns the nominal safety value for an hour: a fixed bucket
// offset modulated by a sine term over the day.
func baseSafety(hour int) float64 {
	return bucketOffset(hour) + 0.1*math.Sin(math.Pi*float64(hour)/12)
}

// bucketOffset is the raw time-of-day offset. The historical generator uses
// it without the sine term, matching how the series was originally seeded.
func bucketOffset(hour int) float64 {
	switch hour {
	case 10, 11, 12, 13, 14, 15: // mid-day is safest
		return 0.8
	case 7, 8, 9, 16, 17, 18: // morning and early evening
		return 0.7
	case 19, 20, 6: // transition hours
		return 0.5
	case 21, 22, 5: // late evening
		return 0.3
	default: // 23:00-04:00
		return 0.2
	}
}

// wardJitter is a stable per-ward offset in [0, 0.19].
func wardJitter(wardID string) float64 {
	return float64(utils.StableHash(wardID)%20) / 100
}

// classify maps a safety score to its level band.
func classify(score float64) domain.SafetyLevel {
	switch {
	case score >= 0.7:
		return domain.LevelGreen
	case score >= 0.4:
		return domain.LevelYellow
	default:
		return domain.LevelRed
	}
}
