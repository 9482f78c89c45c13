package service

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
	"github.com/vishal-chaure/RapidPSv/pkg/utils"
)

// maxFutureHours caps projections at one week.
const maxFutureHours = 168

// Classifier maps a feature vector to a safety level and score. The default
// is the heuristic curve; a trained model can be swapped in as long as it
// stays deterministic for identical inputs.
type Classifier interface {
	Classify(f domain.Features) (domain.SafetyLevel, float64)
}

// heuristicClassifier scores with the base curve plus a jitter keyed by the
// feature coordinates, so the same location always classifies the same way.
type heuristicClassifier struct{}

func (heuristicClassifier) Classify(f domain.Features) (domain.SafetyLevel, float64) {
	key := fmt.Sprintf("%.4f,%.4f", f.Lat, f.Lng)
	jitter := float64(utils.StableHash(key)%20) / 100
	score := utils.Clamp(baseSafety(f.Hour)+jitter, 0, 1)
	return classify(score), score
}

// FutureService projects per-ward risk for the next N hours.
type FutureService struct {
	wardSvc    *WardService
	safetySvc  *SafetyService
	classifier Classifier
	clock      clockwork.Clock
}

// NewFutureService creates a future-risk service over the heuristic classifier.
func NewFutureService(wardSvc *WardService, safetySvc *SafetyService, clock clockwork.Clock) *FutureService {
	return &FutureService{
		wardSvc:    wardSvc,
		safetySvc:  safetySvc,
		classifier: heuristicClassifier{},
		clock:      clock,
	}
}

// FutureRisk classifies each of the next futureHours hours from now for the
// ward's centroid.
func (s *FutureService) FutureRisk(wardID string, futureHours int) (domain.FutureRisk, error) {
	if futureHours < 1 || futureHours > maxFutureHours {
		return domain.FutureRisk{}, fmt.Errorf("%w: hours must be between 1 and %d", domain.ErrInvalidInput, maxFutureHours)
	}

	ward, ok := s.wardSvc.Get(wardID)
	if !ok {
		return domain.FutureRisk{}, fmt.Errorf("%w: ward %s not found", domain.ErrNotFound, wardID)
	}
	lat, lng, ok := ward.Centroid()
	if !ok {
		return domain.FutureRisk{}, fmt.Errorf("%w: ward %s has no resolvable centroid", domain.ErrNotFound, wardID)
	}

	now := s.clock.Now()
	predictions := make([]domain.FuturePrediction, 0, futureHours)
	for i := 0; i < futureHours; i++ {
		t := now.Add(time.Duration(i) * time.Hour)
		features := domain.Features{
			Hour:    t.Hour(),
			Weekday: int(t.Weekday()),
			Month:   int(t.Month()),
			Lat:     lat,
			Lng:     lng,
		}
		level, score := s.classifier.Classify(features)
		predictions = append(predictions, domain.FuturePrediction{
			Timestamp:        t.Format("2006-01-02 15:00"),
			Hour:             t.Hour(),
			SafetyLevel:      level,
			CrimeProbability: utils.RoundTo(1-score, 3),
			RiskFactors:      s.safetySvc.RiskFactors(t.Hour(), wardID),
		})
	}

	return domain.FutureRisk{
		WardID:      wardID,
		WardName:    ward.Name,
		Predictions: predictions,
	}, nil
}
