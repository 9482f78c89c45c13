package service

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
)

func testFutureService(at time.Time) *FutureService {
	wardSvc := testWardService()
	return NewFutureService(wardSvc, NewSafetyService(wardSvc), clockwork.NewFakeClockAt(at))
}

func TestFutureRisk_ProjectsRequestedHours(t *testing.T) {
	now := time.Date(2025, 3, 15, 22, 0, 0, 0, time.UTC)
	svc := testFutureService(now)

	risk, err := svc.FutureRisk("W1", 24)
	require.NoError(t, err)

	assert.Equal(t, "W1", risk.WardID)
	assert.Equal(t, "Ward A1", risk.WardName)
	require.Len(t, risk.Predictions, 24)

	assert.Equal(t, "2025-03-15 22:00", risk.Predictions[0].Timestamp)
	assert.Equal(t, 22, risk.Predictions[0].Hour)
	// Crosses midnight into the next day.
	assert.Equal(t, "2025-03-16 00:00", risk.Predictions[2].Timestamp)

	for _, p := range risk.Predictions {
		assert.Contains(t, []domain.SafetyLevel{domain.LevelGreen, domain.LevelYellow, domain.LevelRed}, p.SafetyLevel)
		assert.GreaterOrEqual(t, p.CrimeProbability, 0.0)
		assert.LessOrEqual(t, p.CrimeProbability, 1.0)
		assert.NotEmpty(t, p.RiskFactors)
	}
}

func TestFutureRisk_Deterministic(t *testing.T) {
	now := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)

	a, err := testFutureService(now).FutureRisk("W2", 48)
	require.NoError(t, err)
	b, err := testFutureService(now).FutureRisk("W2", 48)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFutureRisk_ValidatesHours(t *testing.T) {
	svc := testFutureService(time.Now())

	for _, hours := range []int{0, -5, maxFutureHours + 1} {
		_, err := svc.FutureRisk("W1", hours)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "hours %d", hours)
	}
}

func TestFutureRisk_UnknownWard(t *testing.T) {
	svc := testFutureService(time.Now())

	_, err := svc.FutureRisk("nope", 24)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFutureRisk_WardWithoutGeometry(t *testing.T) {
	svc := testFutureService(time.Now())

	_, err := svc.FutureRisk("W3", 24)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHeuristicClassifier_MidDayGreen(t *testing.T) {
	var c heuristicClassifier

	level, score := c.Classify(domain.Features{Hour: 12, Lat: 19.0760, Lng: 72.8777})
	assert.Equal(t, domain.LevelGreen, level)
	assert.GreaterOrEqual(t, score, 0.8)

	// Identical features always classify identically.
	again, scoreAgain := c.Classify(domain.Features{Hour: 12, Lat: 19.0760, Lng: 72.8777})
	assert.Equal(t, level, again)
	assert.Equal(t, score, scoreAgain)
}
