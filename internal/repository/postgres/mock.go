package postgres

import (
	"context"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
)

// MockRepository implements domain.PredictionRepository for demo mode, when
// no database is configured.
type MockRepository struct{}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SavePredictions is a no-op in mock mode
func (r *MockRepository) SavePredictions(ctx context.Context, set domain.PredictionSet) error {
	return nil
}

// SaveSearchLog is a no-op in mock mode
func (r *MockRepository) SaveSearchLog(ctx context.Context, query string, match *domain.WardMatch) error {
	return nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
