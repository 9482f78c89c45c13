package domain

import "context"

// PredictionRepository defines the interface for the optional write-only
// prediction/search log. The domain defines the interface (Dependency
// Inversion); the serving path never reads it back.
type PredictionRepository interface {
	// SavePredictions upserts the per-ward snapshot for one hour.
	SavePredictions(ctx context.Context, set PredictionSet) error

	// SaveSearchLog persists a search query and its resolved ward, if any.
	SaveSearchLog(ctx context.Context, query string, match *WardMatch) error

	// Health checks database connectivity.
	Health(ctx context.Context) error
}
