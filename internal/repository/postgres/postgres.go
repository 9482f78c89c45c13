package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
)

// PostgresRepository implements domain.PredictionRepository. The log is
// write-only from the API's point of view; nothing in the serving path
// reads it back.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SavePredictions upserts the per-ward snapshot for one hour, one row per
// (ward, hour).
func (r *PostgresRepository) SavePredictions(ctx context.Context, set domain.PredictionSet) error {
	query := `
		INSERT INTO safety_predictions (ward_id, hour, safety_level, crime_probability, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (ward_id, hour) DO UPDATE
		SET safety_level = EXCLUDED.safety_level,
		    crime_probability = EXCLUDED.crime_probability,
		    created_at = EXCLUDED.created_at
	`

	for _, w := range set.Wards {
		_, err := r.pool.Exec(ctx, query, w.WardID, set.Hour, string(w.SafetyLevel), w.CrimeProbability)
		if err != nil {
			return fmt.Errorf("postgres: failed to save prediction for ward %s: %w", w.WardID, err)
		}
	}
	return nil
}

// SaveSearchLog persists a search query and its resolved ward, if any.
func (r *PostgresRepository) SaveSearchLog(ctx context.Context, searchQuery string, match *domain.WardMatch) error {
	query := `
		INSERT INTO search_logs (query, ward_id, matched_location, distance_km, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	// Unresolved searches are logged with null ward columns.
	var wardID, location interface{}
	var distance interface{}
	if match != nil {
		wardID = match.WardID
		location = match.MatchedLocation
		distance = match.DistanceKm
	}

	_, err := r.pool.Exec(ctx, query, searchQuery, wardID, location, distance)
	if err != nil {
		return fmt.Errorf("postgres: failed to save search log: %w", err)
	}
	return nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
