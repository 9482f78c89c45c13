package service

import (
	"github.com/vishal-chaure/RapidPSv/internal/domain"
)

// PredictionRepository is re-exported from domain for convenience
type PredictionRepository = domain.PredictionRepository
