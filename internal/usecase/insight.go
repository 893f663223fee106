package usecase

import (
	"context"

	"retailcast/internal/domain/entity"
)

// InsightUsecase backs the dashboard's two user actions. Implementations
// validate numeric ranges before touching the upstream API.
type InsightUsecase interface {
	// Forecast requests a forecast for the given number of days, bounded to
	// the configured range.
	Forecast(ctx context.Context, days int) (*entity.ForecastSeries, error)

	// OptimalPrice requests the optimal price for a positive base price.
	OptimalPrice(ctx context.Context, basePrice float64) (float64, error)
}
