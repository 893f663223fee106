// Package service declares infrastructure-facing service contracts.
package service

import (
	"context"

	"retailcast/internal/domain/entity"
)

// InsightClient talks to the external forecasting/pricing API the dashboard
// fronts. Implementations must surface any non-success upstream status as an
// error; the dashboard never retries.
type InsightClient interface {
	Forecast(ctx context.Context, days int) (*entity.ForecastSeries, error)
	OptimalPrice(ctx context.Context, basePrice float64) (float64, error)
}
