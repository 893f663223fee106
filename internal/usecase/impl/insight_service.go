package impl

import (
	"context"
	"log/slog"

	"retailcast/config"
	"retailcast/internal/domain/entity"
	domainerrors "retailcast/internal/domain/errors"
	"retailcast/internal/domain/service"
	"retailcast/internal/usecase"
)

// InsightService validates dashboard inputs and delegates to the external
// insight API client. No retry, no caching, no local computation.
type InsightService struct {
	cfg    *config.Config
	client service.InsightClient
	logger *slog.Logger
}

// NewInsightService is the constructor for InsightService.
func NewInsightService(cfg *config.Config, client service.InsightClient, logger *slog.Logger) usecase.InsightUsecase {
	return &InsightService{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

// Forecast requests a forecast for days, bounded to the configured range.
func (s *InsightService) Forecast(ctx context.Context, days int) (*entity.ForecastSeries, error) {
	if days < s.cfg.Insight.MinForecastDays || days > s.cfg.Insight.MaxForecastDays {
		return nil, domainerrors.ErrForecastRange
	}

	series, err := s.client.Forecast(ctx, days)
	if err != nil {
		return nil, err
	}

	return series, nil
}

// OptimalPrice requests the optimal price for a positive base price.
func (s *InsightService) OptimalPrice(ctx context.Context, basePrice float64) (float64, error) {
	if basePrice <= 0 {
		return 0, domainerrors.ErrBasePrice
	}

	return s.client.OptimalPrice(ctx, basePrice)
}
