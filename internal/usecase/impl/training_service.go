package impl

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"retailcast/config"
	"retailcast/internal/domain/entity"
	"retailcast/internal/domain/repository"
	"retailcast/internal/infra/forecast"
	"retailcast/internal/usecase"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
)

// TrainingService aggregates cleaned transactions into the daily sales
// series, fits the forecasting model and persists the forecast table plus
// the model artifact. Each run fully replaces both outputs.
type TrainingService struct {
	cfg           *config.Config
	cleanStore    repository.CleanStore
	forecastStore repository.ForecastStore
	forecaster    forecast.Forecaster
	logger        *slog.Logger
}

// NewTrainingService is the constructor for TrainingService.
func NewTrainingService(
	cfg *config.Config,
	cleanStore repository.CleanStore,
	forecastStore repository.ForecastStore,
	forecaster forecast.Forecaster,
	logger *slog.Logger,
) usecase.TrainingUsecase {
	return &TrainingService{
		cfg:           cfg,
		cleanStore:    cleanStore,
		forecastStore: forecastStore,
		forecaster:    forecaster,
		logger:        logger,
	}
}

// Train runs the whole stage.
func (s *TrainingService) Train(ctx context.Context) (*usecase.TrainResult, error) {
	observed, err := s.loadDailySales()
	if err != nil {
		return nil, err
	}

	// Calendar days inside the observed range with no transactions are
	// explicit zero-revenue days: the model assumes an evenly spaced
	// series, and for retail revenue an absent day genuinely took in
	// nothing.
	series, filled := fillGaps(observed)
	if filled > 0 {
		s.logger.Info("filled calendar gaps with zero revenue", slog.Int("days", filled))
	}

	horizon := s.cfg.Training.HorizonDays
	model, err := s.forecaster.Fit(series, horizon)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fit forecast model")
	}

	points := model.Points()
	if err := s.forecastStore.WriteForecast(ctx, points); err != nil {
		return nil, errors.Wrap(err, "failed to write forecast table")
	}

	modelPath := filepath.Join(s.cfg.Pipeline.ModelsPath, forecast.ArtifactFile)
	if err := forecast.SaveArtifact(modelPath, model.Artifact()); err != nil {
		return nil, errors.Wrap(err, "failed to save model artifact")
	}

	s.logger.Info("forecast trained",
		slog.Int("observedDays", len(observed)),
		slog.Int("horizonDays", horizon),
		slog.Int("forecastRows", len(points)),
		slog.String("modelPath", modelPath))

	return &usecase.TrainResult{
		ObservedDays: len(observed),
		FilledDays:   filled,
		HorizonDays:  horizon,
		ForecastRows: len(points),
		ModelPath:    modelPath,
	}, nil
}

// loadDailySales reads the cleaned transactions artifact and groups total
// amount by date, sorted ascending.
func (s *TrainingService) loadDailySales() ([]entity.DailySales, error) {
	path := s.cleanStore.TransactionsPath()
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file)
	if df.Err != nil {
		return nil, errors.Wrapf(df.Err, "failed to parse %s", path)
	}

	grouped := df.GroupBy("date")
	if grouped.Err != nil {
		return nil, errors.Wrapf(grouped.Err, "failed to group %s by date", path)
	}

	daily := grouped.
		Aggregation([]dataframe.AggregationType{dataframe.Aggregation_SUM}, []string{"total_amount"}).
		Arrange(dataframe.Sort("date"))
	if daily.Err != nil {
		return nil, errors.Wrapf(daily.Err, "failed to aggregate %s", path)
	}

	dates := daily.Col("date").Records()
	revenues := daily.Col("total_amount_SUM").Float()

	series := make([]entity.DailySales, 0, len(dates))
	for i, raw := range dates {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, errors.Wrapf(err, "unparseable date %q in %s", raw, path)
		}
		series = append(series, entity.DailySales{Date: date, Revenue: revenues[i]})
	}

	return series, nil
}

// fillGaps inserts zero-revenue points for calendar days missing between
// the first and last observation. Returns the filled series and the number
// of inserted days.
func fillGaps(observed []entity.DailySales) ([]entity.DailySales, int) {
	if len(observed) < 2 {
		return observed, 0
	}

	series := make([]entity.DailySales, 0, len(observed))
	filled := 0
	cursor := observed[0].Date

	for _, point := range observed {
		for cursor.Before(point.Date) {
			series = append(series, entity.DailySales{Date: cursor})
			cursor = cursor.AddDate(0, 0, 1)
			filled++
		}
		series = append(series, point)
		cursor = point.Date.AddDate(0, 0, 1)
	}

	return series, filled
}
