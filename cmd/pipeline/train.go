package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"retailcast/config"
	"retailcast/internal/infra/forecast"
	"retailcast/internal/infra/persistence/csvstore"
	"retailcast/internal/usecase/impl"
	"retailcast/internal/util"

	"github.com/pkg/errors"
)

func runTrain(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fmt.Printf("Training forecast model from %s\n", cfg.Pipeline.ProcessedPath)
	fmt.Printf("Horizon: %d days\n", cfg.Training.HorizonDays)
	fmt.Println()

	startTime := time.Now()

	cleanStore := csvstore.NewCleanStore(cfg.Pipeline.ProcessedPath)
	forecastStore := csvstore.NewForecastStore(cfg.Pipeline.ProcessedPath)
	forecaster := forecast.NewARIMAForecaster(cfg.Training.MinObservations)
	trainer := impl.NewTrainingService(cfg, cleanStore, forecastStore, forecaster, logger)

	result, err := trainer.Train(ctx)
	if err != nil {
		return errors.Wrap(err, "training failed")
	}

	fmt.Printf("Fitted on %d observed days (%d gaps filled with zero revenue)\n",
		result.ObservedDays, result.FilledDays)
	fmt.Printf("Forecast table: %d rows (%d-day horizon)\n", result.ForecastRows, result.HorizonDays)
	fmt.Printf("Model saved at %s\n", result.ModelPath)
	fmt.Printf("Training completed in %s\n", util.FormatDuration(time.Since(startTime)))

	return nil
}
