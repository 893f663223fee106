// Package usecase defines the application's use case interfaces.
package usecase

import (
	"context"
	"time"
)

// GenerateResult summarizes a generator run.
type GenerateResult struct {
	Customers    int
	Products     int
	Transactions int
	StartDate    time.Time
	EndDate      time.Time
	Seed         int64
}

// GeneratorUsecase produces the synthetic raw dataset.
type GeneratorUsecase interface {
	// Generate synthesizes customers, products and transactions per the
	// configured counts and window and writes the three raw artifacts.
	Generate(ctx context.Context) (*GenerateResult, error)
}

// CleanResult summarizes a cleaning run.
type CleanResult struct {
	Customers         int
	Products          int
	Transactions      int
	ImputedAges       int
	ImputedQuantities int
}

// CleaningUsecase coerces, imputes and feature-engineers the raw dataset.
type CleaningUsecase interface {
	// Clean reads the raw artifacts and writes the cleaned ones. Any
	// missing input or unparseable cell is fatal; no partial output is
	// written.
	Clean(ctx context.Context) (*CleanResult, error)
}

// TrainResult summarizes a training run.
type TrainResult struct {
	ObservedDays int
	FilledDays   int // Calendar gaps filled with zero revenue.
	HorizonDays  int
	ForecastRows int
	ModelPath    string
}

// TrainingUsecase aggregates daily revenue, fits the forecasting model and
// persists the forecast table plus the model artifact.
type TrainingUsecase interface {
	Train(ctx context.Context) (*TrainResult, error)
}
