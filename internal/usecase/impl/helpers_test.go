package impl

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"retailcast/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns a small-scale configuration rooted in a temp directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	root := t.TempDir()

	cfg := &config.Config{
		Pipeline: config.PipelineConfig{
			RawPath:       filepath.Join(root, "raw"),
			ProcessedPath: filepath.Join(root, "processed"),
			ModelsPath:    filepath.Join(root, "models"),
		},
		Generator: config.GeneratorConfig{
			Customers:    20,
			Products:     10,
			Transactions: 300,
			StartDate:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			Seed:         42,
		},
		Training: config.TrainingConfig{
			HorizonDays:     10,
			MinObservations: 14,
		},
		Insight: config.InsightConfig{
			MinForecastDays: 7,
			MaxForecastDays: 90,
			Timeout:         5 * time.Second,
		},
	}

	return cfg
}
