package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"retailcast/config"
	"retailcast/internal/util"

	"github.com/pkg/errors"
)

// runAll executes the three stages in order. A failed stage aborts the run;
// the caller reruns from the top after fixing the cause.
func runAll(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	startTime := time.Now()

	fmt.Println("=== Step 1: Generating synthetic data ===")
	if err := runGenerate(ctx, cfg, logger); err != nil {
		return errors.Wrap(err, "generate stage failed")
	}

	fmt.Println("\n=== Step 2: Cleaning and feature engineering ===")
	if err := runClean(ctx, cfg, logger); err != nil {
		return errors.Wrap(err, "clean stage failed")
	}

	fmt.Println("\n=== Step 3: Training forecast model ===")
	if err := runTrain(ctx, cfg, logger); err != nil {
		return errors.Wrap(err, "train stage failed")
	}

	fmt.Println("\n=== Step 4: Validating results ===")
	if err := runValidate(cfg); err != nil {
		return errors.Wrap(err, "validation failed")
	}

	fmt.Printf("\nPipeline completed successfully in %s\n", util.FormatDuration(time.Since(startTime)))

	return nil
}
