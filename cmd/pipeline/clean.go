package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"retailcast/config"
	"retailcast/internal/infra/persistence/csvstore"
	"retailcast/internal/usecase/impl"
	"retailcast/internal/util"

	"github.com/pkg/errors"
)

func runClean(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fmt.Printf("Cleaning raw data from %s into %s\n", cfg.Pipeline.RawPath, cfg.Pipeline.ProcessedPath)
	fmt.Println()

	startTime := time.Now()

	rawStore := csvstore.NewRawStore(cfg.Pipeline.RawPath)
	cleanStore := csvstore.NewCleanStore(cfg.Pipeline.ProcessedPath)
	cleaner := impl.NewCleaningService(cfg, rawStore, cleanStore, logger)

	result, err := cleaner.Clean(ctx)
	if err != nil {
		return errors.Wrap(err, "cleaning failed")
	}

	fmt.Printf("Cleaned %d customers, %d products, %d transactions\n",
		result.Customers, result.Products, result.Transactions)
	if result.ImputedAges > 0 || result.ImputedQuantities > 0 {
		fmt.Printf("Imputed %d ages and %d quantities\n", result.ImputedAges, result.ImputedQuantities)
	}
	fmt.Printf("Cleaning completed in %s\n", util.FormatDuration(time.Since(startTime)))
	fmt.Printf("Files saved in %s\n", cfg.Pipeline.ProcessedPath)

	return nil
}
