package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"retailcast/config"
	"retailcast/internal/infra/persistence/csvstore"
	"retailcast/internal/usecase/impl"
	"retailcast/internal/util"

	"github.com/pkg/errors"
)

func runGenerate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fmt.Printf("Generating synthetic data into %s\n", cfg.Pipeline.RawPath)
	fmt.Printf("Counts: %d customers, %d products, %d transactions\n",
		cfg.Generator.Customers, cfg.Generator.Products, cfg.Generator.Transactions)
	fmt.Printf("Seed: %d\n", cfg.Generator.Seed)
	fmt.Println()

	startTime := time.Now()

	rawStore := csvstore.NewRawStore(cfg.Pipeline.RawPath)
	generator := impl.NewGeneratorService(cfg, rawStore, logger)

	result, err := generator.Generate(ctx)
	if err != nil {
		return errors.Wrap(err, "generation failed")
	}

	// Write the dataset manifest alongside the artifacts.
	metadata, err := GenerateMetadata(cfg.Pipeline.RawPath, result)
	if err != nil {
		return errors.Wrap(err, "failed to generate metadata")
	}
	metadataPath := filepath.Join(cfg.Pipeline.RawPath, MetadataFile)
	if err := SaveMetadata(metadataPath, metadata); err != nil {
		return errors.Wrap(err, "failed to save metadata")
	}

	fmt.Printf("Generation completed in %s\n", util.FormatDuration(time.Since(startTime)))
	fmt.Printf("Files saved in %s\n", cfg.Pipeline.RawPath)
	fmt.Printf("Manifest: %s\n", metadataPath)

	return nil
}
