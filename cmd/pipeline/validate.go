package main

import (
	"fmt"
	"os"
	"path/filepath"

	"retailcast/config"
	"retailcast/internal/infra/persistence/csvstore"
	"retailcast/internal/util"

	"github.com/pkg/errors"
)

func runValidate(cfg *config.Config) error {
	fmt.Printf("Validating raw dataset in %s\n", cfg.Pipeline.RawPath)
	if err := validateRawDataset(cfg.Pipeline.RawPath); err != nil {
		return err
	}

	fmt.Printf("\nValidating processed dataset in %s\n", cfg.Pipeline.ProcessedPath)
	if err := validateProcessedDataset(cfg.Pipeline.ProcessedPath); err != nil {
		return err
	}

	fmt.Println("\nValidation passed")

	return nil
}

// validateRawDataset checks the generator's output against its manifest.
func validateRawDataset(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return errors.Errorf("directory does not exist: %s", dir)
	}

	requiredFiles := []string{
		MetadataFile,
		csvstore.CustomersFile,
		csvstore.ProductsFile,
		csvstore.TransactionsFile,
	}

	fmt.Println("Checking required files...")
	for _, filename := range requiredFiles {
		if _, err := os.Stat(filepath.Join(dir, filename)); os.IsNotExist(err) {
			return errors.Errorf("required file missing: %s", filename)
		}
		fmt.Printf("  ok %s\n", filename)
	}

	fmt.Println("Validating manifest...")
	metadata, err := LoadMetadataFromFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return errors.Wrap(err, "failed to load metadata")
	}
	if metadata.Version != metadataVersion {
		return errors.Errorf("unsupported metadata version: %s", metadata.Version)
	}

	wantRows := map[string]int{
		csvstore.CustomersFile:    metadata.Counts.Customers,
		csvstore.ProductsFile:     metadata.Counts.Products,
		csvstore.TransactionsFile: metadata.Counts.Transactions,
	}

	for name, fileMeta := range metadata.Files {
		path := filepath.Join(dir, name)

		checksum, err := util.CalculateFileChecksum(path)
		if err != nil {
			return errors.Wrapf(err, "failed to checksum %s", name)
		}
		if checksum != fileMeta.SHA256 {
			return errors.Errorf("%s: checksum mismatch, file changed since generation", name)
		}

		rows, err := countDataRows(path)
		if err != nil {
			return errors.Wrapf(err, "failed to count rows of %s", name)
		}
		if rows != fileMeta.Rows {
			return errors.Errorf("%s: expected %d rows, found %d", name, fileMeta.Rows, rows)
		}
		if want, tracked := wantRows[name]; tracked && rows != want {
			return errors.Errorf("%s: manifest counts disagree: %d vs %d", name, want, rows)
		}

		fmt.Printf("  ok %s (%d rows, sha256 verified)\n", name, rows)
	}

	fmt.Printf("  run %s, seed %d, window %s..%s\n",
		metadata.RunID, metadata.Seed, metadata.Window.Start, metadata.Window.End)

	return nil
}

// validateProcessedDataset checks the cleaning/training outputs when they
// exist. A missing processed directory is fine; those stages may simply not
// have run yet.
func validateProcessedDataset(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Println("  skipped (directory not present)")

		return nil
	}

	cleanFiles := []string{
		csvstore.CustomersCleanFile,
		csvstore.ProductsCleanFile,
		csvstore.TransactionsCleanFile,
	}

	for _, filename := range cleanFiles {
		if _, err := os.Stat(filepath.Join(dir, filename)); os.IsNotExist(err) {
			return errors.Errorf("required file missing: %s", filename)
		}
		fmt.Printf("  ok %s\n", filename)
	}

	forecastPath := filepath.Join(dir, csvstore.ForecastFile)
	if _, err := os.Stat(forecastPath); os.IsNotExist(err) {
		fmt.Println("  forecast_output.csv not present (train stage not run)")

		return nil
	}

	rows, err := countDataRows(forecastPath)
	if err != nil {
		return errors.Wrap(err, "failed to count forecast rows")
	}
	if rows == 0 {
		return errors.New("forecast_output.csv is empty")
	}
	fmt.Printf("  ok %s (%d rows)\n", csvstore.ForecastFile, rows)

	return nil
}
