package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"retailcast/internal/infra/persistence/csvstore"
	"retailcast/internal/usecase"
	"retailcast/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MetadataFile is the manifest written next to the raw artifacts.
const MetadataFile = "metadata.json"

const metadataVersion = "1.0"

// DatasetMetadata describes one generator run and its output files.
type DatasetMetadata struct {
	Version     string                  `json:"version"`
	RunID       string                  `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Seed        int64                   `json:"seed"`
	Window      WindowMetadata          `json:"window"`
	Counts      CountsMetadata          `json:"counts"`
	Files       map[string]FileMetadata `json:"files"`
}

// WindowMetadata is the transaction date window.
type WindowMetadata struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CountsMetadata records how many records were generated.
type CountsMetadata struct {
	Customers    int `json:"customers"`
	Products     int `json:"products"`
	Transactions int `json:"transactions"`
}

// FileMetadata contains metadata for individual output files.
type FileMetadata struct {
	SizeBytes int64  `json:"size_bytes"`
	Rows      int    `json:"rows"`
	SHA256    string `json:"sha256"`
}

// GenerateMetadata creates the manifest for a completed generator run.
func GenerateMetadata(dir string, result *usecase.GenerateResult) (*DatasetMetadata, error) {
	files := map[string]FileMetadata{}
	for _, name := range []string{csvstore.CustomersFile, csvstore.ProductsFile, csvstore.TransactionsFile} {
		meta, err := fileMetadata(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to describe %s", name)
		}
		files[name] = meta
	}

	return &DatasetMetadata{
		Version:     metadataVersion,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Seed:        result.Seed,
		Window: WindowMetadata{
			Start: result.StartDate.Format("2006-01-02"),
			End:   result.EndDate.Format("2006-01-02"),
		},
		Counts: CountsMetadata{
			Customers:    result.Customers,
			Products:     result.Products,
			Transactions: result.Transactions,
		},
		Files: files,
	}, nil
}

func fileMetadata(path string) (FileMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMetadata{}, errors.WithStack(err)
	}

	checksum, err := util.CalculateFileChecksum(path)
	if err != nil {
		return FileMetadata{}, err
	}

	rows, err := countDataRows(path)
	if err != nil {
		return FileMetadata{}, err
	}

	return FileMetadata{
		SizeBytes: info.Size(),
		Rows:      rows,
		SHA256:    checksum,
	}, nil
}

// countDataRows counts the lines of a CSV file minus the header.
func countDataRows(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	lines := 0
	for scanner.Scan() {
		lines++
	}
	if err := scanner.Err(); err != nil {
		return 0, errors.WithStack(err)
	}

	if lines == 0 {
		return 0, nil
	}

	return lines - 1, nil
}

// SaveMetadata writes the manifest as indented JSON.
func SaveMetadata(path string, metadata *DatasetMetadata) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal metadata")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write metadata")
	}

	return nil
}

// LoadMetadataFromFile reads a previously written manifest.
func LoadMetadataFromFile(path string) (*DatasetMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read metadata %s", path)
	}

	var metadata DatasetMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, errors.Wrapf(err, "failed to parse metadata %s", path)
	}

	return &metadata, nil
}
