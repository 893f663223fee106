// Package csvstore implements the dataset repositories over CSV files on the
// shared storage path. All writes go through a temp file and an atomic
// rename, so a failed stage never leaves a partial artifact behind.
package csvstore

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// readTable reads a CSV file and returns its data rows, validating that the
// header matches the expected column contract.
func readTable(path string, wantHeader []string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read header of %s", path)
	}
	if len(header) != len(wantHeader) {
		return nil, errors.Errorf("%s: expected %d columns, got %d", path, len(wantHeader), len(header))
	}
	for i, col := range wantHeader {
		if header[i] != col {
			return nil, errors.Errorf("%s: expected column %q at position %d, got %q", path, col, i, header[i])
		}
	}

	var rows [][]string
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, errors.Wrapf(readErr, "failed to read %s", path)
		}
		rows = append(rows, record)
	}

	return rows, nil
}

// writeTable writes header+rows to path atomically, creating the parent
// directory if absent.
func writeTable(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()

	// On any failure below the temp file is removed, never renamed.
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		cleanup()

		return errors.Wrapf(err, "failed to write header of %s", path)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			cleanup()

			return errors.Wrapf(err, "failed to write row of %s", path)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		cleanup()

		return errors.Wrapf(err, "failed to flush %s", path)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "failed to close temp file for %s", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "failed to rename temp file onto %s", path)
	}

	return nil
}

func formatCents(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
