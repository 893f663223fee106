package forecast

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"retailcast/internal/domain/entity"

	"github.com/pkg/errors"
)

const artifactVersion = "1.0"

// ArtifactFile is the serialized model's filename inside the models
// directory.
const ArtifactFile = "forecast_model.json"

// Artifact is the persisted form of a fitted Model. Each training run fully
// replaces the previous artifact.
type Artifact struct {
	Version       string                  `json:"version"`
	FittedAt      time.Time               `json:"fitted_at"`
	HorizonDays   int                     `json:"horizon_days"`
	ResidualSigma float64                 `json:"residual_sigma"`
	History       []entity.DailySales     `json:"history"`
	Points        []*entity.ForecastPoint `json:"points"`
}

// Future returns only the horizon rows, for consumers re-loading the
// artifact to serve predictions.
func (a *Artifact) Future() []*entity.ForecastPoint {
	future := make([]*entity.ForecastPoint, 0, a.HorizonDays)
	for _, p := range a.Points {
		if !p.IsHistory {
			future = append(future, p)
		}
	}

	return future
}

// SaveArtifact writes the artifact as JSON, atomically, creating the models
// directory if absent.
func SaveArtifact(path string, artifact *Artifact) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal model artifact")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(err, "failed to write model artifact")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "failed to close model artifact")
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "failed to rename model artifact onto %s", path)
	}

	return nil
}

// LoadArtifact reads a previously saved artifact.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model artifact %s", path)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, errors.Wrapf(err, "failed to parse model artifact %s", path)
	}

	return &artifact, nil
}
