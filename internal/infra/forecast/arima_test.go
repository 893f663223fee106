package forecast

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"retailcast/internal/domain/entity"
	domainerrors "retailcast/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailySeries builds n contiguous days of revenue starting at start, with a
// mild trend and a weekly bump so the series has real structure to fit.
func dailySeries(start time.Time, n int) []entity.DailySales {
	series := make([]entity.DailySales, n)
	for i := range series {
		revenue := 1000 + 2*float64(i) + 150*math.Sin(2*math.Pi*float64(i)/7)
		series[i] = entity.DailySales{
			Date:    start.AddDate(0, 0, i),
			Revenue: revenue,
		}
	}

	return series
}

func TestARIMAForecaster_Fit(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	series := dailySeries(start, 90)

	model, err := NewARIMAForecaster(14).Fit(series, 60)
	require.NoError(t, err)
	require.NotNil(t, model)

	assert.Equal(t, 60, model.HorizonDays)
	assert.Greater(t, model.ResidualSigma, 0.0)

	points := model.Points()
	require.Len(t, points, 90+60)

	history := points[:90]
	future := points[90:]

	for i, p := range history {
		assert.True(t, p.IsHistory)
		assert.Equal(t, start.AddDate(0, 0, i), p.Date)
		assert.Less(t, p.Lower, p.Value)
		assert.Greater(t, p.Upper, p.Value)
	}

	lastObserved := series[len(series)-1].Date
	for k, p := range future {
		assert.False(t, p.IsHistory)
		assert.Equal(t, lastObserved.AddDate(0, 0, k+1), p.Date)
		assert.Less(t, p.Lower, p.Value)
		assert.Greater(t, p.Upper, p.Value)
	}

	// Uncertainty grows with the forecast step.
	firstSpread := future[0].Upper - future[0].Lower
	lastSpread := future[len(future)-1].Upper - future[len(future)-1].Lower
	assert.Greater(t, lastSpread, firstSpread)
}

func TestARIMAForecaster_Fit_TooShort(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	series := dailySeries(start, 5)

	_, err := NewARIMAForecaster(14).Fit(series, 60)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDegenerateSeries))
}

func TestARIMAForecaster_Fit_ZeroVariance(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make([]entity.DailySales, 30)
	for i := range series {
		series[i] = entity.DailySales{Date: start.AddDate(0, 0, i), Revenue: 500}
	}

	_, err := NewARIMAForecaster(14).Fit(series, 60)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDegenerateSeries))
}

func TestARIMAForecaster_Fit_BadHorizon(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewARIMAForecaster(14).Fit(dailySeries(start, 90), 0)
	require.Error(t, err)
}

func TestCenteredMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := centeredMovingAverage(values, 3)

	require.Len(t, out, 5)
	assert.InDelta(t, 1.5, out[0], 1e-9) // edge window shrinks to {1,2}
	assert.InDelta(t, 2.0, out[1], 1e-9)
	assert.InDelta(t, 3.0, out[2], 1e-9)
	assert.InDelta(t, 4.0, out[3], 1e-9)
	assert.InDelta(t, 4.5, out[4], 1e-9)
}

func TestResidualSigma(t *testing.T) {
	values := []float64{10, 10, 10}
	smoothed := []float64{10, 10, 10}
	assert.InDelta(t, 0, residualSigma(values, smoothed), 1e-9)

	values = []float64{12, 8, 12, 8}
	smoothed = []float64{10, 10, 10, 10}
	assert.InDelta(t, 2, residualSigma(values, smoothed), 1e-9)
}

func TestArtifact_SaveLoadRoundTrip(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	series := dailySeries(start, 60)

	model, err := NewARIMAForecaster(14).Fit(series, 10)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "models", ArtifactFile)
	require.NoError(t, SaveArtifact(path, model.Artifact()))

	loaded, err := LoadArtifact(path)
	require.NoError(t, err)

	assert.Equal(t, artifactVersion, loaded.Version)
	assert.Equal(t, 10, loaded.HorizonDays)
	assert.InDelta(t, model.ResidualSigma, loaded.ResidualSigma, 1e-9)
	assert.Len(t, loaded.History, 60)
	assert.Len(t, loaded.Points, 70)
	assert.Len(t, loaded.Future(), 10)
}

func TestLoadArtifact_MissingFile(t *testing.T) {
	_, err := LoadArtifact(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
