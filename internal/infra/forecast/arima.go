// Package forecast wraps the goarima time-series library behind a small
// fit/predict surface and handles the statistical plumbing the library does
// not: uncertainty bands and in-sample estimates for the historical rows of
// the forecast table.
package forecast

import (
	"math"
	"time"

	"retailcast/internal/domain/entity"
	domainerrors "retailcast/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/sartorproj/goarima/autoarima"
	"github.com/sartorproj/goarima/timeseries"
)

// zNormal95 is the two-sided normal quantile for a 95% interval.
const zNormal95 = 1.96

// Forecaster fits a model on a contiguous daily sales series and produces
// the full history+horizon forecast table.
type Forecaster interface {
	Fit(series []entity.DailySales, horizon int) (*Model, error)
}

// ARIMAForecaster selects and fits an ARIMA model automatically. Seasonal
// structure (weekly, yearly) is handled by the library's differencing and
// order selection.
type ARIMAForecaster struct {
	minObservations int
}

// NewARIMAForecaster returns a forecaster that refuses to fit on fewer than
// minObservations daily points.
func NewARIMAForecaster(minObservations int) *ARIMAForecaster {
	if minObservations < 2 {
		minObservations = 2
	}

	return &ARIMAForecaster{minObservations: minObservations}
}

// Fit trains on series (sorted, one point per calendar day) and forecasts
// horizon days past the last observation. The series must show actual
// variation; a flat or too-short series fails with ErrDegenerateSeries.
func (f *ARIMAForecaster) Fit(series []entity.DailySales, horizon int) (*Model, error) {
	if horizon <= 0 {
		return nil, errors.Errorf("forecast horizon must be positive, got %d", horizon)
	}
	if len(series) < f.minObservations {
		return nil, errors.Wrapf(domainerrors.ErrDegenerateSeries,
			"have %d daily observations, need at least %d", len(series), f.minObservations)
	}

	values := make([]float64, len(series))
	for i, point := range series {
		values[i] = point.Revenue
	}

	if !hasVariation(values) {
		return nil, errors.Wrap(domainerrors.ErrDegenerateSeries, "series has zero variance")
	}

	smoothed := centeredMovingAverage(values, 7)
	sigma := residualSigma(values, smoothed)

	ts := timeseries.New(values)

	result, err := autoarima.AutoARIMA(ts, autoarima.DefaultConfig())
	if err != nil {
		return nil, errors.Wrap(err, "auto-ARIMA model selection failed")
	}

	future, err := result.Predict(horizon)
	if err != nil {
		return nil, errors.Wrapf(err, "predicting %d days failed", horizon)
	}

	return &Model{
		FittedAt:      time.Now().UTC(),
		HorizonDays:   horizon,
		ResidualSigma: sigma,
		History:       series,
		smoothed:      smoothed,
		future:        future,
	}, nil
}

// Model is a fitted forecast: the history it was trained on plus the
// horizon predictions and the residual spread used for the 95% band.
type Model struct {
	FittedAt      time.Time
	HorizonDays   int
	ResidualSigma float64
	History       []entity.DailySales

	smoothed []float64
	future   []float64
}

// Points returns the full forecast table: one row per historical date with
// the in-sample estimate, then one row per horizon day. Bounds are a 95%
// band from the residual sigma; the future band widens with the square root
// of the step ahead.
func (m *Model) Points() []*entity.ForecastPoint {
	points := make([]*entity.ForecastPoint, 0, len(m.History)+len(m.future))

	band := zNormal95 * m.ResidualSigma
	for i, h := range m.History {
		points = append(points, &entity.ForecastPoint{
			Date:      h.Date,
			Value:     m.smoothed[i],
			Lower:     m.smoothed[i] - band,
			Upper:     m.smoothed[i] + band,
			IsHistory: true,
		})
	}

	lastDate := m.History[len(m.History)-1].Date
	for k, yhat := range m.future {
		spread := band * math.Sqrt(float64(k+1))
		points = append(points, &entity.ForecastPoint{
			Date:      lastDate.AddDate(0, 0, k+1),
			Value:     yhat,
			Lower:     yhat - spread,
			Upper:     yhat + spread,
			IsHistory: false,
		})
	}

	return points
}

// Artifact captures the model state for persistence.
func (m *Model) Artifact() *Artifact {
	return &Artifact{
		Version:       artifactVersion,
		FittedAt:      m.FittedAt,
		HorizonDays:   m.HorizonDays,
		ResidualSigma: m.ResidualSigma,
		History:       m.History,
		Points:        m.Points(),
	}
}

func hasVariation(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}

	return false
}

// centeredMovingAverage smooths values with a centered window, shrinking the
// window at the edges so every position gets an estimate.
func centeredMovingAverage(values []float64, window int) []float64 {
	half := window / 2
	out := make([]float64, len(values))

	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(values)-1 {
			hi = len(values) - 1
		}

		var sum float64
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}

	return out
}

// residualSigma is the standard deviation of observed minus smoothed.
func residualSigma(values, smoothed []float64) float64 {
	var sumSq float64
	for i := range values {
		d := values[i] - smoothed[i]
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(len(values)))
}
