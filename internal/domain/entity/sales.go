package entity

import "time"

// DailySales is one point of the date-indexed revenue aggregate the trainer
// fits on: the sum of TotalAmount across all transactions on Date.
type DailySales struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
}

// ForecastPoint is one row of the forecast table: a point estimate with a
// 95% uncertainty band. Rows cover the observed history plus the horizon.
type ForecastPoint struct {
	Date      time.Time `json:"ds"`
	Value     float64   `json:"yhat"`
	Lower     float64   `json:"yhat_lower"`
	Upper     float64   `json:"yhat_upper"`
	IsHistory bool      `json:"is_history"`
}

// ForecastSeries is the numeric payload returned by the external insight API
// for a dashboard forecast request. Lower/Upper are nil when the upstream
// model does not report bounds.
type ForecastSeries struct {
	Forecast []float64 `json:"forecast"`
	Lower    []float64 `json:"yhat_lower,omitempty"`
	Upper    []float64 `json:"yhat_upper,omitempty"`
}
