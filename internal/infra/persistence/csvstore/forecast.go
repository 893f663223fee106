package csvstore

import (
	"context"
	"path/filepath"
	"strconv"

	"retailcast/internal/domain/entity"
	"retailcast/internal/domain/repository"
)

const ForecastFile = "forecast_output.csv"

var forecastHeader = []string{"ds", "yhat", "yhat_lower", "yhat_upper", "is_history"}

// forecastStore writes the forecast table next to the other processed
// artifacts.
type forecastStore struct {
	dir string
}

// NewForecastStore creates a repository.ForecastStore rooted at dir.
func NewForecastStore(dir string) repository.ForecastStore {
	return &forecastStore{dir: dir}
}

func (s *forecastStore) WriteForecast(_ context.Context, points []*entity.ForecastPoint) error {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Date.Format(dateLayout),
			formatCents(p.Value),
			formatCents(p.Lower),
			formatCents(p.Upper),
			strconv.FormatBool(p.IsHistory),
		})
	}

	return writeTable(filepath.Join(s.dir, ForecastFile), forecastHeader, rows)
}
