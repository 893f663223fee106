package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"retailcast/internal/delivery/http/response"
	"retailcast/internal/delivery/http/validator"
	"retailcast/internal/domain/entity"
	domainerrors "retailcast/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInsightUsecase returns canned results for the dashboard endpoints.
type stubInsightUsecase struct {
	series      *entity.ForecastSeries
	price       float64
	forecastErr error
	priceErr    error
}

func (s *stubInsightUsecase) Forecast(context.Context, int) (*entity.ForecastSeries, error) {
	if s.forecastErr != nil {
		return nil, s.forecastErr
	}

	return s.series, nil
}

func (s *stubInsightUsecase) OptimalPrice(context.Context, float64) (float64, error) {
	if s.priceErr != nil {
		return 0, s.priceErr
	}

	return s.price, nil
}

func newHandlerFixture(uc *stubInsightUsecase) (*echo.Echo, *DashboardHandler) {
	e := echo.New()
	e.Validator = validator.New()

	h := &DashboardHandler{
		insightUC: uc,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return e, h
}

func doJSON(e *echo.Echo, handlerFunc echo.HandlerFunc, body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return rec, handlerFunc(c)
}

func TestDashboardHandler_Forecast(t *testing.T) {
	uc := &stubInsightUsecase{
		series: &entity.ForecastSeries{
			Forecast: []float64{100, 110},
			Lower:    []float64{80, 85},
			Upper:    []float64{120, 135},
		},
	}
	e, h := newHandlerFixture(uc)

	rec, err := doJSON(e, h.Forecast, `{"days": 30}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
}

func TestDashboardHandler_Forecast_ValidationError(t *testing.T) {
	e, h := newHandlerFixture(&stubInsightUsecase{})

	tests := []struct {
		name string
		body string
	}{
		{name: "missing days", body: `{}`},
		{name: "zero days", body: `{"days": 0}`},
		{name: "malformed body", body: `{"days": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := doJSON(e, h.Forecast, tt.body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp response.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
		})
	}
}

func TestDashboardHandler_Forecast_RangeError(t *testing.T) {
	e, h := newHandlerFixture(&stubInsightUsecase{forecastErr: domainerrors.ErrForecastRange})

	rec, err := doJSON(e, h.Forecast, `{"days": 365}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FORECAST_RANGE", resp.Error.Code)
}

func TestDashboardHandler_Forecast_UpstreamFailure(t *testing.T) {
	e, h := newHandlerFixture(&stubInsightUsecase{
		forecastErr: domainerrors.ErrUpstreamFailure.WrapMessage("connection refused"),
	})

	rec, err := doJSON(e, h.Forecast, `{"days": 30}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UPSTREAM_FAILURE", resp.Error.Code)
}

func TestDashboardHandler_Forecast_UnexpectedError(t *testing.T) {
	e, h := newHandlerFixture(&stubInsightUsecase{forecastErr: errors.New("boom")})

	rec, err := doJSON(e, h.Forecast, `{"days": 30}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDashboardHandler_OptimalPrice(t *testing.T) {
	e, h := newHandlerFixture(&stubInsightUsecase{price: 54.32})

	rec, err := doJSON(e, h.OptimalPrice, `{"base_price": 49.99}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    OptimalPriceData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.InDelta(t, 54.32, resp.Data.OptimalPrice, 1e-9)
	assert.Equal(t, "$54.32", resp.Data.Formatted)
}

func TestDashboardHandler_OptimalPrice_ValidationError(t *testing.T) {
	e, h := newHandlerFixture(&stubInsightUsecase{})

	for _, body := range []string{`{}`, `{"base_price": 0}`, `{"base_price": -3}`} {
		rec, err := doJSON(e, h.OptimalPrice, body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, HealthCheck(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
