// Package insight implements the HTTP client for the external
// forecasting/pricing API the dashboard fronts.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"retailcast/config"
	"retailcast/internal/domain/entity"
	domainerrors "retailcast/internal/domain/errors"
	"retailcast/internal/domain/service"

	"github.com/pkg/errors"
)

// Client talks to the insight API over JSON POSTs. Requests carry the
// configured timeout; a hung upstream fails the user action instead of
// hanging it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a service.InsightClient from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) service.InsightClient {
	return &Client{
		baseURL: cfg.Insight.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Insight.Timeout,
		},
		logger: logger,
	}
}

type forecastRequest struct {
	Days int `json:"days"`
}

type forecastResponse struct {
	Forecast  []float64 `json:"forecast"`
	YhatLower []float64 `json:"yhat_lower"`
	YhatUpper []float64 `json:"yhat_upper"`
}

type optimalPriceRequest struct {
	BasePrice float64 `json:"base_price"`
}

type optimalPriceResponse struct {
	OptimalPrice float64 `json:"optimal_price"`
}

// Forecast requests a forecast for the given number of days.
func (c *Client) Forecast(ctx context.Context, days int) (*entity.ForecastSeries, error) {
	var resp forecastResponse
	if err := c.post(ctx, "/forecast", forecastRequest{Days: days}, &resp); err != nil {
		return nil, err
	}

	return &entity.ForecastSeries{
		Forecast: resp.Forecast,
		Lower:    resp.YhatLower,
		Upper:    resp.YhatUpper,
	}, nil
}

// OptimalPrice requests the optimal price for a base price.
func (c *Client) OptimalPrice(ctx context.Context, basePrice float64) (float64, error) {
	var resp optimalPriceResponse
	if err := c.post(ctx, "/optimal-price", optimalPriceRequest{BasePrice: basePrice}, &resp); err != nil {
		return 0, err
	}

	return resp.OptimalPrice, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("insight API request failed",
			slog.String("path", path),
			slog.Any("error", err))

		return domainerrors.ErrUpstreamFailure.WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	// Any non-200 status is treated uniformly as failure.
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("insight API returned non-success status",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))

		return domainerrors.ErrUpstreamFailure.WrapMessage(resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if err := json.Unmarshal(data, out); err != nil {
		return domainerrors.ErrUpstreamFailure.WrapMessage("malformed response body")
	}

	return nil
}
