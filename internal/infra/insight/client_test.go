package insight

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"retailcast/config"
	domainerrors "retailcast/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{}
	cfg.Insight.BaseURL = baseURL
	cfg.Insight.Timeout = 2 * time.Second

	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).(*Client)
}

func TestClient_Forecast(t *testing.T) {
	var gotBody forecastRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(forecastResponse{
			Forecast:  []float64{100, 110, 120},
			YhatLower: []float64{80, 85, 90},
			YhatUpper: []float64{120, 135, 150},
		})
	}))
	defer srv.Close()

	series, err := newTestClient(srv.URL).Forecast(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, 30, gotBody.Days)
	assert.Equal(t, []float64{100, 110, 120}, series.Forecast)
	assert.Equal(t, []float64{80, 85, 90}, series.Lower)
	assert.Equal(t, []float64{120, 135, 150}, series.Upper)
}

func TestClient_OptimalPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/optimal-price", r.URL.Path)

		var body optimalPriceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.InDelta(t, 49.99, body.BasePrice, 1e-9)

		_ = json.NewEncoder(w).Encode(optimalPriceResponse{OptimalPrice: 54.32})
	}))
	defer srv.Close()

	price, err := newTestClient(srv.URL).OptimalPrice(context.Background(), 49.99)
	require.NoError(t, err)
	assert.InDelta(t, 54.32, price, 1e-9)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Forecast(context.Background(), 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Forecast(context.Background(), 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
}

func TestClient_UnreachableUpstream(t *testing.T) {
	// A closed server is indistinguishable from a down upstream.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).OptimalPrice(context.Background(), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
}
