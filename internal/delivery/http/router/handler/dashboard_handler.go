package handler

import (
	"log/slog"
	"net/http"

	"retailcast/internal/delivery/http/response"
	domainerrors "retailcast/internal/domain/errors"
	"retailcast/internal/errors"
	"retailcast/internal/usecase"
	"retailcast/internal/util"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DashboardHandlerParams holds dependencies for DashboardHandler, injected by Fx.
type DashboardHandlerParams struct {
	fx.In

	InsightUC usecase.InsightUsecase
	Logger    *slog.Logger
}

// DashboardHandler holds dependencies for the dashboard endpoints.
type DashboardHandler struct {
	insightUC usecase.InsightUsecase
	logger    *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler
func NewDashboardHandler(params DashboardHandlerParams) *DashboardHandler {
	return &DashboardHandler{
		insightUC: params.InsightUC,
		logger:    params.Logger,
	}
}

// ForecastRequest represents the request body for a forecast
type ForecastRequest struct {
	Days int `json:"days" validate:"required,min=1"`
}

// OptimalPriceRequest represents the request body for an optimal price
type OptimalPriceRequest struct {
	BasePrice float64 `json:"base_price" validate:"required,gt=0"`
}

// OptimalPriceData is the payload returned for an optimal price request.
type OptimalPriceData struct {
	OptimalPrice float64 `json:"optimal_price"`
	Formatted    string  `json:"formatted"`
}

// Forecast proxies a forecast request to the insight API.
func (h *DashboardHandler) Forecast(c echo.Context) error {
	var req ForecastRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid forecast input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	series, err := h.insightUC.Forecast(c.Request().Context(), req.Days)
	if err != nil {
		return h.renderError(c, err)
	}

	return response.Success(c, http.StatusOK, series, "Forecast generated successfully")
}

// OptimalPrice proxies an optimal price request to the insight API.
func (h *DashboardHandler) OptimalPrice(c echo.Context) error {
	var req OptimalPriceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid price input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	price, err := h.insightUC.OptimalPrice(c.Request().Context(), req.BasePrice)
	if err != nil {
		return h.renderError(c, err)
	}

	data := OptimalPriceData{
		OptimalPrice: price,
		Formatted:    util.FormatCurrency(price, "$"),
	}

	return response.Success(c, http.StatusOK, data, "Optimal price calculated")
}

// renderError maps application errors onto the response envelope. Upstream
// failures become visible errors; they never crash the dashboard.
func (h *DashboardHandler) renderError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), "")
	}

	h.logger.Error("dashboard request failed", slog.Any("error", err))

	return response.InternalServerError(c, "INTERNAL_ERROR", "Unexpected error")
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
