// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"retailcast/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DashboardHandler *handler.DashboardHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	dashboardHandler *handler.DashboardHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		dashboardHandler: params.DashboardHandler,
	}
}

// RegisterRoutes sets up all the routes for the dashboard.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Dashboard page
	e.GET("/", handler.Page)

	// JSON endpoints backing the page's two user actions
	apiGroup := e.Group("/api")
	{
		apiGroup.POST("/forecast", r.dashboardHandler.Forecast)
		apiGroup.POST("/optimal-price", r.dashboardHandler.OptimalPrice)
	}
}
