package handler

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed index.html
var dashboardPage string

// Page serves the dashboard single page. All data flows through the JSON
// endpoints; the page itself is static.
func Page(c echo.Context) error {
	return c.HTML(http.StatusOK, dashboardPage)
}
