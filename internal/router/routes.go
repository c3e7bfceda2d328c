package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octobees/peoplefinder/internal/handler"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Search *handler.SearchHandler
	Page   *handler.PageHandler
}

// Register wires all HTTP routes for the service.
func Register(e *echo.Echo, gatherer prometheus.Gatherer, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, map[string]any{"status": "ok"})
	})

	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	e.GET("/api/peoplefinder", handlers.Search.Search)

	if handlers.Page != nil {
		e.GET("/", handlers.Page.Index)
	}
}
