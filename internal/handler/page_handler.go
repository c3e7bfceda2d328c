package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middlewarepkg "github.com/octobees/peoplefinder/internal/middleware"
	"github.com/octobees/peoplefinder/internal/ui"
)

// PageHandler serves the search page.
type PageHandler struct {
	gateway ui.Gateway
}

// NewPageHandler wires the page to the gateway used for form submissions.
func NewPageHandler(gateway ui.Gateway) *PageHandler {
	return &PageHandler{gateway: gateway}
}

// Index handles GET /. A submitted form (?type=&query=) runs the search
// server-side so the page also works without JavaScript.
func (h *PageHandler) Index(c echo.Context) error {
	view := ui.NewView(h.gateway)

	params := c.QueryParams()
	if searchType := params.Get("type"); searchType != "" {
		view.SetSearchType(searchType)
	}
	if params.Has("query") {
		view.SetQuery(params.Get("query"))
		ctx := ui.ContextWithRequestID(c.Request().Context(), middlewarepkg.RequestIDFromContext(c))
		view.Submit(ctx)
	}

	return c.Render(http.StatusOK, ui.PageTemplate, ui.NewPage(view.State()))
}
