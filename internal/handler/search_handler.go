package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/peoplefinder/internal/dto"
	"github.com/octobees/peoplefinder/internal/entity"
	"github.com/octobees/peoplefinder/internal/service"
)

// PeopleSearcher runs a validated people search.
type PeopleSearcher interface {
	Search(ctx context.Context, req dto.SearchRequest) ([]entity.Person, error)
}

// SearchHandler exposes the people finder gateway.
type SearchHandler struct {
	searcher PeopleSearcher
}

// NewSearchHandler creates a new handler instance.
func NewSearchHandler(searcher PeopleSearcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// Search handles GET /api/peoplefinder?type=&query= requests.
func (h *SearchHandler) Search(c echo.Context) error {
	req := dto.SearchRequest{
		Type:  c.QueryParam("type"),
		Query: c.QueryParam("query"),
	}

	people, err := h.searcher.Search(c.Request().Context(), req)
	if err != nil {
		var searchErr *service.SearchError
		if errors.As(err, &searchErr) {
			return Error(c, searchErr.Status, searchErr.Message)
		}
		return Error(c, http.StatusInternalServerError, service.MsgInternal)
	}
	if people == nil {
		people = []entity.Person{}
	}

	return c.JSON(http.StatusOK, dto.SearchResponse{Data: people})
}
