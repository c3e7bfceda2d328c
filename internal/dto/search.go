package dto

import "github.com/octobees/peoplefinder/internal/entity"

// Search types accepted by the people finder endpoint.
const (
	SearchTypeName    = "name"
	SearchTypeEmail   = "email"
	SearchTypeCompany = "company"
)

// SearchRequest captures the query parameters of GET /api/peoplefinder.
type SearchRequest struct {
	Type  string `query:"type" validate:"required"`
	Query string `query:"query" validate:"required"`
}

// SearchResponse is the success payload of the people finder endpoint.
type SearchResponse struct {
	Data []entity.Person `json:"data"`
}

// ErrorResponse is returned on every failure path.
type ErrorResponse struct {
	Error string `json:"error"`
}
