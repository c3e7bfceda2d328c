package service

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies why a search failed.
type ErrorKind string

const (
	// KindInvalidRequest is a caller mistake.
	KindInvalidRequest ErrorKind = "invalid_request"
	// KindMisconfigured means the deployment lacks the upstream credential.
	KindMisconfigured ErrorKind = "misconfigured"
	// KindUpstream means the people data API refused the search.
	KindUpstream ErrorKind = "upstream_error"
	// KindInternal covers everything else.
	KindInternal ErrorKind = "internal_error"
)

// Messages returned to clients.
const (
	MsgMissingParams  = "Missing required parameters: type and query"
	MsgInvalidType    = "Invalid search type. Must be name, email, or company"
	MsgMissingAPIKey  = "API key not configured"
	MsgInternal       = "Internal server error"
	upstreamMsgPrefix = "PDL API error: "
)

// SearchError carries the client-facing status and message of a failed search.
type SearchError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SearchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *SearchError) Unwrap() error {
	return e.Err
}

func invalidRequest(msg string) *SearchError {
	return &SearchError{Kind: KindInvalidRequest, Status: http.StatusBadRequest, Message: msg}
}

func misconfigured() *SearchError {
	return &SearchError{Kind: KindMisconfigured, Status: http.StatusInternalServerError, Message: MsgMissingAPIKey}
}

func upstreamError(status int, msg string, err error) *SearchError {
	return &SearchError{Kind: KindUpstream, Status: status, Message: upstreamMsgPrefix + msg, Err: err}
}

func internalError(err error) *SearchError {
	return &SearchError{Kind: KindInternal, Status: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}
