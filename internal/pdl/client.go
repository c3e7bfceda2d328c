package pdl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	searchPath     = "/person/search"
	maxErrorBody   = 1 << 20
	defaultTimeout = 15 * time.Second
	apiKeyHeader   = "X-Api-Key"
)

// ErrMissingAPIKey is returned when a search is attempted without a credential.
var ErrMissingAPIKey = errors.New("pdl api key is empty")

// APIError reports a non-success answer from the people data API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("pdl api error (%d): %s", e.StatusCode, e.Message)
}

// Searcher runs person searches against the people data API.
type Searcher interface {
	SearchPeople(ctx context.Context, apiKey string, body SearchBody) ([]Person, error)
}

// Client talks to the People Data Labs REST API.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient builds a client for baseURL (for example https://api.peopledatalabs.com/v5).
func NewClient(client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		panic("pdl baseURL must not be empty")
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// SearchPeople posts body to the person search endpoint and returns the matched records.
// Non-2xx answers come back as *APIError.
func (c *Client) SearchPeople(ctx context.Context, apiKey string, body SearchBody) ([]Person, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create pdl request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pdl request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractAPIError(resp),
		}
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("could not decode pdl response: %w", err)
	}
	return result.Data, nil
}

func extractAPIError(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(data) > 0 {
		var payload errorResponse
		if err := json.Unmarshal(data, &payload); err == nil && payload.Error.Message != "" {
			return string(payload.Error.Message)
		}
	}
	return statusText(resp)
}

// statusText returns the reason phrase of resp, e.g. "Too Many Requests".
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

var _ Searcher = (*Client)(nil)
