package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/octobees/peoplefinder/internal/entity"
)

const (
	searchPath       = "/api/peoplefinder"
	requestIDHeader  = "X-Request-ID"
	defaultTimeout   = 20 * time.Second
	maxResponseBytes = 4 << 20
)

// Gateway runs people searches on behalf of the view.
type Gateway interface {
	Search(ctx context.Context, searchType, query string) ([]entity.Person, error)
}

// GatewayError is a non-success answer from the search gateway.
type GatewayError struct {
	StatusCode int
	Message    string
}

// Error returns the gateway message verbatim; it is shown to the user.
func (e *GatewayError) Error() string {
	return e.Message
}

type requestIDKey struct{}

// ContextWithRequestID makes the gateway client forward rid as X-Request-ID.
func ContextWithRequestID(ctx context.Context, rid string) context.Context {
	if rid == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// GatewayClient calls the people finder endpoint over HTTP.
type GatewayClient struct {
	client  *http.Client
	baseURL string
}

// NewGatewayClient builds a gateway client. When client is nil and the gateway is
// served over HTTPS, an ID-token client is tried first so private Cloud Run
// deployments can be reached; otherwise a plain client with a timeout is used.
func NewGatewayClient(client *http.Client, baseURL string) *GatewayClient {
	if baseURL == "" {
		panic("gateway baseURL must not be empty")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if client == nil {
		if strings.HasPrefix(baseURL, "https://") {
			if idc, err := idtoken.NewClient(context.Background(), baseURL); err == nil {
				client = idc
			}
		}
		if client == nil {
			client = &http.Client{Timeout: defaultTimeout}
		}
	}
	return &GatewayClient{client: client, baseURL: baseURL}
}

// Search performs GET /api/peoplefinder and returns the records of a successful answer.
// Non-2xx answers come back as *GatewayError.
func (c *GatewayClient) Search(ctx context.Context, searchType, query string) ([]entity.Person, error) {
	params := url.Values{}
	params.Set("type", searchType)
	params.Set("query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		req.Header.Set(requestIDHeader, rid)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Data  []entity.Person `json:"data"`
		Error string          `json:"error"`
	}
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := payload.Error
		if decodeErr != nil || msg == "" {
			msg = MsgFetchFailed
		}
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("could not decode gateway response: %w", decodeErr)
	}
	return payload.Data, nil
}

var _ Gateway = (*GatewayClient)(nil)
