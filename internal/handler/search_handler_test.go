package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/peoplefinder/internal/dto"
	"github.com/octobees/peoplefinder/internal/entity"
	"github.com/octobees/peoplefinder/internal/pdl"
	"github.com/octobees/peoplefinder/internal/service"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestSearchHandler(rt roundTripFunc, apiKey string) *SearchHandler {
	client := pdl.NewClient(&http.Client{Transport: rt}, "http://pdl/v5")
	svc := service.NewSearchService(client, func() string { return apiKey })
	return NewSearchHandler(svc)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func serveSearch(h *SearchHandler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h.Search(c)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return payload.Error
}

func TestSearchHandler_ValidationErrors(t *testing.T) {
	called := false
	handler := newTestSearchHandler(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{"data":[]}`), nil
	}, "key")

	for _, target := range []string{
		"/api/peoplefinder",
		"/api/peoplefinder?type=name",
		"/api/peoplefinder?query=Jane",
		"/api/peoplefinder?type=&query=",
		"/api/peoplefinder?type=phone&query=Jane",
	} {
		t.Run(target, func(t *testing.T) {
			rec := serveSearch(handler, target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if decodeError(t, rec) == "" {
				t.Fatalf("expected a descriptive error message")
			}
		})
	}
	if called {
		t.Fatalf("upstream must not be called for invalid requests")
	}
}

func TestSearchHandler_MissingAPIKey(t *testing.T) {
	handler := newTestSearchHandler(func(req *http.Request) (*http.Response, error) {
		t.Fatalf("upstream must not be called without a key")
		return nil, nil
	}, "")

	rec := serveSearch(handler, "/api/peoplefinder?type=name&query=Jane")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != service.MsgMissingAPIKey {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestSearchHandler_UpstreamInteraction(t *testing.T) {
	t.Run("term filter and headers", func(t *testing.T) {
		var (
			gotKey  string
			gotBody pdl.SearchBody
		)
		handler := newTestSearchHandler(func(req *http.Request) (*http.Response, error) {
			gotKey = req.Header.Get("X-Api-Key")
			if req.Method != http.MethodPost || req.URL.Path != "/v5/person/search" {
				t.Fatalf("unexpected upstream call %s %s", req.Method, req.URL.Path)
			}
			if err := json.NewDecoder(req.Body).Decode(&gotBody); err != nil {
				t.Fatalf("decode upstream body: %v", err)
			}
			return jsonResponse(http.StatusOK, `{"data":[]}`), nil
		}, "key-1")

		rec := serveSearch(handler, "/api/peoplefinder?type=name&query=Jane+Doe")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotKey != "key-1" {
			t.Fatalf("expected api key header, got %q", gotKey)
		}
		term := gotBody.Query.Bool.Must[0].Term
		if len(term) != 1 || term["full_name"] != "Jane Doe" {
			t.Fatalf("unexpected term filter: %v", term)
		}
		if gotBody.Size != 10 || gotBody.Pretty {
			t.Fatalf("unexpected size/pretty: %+v", gotBody)
		}
	})

	t.Run("empty result is success", func(t *testing.T) {
		handler := newTestSearchHandler(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"status":200,"data":[]}`), nil
		}, "key")

		rec := serveSearch(handler, "/api/peoplefinder?type=company&query=Nobody")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != `{"data":[]}` {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("records are normalized", func(t *testing.T) {
		handler := newTestSearchHandler(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"data":[{"full_name":"jane doe","linkedin_url":"linkedin.com/in/x","github_url":"https://github.com/x"}]}`), nil
		}, "key")

		rec := serveSearch(handler, "/api/peoplefinder?type=name&query=jane")
		var payload dto.SearchResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(payload.Data) != 1 {
			t.Fatalf("expected one record, got %d", len(payload.Data))
		}
		p := payload.Data[0]
		if p.LinkedInURL == nil || *p.LinkedInURL != "https://linkedin.com/in/x" {
			t.Fatalf("unexpected linkedin url: %v", p.LinkedInURL)
		}
		if p.GitHubURL == nil || *p.GitHubURL != "https://github.com/x" {
			t.Fatalf("prefixed url must be unchanged: %v", p.GitHubURL)
		}
		if p.TwitterURL != nil || p.Website != nil {
			t.Fatalf("missing links must be null")
		}
	})

	t.Run("upstream error status is passed through", func(t *testing.T) {
		handler := newTestSearchHandler(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`), nil
		}, "key")

		rec := serveSearch(handler, "/api/peoplefinder?type=email&query=a@b.c")
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "PDL API error: rate limited" {
			t.Fatalf("unexpected message %q", msg)
		}
	})

	t.Run("network failure is opaque", func(t *testing.T) {
		handler := newTestSearchHandler(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("network down")
		}, "key")

		rec := serveSearch(handler, "/api/peoplefinder?type=name&query=jane")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != service.MsgInternal {
			t.Fatalf("unexpected message %q", msg)
		}
	})

	t.Run("malformed upstream json is opaque", func(t *testing.T) {
		handler := newTestSearchHandler(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `not json`), nil
		}, "key")

		rec := serveSearch(handler, "/api/peoplefinder?type=name&query=jane")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

type searcherFunc func(ctx context.Context, req dto.SearchRequest) ([]entity.Person, error)

func (f searcherFunc) Search(ctx context.Context, req dto.SearchRequest) ([]entity.Person, error) {
	return f(ctx, req)
}

func TestSearchHandler_UnknownErrorAndNilSlice(t *testing.T) {
	rec := serveSearch(NewSearchHandler(searcherFunc(func(context.Context, dto.SearchRequest) ([]entity.Person, error) {
		return nil, errors.New("unexpected")
	})), "/api/peoplefinder?type=name&query=x")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	rec = serveSearch(NewSearchHandler(searcherFunc(func(context.Context, dto.SearchRequest) ([]entity.Person, error) {
		return nil, nil
	})), "/api/peoplefinder?type=name&query=x")
	if strings.TrimSpace(rec.Body.String()) != `{"data":[]}` {
		t.Fatalf("nil result must render as empty array, got %s", rec.Body.String())
	}
}
