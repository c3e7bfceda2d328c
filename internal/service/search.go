package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/octobees/peoplefinder/internal/dto"
	"github.com/octobees/peoplefinder/internal/entity"
	"github.com/octobees/peoplefinder/internal/metrics"
	"github.com/octobees/peoplefinder/internal/pdl"
)

// searchFields maps a public search type onto the upstream term field.
var searchFields = map[string]string{
	dto.SearchTypeName:    "full_name",
	dto.SearchTypeEmail:   "email",
	dto.SearchTypeCompany: "company",
}

// SearchService translates people searches into upstream API calls.
type SearchService struct {
	client   pdl.Searcher
	apiKey   func() string
	validate *validator.Validate
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// SearchOption configures optional dependencies.
type SearchOption func(*SearchService)

// WithLogger overrides the no-op logger.
func WithLogger(l *zap.Logger) SearchOption {
	return func(s *SearchService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) SearchOption {
	return func(s *SearchService) {
		s.metrics = m
	}
}

// NewSearchService wires a search service. apiKey is consulted on every search
// so a missing credential surfaces per request instead of at startup.
func NewSearchService(client pdl.Searcher, apiKey func() string, opts ...SearchOption) *SearchService {
	if apiKey == nil {
		apiKey = func() string { return "" }
	}
	s := &SearchService{
		client:   client,
		apiKey:   apiKey,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search validates req, runs it upstream and returns the normalized people.
// Failures are always *SearchError.
func (s *SearchService) Search(ctx context.Context, req dto.SearchRequest) ([]entity.Person, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, s.fail(req.Type, invalidRequest(MsgMissingParams))
	}

	apiKey := s.apiKey()
	if apiKey == "" {
		return nil, s.fail(req.Type, misconfigured())
	}

	field, ok := searchFields[req.Type]
	if !ok {
		return nil, s.fail(req.Type, invalidRequest(MsgInvalidType))
	}

	start := time.Now()
	records, err := s.client.SearchPeople(ctx, apiKey, pdl.NewTermSearch(field, req.Query))
	if err != nil {
		var apiErr *pdl.APIError
		if errors.As(err, &apiErr) {
			s.metrics.ObserveUpstream(strconv.Itoa(apiErr.StatusCode), time.Since(start))
			return nil, s.fail(req.Type, upstreamError(apiErr.StatusCode, apiErr.Message, err))
		}
		s.metrics.ObserveUpstream("error", time.Since(start))
		return nil, s.fail(req.Type, internalError(err))
	}
	s.metrics.ObserveUpstream("200", time.Since(start))

	people := NormalizePeople(records)
	s.logger.Debug("people search completed",
		zap.String("type", req.Type),
		zap.Int("count", len(people)),
		zap.Any("people", people),
	)
	s.metrics.ObserveResults(len(people))
	s.metrics.ObserveSearch(req.Type, "success")
	return people, nil
}

func (s *SearchService) fail(searchType string, err *SearchError) *SearchError {
	label := searchType
	if _, ok := searchFields[label]; !ok {
		label = "invalid"
	}
	s.metrics.ObserveSearch(label, string(err.Kind))

	fields := []zap.Field{
		zap.String("type", searchType),
		zap.String("kind", string(err.Kind)),
		zap.Int("status", err.Status),
	}
	if err.Err != nil {
		fields = append(fields, zap.Error(err.Err))
	}
	s.logger.Error(err.Message, fields...)
	return err
}
