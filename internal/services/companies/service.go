package companies

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ndasearch/internal/domain"
	"ndasearch/internal/metrics"
	"ndasearch/internal/ports"
)

// ErrQueryRequired is returned before any source is contacted.
var ErrQueryRequired = errors.New("companies: query is required")

// AggregationError wraps failures that cannot be attributed to a source.
type AggregationError struct{ Cause error }

func (e *AggregationError) Error() string { return e.Cause.Error() }
func (e *AggregationError) Unwrap() error { return e.Cause }

// Service fans a query out to every registry and merges the answers.
type Service struct {
	sources       []ports.Source
	details       ports.DetailFetcher
	pageSize      int
	sourceTimeout time.Duration
	metrics       *metrics.Metrics
	recorder      ports.SearchRecorder
	log           *slog.Logger
	tracer        trace.Tracer
	now           func() time.Time
}

type Option func(*Service)

func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithSourceTimeout caps each source call on top of the adapter's own
// request timeouts.
func WithSourceTimeout(d time.Duration) Option {
	return func(s *Service) { s.sourceTimeout = d }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithRecorder(r ports.SearchRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New takes sources in priority order; that order decides which duplicate
// survives and breaks ranking ties.
func New(sources []ports.Source, details ports.DetailFetcher, opts ...Option) *Service {
	s := &Service{
		sources:  sources,
		details:  details,
		pageSize: DefaultPageSize,
		log:      slog.Default(),
		tracer:   otel.Tracer("ndasearch/internal/services/companies"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Aggregate queries every source concurrently. Each source's records land
// in its own slot of perSource; failed sources leave their slot empty and
// add "<source> unavailable" to warnings. Only an empty query fails.
func (s *Service) Aggregate(ctx context.Context, query string) ([][]domain.CompanyRecord, []string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil, ErrQueryRequired
	}

	perSource := make([][]domain.CompanyRecord, len(s.sources))
	errs := make([]error, len(s.sources))
	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src ports.Source) {
			defer wg.Done()
			perSource[i], errs[i] = s.searchSource(ctx, src, query)
		}(i, src)
	}
	wg.Wait()

	var warnings []string
	for i, err := range errs {
		if err == nil {
			continue
		}
		name := s.sources[i].Name()
		s.log.Warn("registry search failed", "source", name, "error", err)
		warnings = append(warnings, name+" unavailable")
	}
	return perSource, warnings, nil
}

func (s *Service) searchSource(ctx context.Context, src ports.Source, query string) (records []domain.CompanyRecord, err error) {
	name := src.Name()
	ctx, span := s.tracer.Start(ctx, "registry.Search", trace.WithAttributes(attribute.String("registry.source", name)))
	defer span.End()
	if s.sourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.sourceTimeout)
		defer cancel()
	}

	start := s.now()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s: panic: %v", name, p)
		}
		if err != nil {
			records = nil
		}
		s.metrics.ObserveSource(name, s.now().Sub(start), len(records), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "source unavailable")
		}
		span.SetAttributes(attribute.Int("registry.results", len(records)))
	}()
	return src.Search(ctx, query)
}

// Search aggregates and merges one query.
func (s *Service) Search(ctx context.Context, query string) (ports.SearchResult, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Search")
	defer span.End()
	start := s.now()

	perSource, warnings, err := s.Aggregate(ctx, query)
	if err != nil {
		s.metrics.ObserveSearch("invalid")
		return ports.SearchResult{}, err
	}
	merged, err := mergeSafely(perSource, s.pageSize)
	if err != nil {
		s.metrics.ObserveSearch("error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregation failed")
		return ports.SearchResult{}, err
	}

	outcome := "ok"
	if len(warnings) > 0 {
		outcome = "partial"
	}
	s.metrics.ObserveSearch(outcome)
	span.SetAttributes(attribute.Int("search.results", len(merged)), attribute.Int("search.warnings", len(warnings)))

	if s.recorder != nil {
		s.recorder.Record(ports.SearchLogEntry{
			ID:          uuid.NewString(),
			Query:       strings.TrimSpace(query),
			ResultCount: len(merged),
			Warnings:    warnings,
			Duration:    s.now().Sub(start),
			CreatedAt:   start,
		})
	}
	return ports.SearchResult{Results: merged, Warning: strings.Join(warnings, "; ")}, nil
}

func mergeSafely(perSource [][]domain.CompanyRecord, pageSize int) (out []domain.CompanyRecord, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &AggregationError{Cause: fmt.Errorf("merge: %v", p)}
		}
	}()
	return Merge(perSource, pageSize), nil
}

// Details resolves a registry URL into a single company record.
func (s *Service) Details(ctx context.Context, companyURL string) (domain.CompanyDetail, error) {
	if s.details == nil {
		return domain.CompanyDetail{}, errors.New("companies: detail lookup not configured")
	}
	ctx, span := s.tracer.Start(ctx, "companies.Details")
	defer span.End()
	detail, err := s.details.Details(ctx, companyURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "detail lookup failed")
	}
	return detail, err
}
