package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	api "ndasearch/internal/api"
	"ndasearch/internal/domain"
	"ndasearch/internal/ports"
	"ndasearch/internal/registry"
	compsvc "ndasearch/internal/services/companies"
)

const (
	maxRequestBytes = 64 << 10
	functionsPrefix = "/.netlify/functions"
)

// Server implements the generated StrictServerInterface.
type Server struct {
	companies  ports.Searcher
	metrics    http.Handler
	limiter    *IPRateLimiter
	trustProxy bool
	log        *slog.Logger
}

var _ api.StrictServerInterface = (*Server)(nil)

type Option func(*Server)

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithRateLimiter throttles search requests per client IP.
func WithRateLimiter(l *IPRateLimiter) Option {
	return func(s *Server) { s.limiter = l }
}

// WithTrustProxyHeaders takes the client IP from X-Forwarded-For and
// friends. Only enable it behind a proxy that overwrites those headers.
func WithTrustProxyHeaders(trust bool) Option {
	return func(s *Server) { s.trustProxy = trust }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

func New(companies ports.Searcher, opts ...Option) *Server {
	s := &Server{companies: companies, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns a chi.Router mounting the generated handlers. The search
// operation is also reachable under the serverless functions prefix the
// form posts to.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if s.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.RequestSize(maxRequestBytes))
	r.Use(functionsAlias, allowOrigin)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	var mws []api.StrictMiddlewareFunc
	if s.limiter != nil {
		mws = append(mws, s.limiter.SearchMiddleware())
	}
	handler := api.NewStrictHandlerWithOptions(s, mws, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeError(w, http.StatusBadRequest, "Invalid request body")
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			s.log.Error("response failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
			writeError(w, http.StatusInternalServerError, "Search failed: "+err.Error())
		},
	})
	api.HandlerFromMux(handler, r)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

func (s *Server) GetHealthz(ctx context.Context, _ api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	return api.GetHealthz200JSONResponse{Status: "ok"}, nil
}

func (s *Server) OptionsSearchCompany(ctx context.Context, _ api.OptionsSearchCompanyRequestObject) (api.OptionsSearchCompanyResponseObject, error) {
	return api.OptionsSearchCompany204Response{
		Headers: api.OptionsSearchCompany204ResponseHeaders{AccessControlAllowMethods: "POST, OPTIONS"},
	}, nil
}

func (s *Server) PostSearchCompany(ctx context.Context, req api.PostSearchCompanyRequestObject) (api.PostSearchCompanyResponseObject, error) {
	var body api.SearchCompanyRequest
	if req.Body != nil {
		body = *req.Body
	}
	if companyURL := strings.TrimSpace(deref(body.CompanyUrl)); body.FetchDetails != nil && *body.FetchDetails && companyURL != "" {
		return s.companyDetails(ctx, companyURL)
	}

	res, err := s.search(ctx, deref(body.Query))
	switch {
	case err == nil:
	case errors.Is(err, compsvc.ErrQueryRequired):
		return api.PostSearchCompany400JSONResponse{Error: "Query is required"}, nil
	default:
		s.log.Error("company search failed", "error", err, "request_id", middleware.GetReqID(ctx))
		return api.PostSearchCompany500JSONResponse{Error: "Search failed: " + err.Error()}, nil
	}

	results := api.SearchResults{Results: res.Results}
	if results.Results == nil {
		results.Results = []domain.CompanyRecord{}
	}
	if res.Warning != "" {
		results.Warning = &res.Warning
	}
	var out api.SearchCompanyResponse
	if err := out.FromSearchResults(results); err != nil {
		return nil, err
	}
	return api.PostSearchCompany200JSONResponse(out), nil
}

// search converts a panic escaping the service into an AggregationError.
func (s *Server) search(ctx context.Context, query string) (res ports.SearchResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &compsvc.AggregationError{Cause: fmt.Errorf("%v", p)}
		}
	}()
	return s.companies.Search(ctx, query)
}

func (s *Server) companyDetails(ctx context.Context, companyURL string) (api.PostSearchCompanyResponseObject, error) {
	detail, err := s.companies.Details(ctx, companyURL)
	switch {
	case err == nil:
	case errors.Is(err, registry.ErrDetailURL):
		return api.PostSearchCompany400JSONResponse{Error: "Unsupported company URL"}, nil
	case errors.Is(err, registry.ErrCompanyNotFound):
		return api.PostSearchCompany404JSONResponse{Error: "Company not found"}, nil
	default:
		s.log.Error("company details failed", "error", err, "url", companyURL)
		return api.PostSearchCompany500JSONResponse{Error: "Failed to fetch company details"}, nil
	}

	var out api.SearchCompanyResponse
	if err := out.FromCompanyDetail(detail); err != nil {
		return nil, err
	}
	return api.PostSearchCompany200JSONResponse(out), nil
}

// functionsAlias routes /.netlify/functions/search-company to /search-company.
func functionsAlias(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == functionsPrefix+"/search-company" {
			r.URL.Path = strings.TrimPrefix(r.URL.Path, functionsPrefix)
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}

func allowOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: msg})
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
