package ports

import (
	"context"
	"time"

	"ndasearch/internal/domain"
)

// Source is one company registry. Search returns normalized records or a
// *registry.SourceUnavailableError; it must honour ctx and its own timeout.
type Source interface {
	Name() string
	Search(ctx context.Context, query string) ([]domain.CompanyRecord, error)
}

// DetailFetcher resolves a public registry URL into a single company.
type DetailFetcher interface {
	Details(ctx context.Context, companyURL string) (domain.CompanyDetail, error)
}

// SearchResult is the aggregated, merged outcome of one query.
type SearchResult struct {
	Results []domain.CompanyRecord `json:"results"`
	Warning string                 `json:"warning,omitempty"`
}

// Searcher is what the HTTP layer consumes.
type Searcher interface {
	Search(ctx context.Context, query string) (SearchResult, error)
	Details(ctx context.Context, companyURL string) (domain.CompanyDetail, error)
}

// SearchLogEntry summarises a single search; company records themselves are
// never stored.
type SearchLogEntry struct {
	ID          string
	Query       string
	ResultCount int
	Warnings    []string
	Duration    time.Duration
	CreatedAt   time.Time
}

// SearchLogRepository stores search summaries.
type SearchLogRepository interface {
	InsertSearchLog(ctx context.Context, entry SearchLogEntry) error
}

// SearchRecorder accepts entries without blocking the caller.
type SearchRecorder interface {
	Record(entry SearchLogEntry)
}
