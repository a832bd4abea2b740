package postgres

import (
	"context"
	"fmt"

	"ndasearch/internal/ports"
)

var _ ports.SearchLogRepository = (*DB)(nil)

// InsertSearchLog stores one search summary. Re-inserting the same id is a no-op.
func (db *DB) InsertSearchLog(ctx context.Context, e ports.SearchLogEntry) error {
	warnings := e.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO search_log (id, query, result_count, warnings, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, e.ID, e.Query, e.ResultCount, warnings, e.Duration.Milliseconds(), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert search log %s: %w", e.ID, err)
	}
	return nil
}
