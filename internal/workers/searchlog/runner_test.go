package searchlog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndasearch/internal/metrics"
	"ndasearch/internal/ports"
)

type memRepo struct {
	mu      sync.Mutex
	entries []ports.SearchLogEntry
	fail    string
}

func (r *memRepo) InsertSearchLog(ctx context.Context, e ports.SearchLogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.ID == r.fail {
		return errors.New("insert failed")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *memRepo) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.ID)
	}
	return out
}

func TestRunDrainsAfterCancel(t *testing.T) {
	repo := &memRepo{fail: "b"}
	q := NewQueue(8, nil)
	for _, id := range []string{"a", "b", "c"} {
		q.Record(ports.SearchLogEntry{ID: id, Query: "acme"})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q.Close()
	Run(ctx, repo, q, 2, nil)

	assert.ElementsMatch(t, []string{"a", "c"}, repo.ids())
}

func assertDropped(t *testing.T, m *metrics.Metrics, n int) {
	t.Helper()
	expected := fmt.Sprintf(`# HELP companysearch_search_log_dropped_total Search log entries dropped because the queue was full or closed
# TYPE companysearch_search_log_dropped_total counter
companysearch_search_log_dropped_total %d
`, n)
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "companysearch_search_log_dropped_total"))
}

func TestRecordDropsWhenFull(t *testing.T) {
	m := metrics.New()
	q := NewQueue(1, m)
	q.Record(ports.SearchLogEntry{ID: "a"})
	q.Record(ports.SearchLogEntry{ID: "b"})
	assertDropped(t, m, 1)

	q.Close()
	q.Close()
	q.Record(ports.SearchLogEntry{ID: "c"})
	assertDropped(t, m, 2)

	repo := &memRepo{}
	Run(context.Background(), repo, q, 1, nil)
	require.Equal(t, []string{"a"}, repo.ids())
}

func TestRunWithoutWorkersReturns(t *testing.T) {
	q := NewQueue(1, nil)
	Run(context.Background(), &memRepo{}, q, 0, nil)
}
