package searchlog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ndasearch/internal/metrics"
	"ndasearch/internal/ports"
)

const insertTimeout = 5 * time.Second

// Queue buffers search summaries between request handlers and the writers.
// Record never blocks: when the buffer is full or the queue is closed the
// entry is dropped and counted.
type Queue struct {
	mu      sync.RWMutex
	closed  bool
	entries chan ports.SearchLogEntry
	metrics *metrics.Metrics
}

var _ ports.SearchRecorder = (*Queue)(nil)

func NewQueue(size int, m *metrics.Metrics) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{entries: make(chan ports.SearchLogEntry, size), metrics: m}
}

func (q *Queue) Record(e ports.SearchLogEntry) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.metrics.SearchLogDropped()
		return
	}
	select {
	case q.entries <- e:
	default:
		q.metrics.SearchLogDropped()
	}
}

// Close stops accepting entries; workers drain what is already buffered.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.entries)
	}
}

// Run starts concurrency writers and blocks until the queue is closed and
// drained. Inserts outlive ctx cancellation so buffered entries still land
// during shutdown.
func Run(ctx context.Context, repo ports.SearchLogRepository, q *Queue, concurrency int, log *slog.Logger) {
	if concurrency < 1 {
		return
	}
	if log == nil {
		log = slog.Default()
	}
	base := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for e := range q.entries {
				insertCtx, cancel := context.WithTimeout(base, insertTimeout)
				err := repo.InsertSearchLog(insertCtx, e)
				cancel()
				if err != nil {
					log.Error("search log insert failed", "worker", idx, "id", e.ID, "error", err)
				}
			}
		}(i)
	}
	wg.Wait()
}
