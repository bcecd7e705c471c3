// Package queue contains the asynchronous audit sink: a sharded worker
// pool that decouples audit persistence from the request path.
package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bountyhq/platform-api/internal/api/metrics"
	"github.com/bountyhq/platform-api/internal/core/domain"
	"github.com/bountyhq/platform-api/internal/core/ports"
)

const (
	defaultWorkers      = 4
	defaultBuffer       = 256
	defaultWriteTimeout = 5 * time.Second
)

// AuditDispatcher routes audit entries to a fixed set of workers using
// consistent hashing on the acting user id, keeping per-user ordering.
// Record never blocks: when a shard's buffer is full the entry is dropped
// with a log line and a metric, never an error. Persistence failures are
// likewise swallowed — audit writes are best-effort relative to the
// response already sent to the client.
type AuditDispatcher struct {
	workers      []chan domain.AuditLogEntry
	repo         ports.AuditRepository
	log          zerolog.Logger
	writeTimeout time.Duration
	wg           sync.WaitGroup
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers
// and per-worker buffers of size buffer. Non-positive values fall back to
// defaults.
func NewAuditDispatcher(numWorkers, buffer int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &AuditDispatcher{
		workers:      make([]chan domain.AuditLogEntry, numWorkers),
		repo:         repo,
		log:          log,
		writeTimeout: defaultWriteTimeout,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditLogEntry, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channel until
// Close closes it.
func (d *AuditDispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Record enqueues one audit entry for the completed action. The request
// context is deliberately not used for persistence: the write outlives
// the request and must not be cancelled with it.
func (d *AuditDispatcher) Record(_ context.Context, ac domain.ApiContext, action, entity, entityID string, metadata map[string]any) {
	entry := domain.AuditLogEntry{
		UserID:    ac.UserID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Metadata:  metadata,
		Timestamp: time.Now().UTC(),
	}

	idx := d.shardIndex(entry.UserID)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEntriesTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("action", action).
			Str("entity_id", entityID).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

// Close stops accepting entries and waits up to grace for the workers to
// drain. Entries still queued after the grace period are abandoned.
func (d *AuditDispatcher) Close(grace time.Duration) error {
	for _, ch := range d.workers {
		close(ch)
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(grace):
		return errors.New("audit dispatcher: drain timed out")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(id int, ch <-chan domain.AuditLogEntry) {
	defer d.wg.Done()
	worker := strconv.Itoa(id)

	for entry := range ch {
		metrics.AuditQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))

		ctx, cancel := context.WithTimeout(context.Background(), d.writeTimeout)
		err := d.repo.Append(ctx, entry)
		cancel()

		if err != nil {
			metrics.AuditEntriesTotal.WithLabelValues("failed").Inc()
			d.log.Error().Err(err).
				Str("action", entry.Action).
				Str("entity_id", entry.EntityID).
				Int("worker_id", id).
				Msg("audit entry write failed")
			continue
		}
		metrics.AuditEntriesTotal.WithLabelValues("written").Inc()
	}
}
