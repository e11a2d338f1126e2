// Package indexer mirrors ledger task events into an in-memory activity log
// and a per-task projection table.
//
// All writes go through a bounded queue drained by a single consumer (Run), so
// the log and the projections are only ever mutated by one goroutine. Readers
// take a read lock and receive copies.
package indexer

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mtlprog/taskchain/internal/domain"
	"github.com/mtlprog/taskchain/internal/logger"
	"github.com/mtlprog/taskchain/internal/telemetry"
)

// DefaultQueueSize is used when no queue size is configured.
const DefaultQueueSize = 256

// Archiver persists appended events. Failures are logged and never block ingestion.
type Archiver interface {
	Archive(ctx context.Context, ev domain.TaskEvent) error
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithQueueSize bounds the ingestion queue.
func WithQueueSize(n int) Option {
	return func(ix *Indexer) {
		if n > 0 {
			ix.queue = make(chan domain.ChainEvent, n)
		}
	}
}

// WithClock overrides the ingestion clock.
func WithClock(now func() time.Time) Option {
	return func(ix *Indexer) { ix.now = now }
}

// WithIDs overrides event id generation.
func WithIDs(newID func() string) Option {
	return func(ix *Indexer) { ix.newID = newID }
}

// WithArchiver archives every appended event.
func WithArchiver(a Archiver) Option {
	return func(ix *Indexer) { ix.archive = a }
}

// WithMetrics records ingestion metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(ix *Indexer) { ix.metrics = m }
}

// WithLogger overrides the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(ix *Indexer) { ix.logger = l }
}

// Indexer owns the activity log and the projection table.
type Indexer struct {
	mu    sync.RWMutex
	log   *Log
	tasks map[uint64]*domain.Projection

	queue   chan domain.ChainEvent
	now     func() time.Time
	newID   func() string
	archive Archiver
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New creates an Indexer with an empty log.
func New(opts ...Option) *Indexer {
	ix := &Indexer{
		log:   NewLog(),
		tasks: make(map[uint64]*domain.Projection),
		queue: make(chan domain.ChainEvent, DefaultQueueSize),
		now:   time.Now,
		newID: func() string {
			return uuid.Must(uuid.NewV7()).String()
		},
		logger: logger.Component("indexer"),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Submit enqueues a normalized ledger event. It blocks while the queue is full
// and returns the context error if ctx ends first.
func (ix *Indexer) Submit(ctx context.Context, ev domain.ChainEvent) error {
	select {
	case ix.queue <- ev:
		ix.metrics.SetQueueDepth(len(ix.queue))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains the queue until ctx is done. It must be called from exactly one goroutine.
func (ix *Indexer) Run(ctx context.Context) error {
	ix.logger.Info("indexer started")
	for {
		select {
		case <-ctx.Done():
			ix.logger.Info("indexer stopped", "pending", len(ix.queue))
			return ctx.Err()
		case ev := <-ix.queue:
			ix.metrics.SetQueueDepth(len(ix.queue))
			ix.Apply(ctx, ev)
		}
	}
}

// Apply turns a normalized ledger event into a TaskEvent, appends it and folds
// it into the task's projection. It returns the appended event, or the zero
// TaskEvent when in carries no known kind.
func (ix *Indexer) Apply(ctx context.Context, in domain.ChainEvent) domain.TaskEvent {
	if kind := in.Kind(); !kind.IsValid() {
		ix.metrics.EventMalformed("unknown_kind")
		ix.logger.Warn("dropping ledger event without a known kind",
			"task_id", in.TaskID,
			"actor", in.Actor,
			"tx_hash", in.TxHash,
		)
		return domain.TaskEvent{}
	}

	txHash := in.TxHash
	if txHash == "" {
		txHash = domain.UnknownTxHash
	}

	ix.mu.Lock()
	ev := domain.TaskEvent{
		ID:        ix.newID(),
		TaskID:    in.TaskID,
		Kind:      in.Kind(),
		Timestamp: ix.now(),
		Actor:     in.Actor,
		Details:   in.Details,
		TxHash:    txHash,
	}
	if ev.Kind == domain.EventKindReceiptAnchored && ev.Actor == "" {
		ev.Actor = ix.executorLocked(in.TaskID)
	}
	ix.appendLocked(ev)
	projections := len(ix.tasks)
	ix.mu.Unlock()

	ix.metrics.EventIngested(string(ev.Kind))
	ix.metrics.SetProjections(projections)
	ix.logger.Info("event indexed",
		"kind", ev.Kind,
		"task_id", ev.TaskID,
		"actor", ev.Actor,
		"tx_hash", ev.TxHash,
	)

	if ix.archive != nil {
		if err := ix.archive.Archive(ctx, ev); err != nil {
			ix.metrics.ArchiveFailed()
			ix.logger.Error("failed to archive event",
				"event_id", ev.ID,
				"task_id", ev.TaskID,
				"error", err,
			)
		}
	}

	return ev
}

// Restore folds previously archived events without archiving them again.
// It is meant to run before the listener starts.
func (ix *Indexer) Restore(events []domain.TaskEvent) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, ev := range events {
		ix.appendLocked(ev)
	}
	ix.metrics.SetProjections(len(ix.tasks))
	ix.logger.Info("activity log restored", "events", len(events), "tasks", len(ix.tasks))
}

func (ix *Indexer) appendLocked(ev domain.TaskEvent) {
	ix.log.Append(ev)

	p, ok := ix.tasks[ev.TaskID]
	if !ok {
		p = domain.NewProjection(ev)
		ix.tasks[ev.TaskID] = p
	}
	p.Fold(ev)
}

func (ix *Indexer) executorLocked(taskID uint64) string {
	if p, ok := ix.tasks[taskID]; ok && p.Executor != nil {
		return *p.Executor
	}
	return domain.UnknownActor
}

// GlobalActivity returns every event, newest first.
func (ix *Indexer) GlobalActivity() []domain.TaskEvent {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.log.Newest()
}

// UserHistory returns the events performed by actor in insertion order.
func (ix *Indexer) UserHistory(actor string) []domain.TaskEvent {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.log.ByActor(actor)
}

// Projection returns a copy of the projection for taskID.
func (ix *Indexer) Projection(taskID uint64) (domain.Projection, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	p, ok := ix.tasks[taskID]
	if !ok {
		return domain.Projection{}, false
	}
	return p.Clone(), true
}

// Projections returns copies of all projections ordered by task id.
func (ix *Indexer) Projections() []domain.Projection {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]domain.Projection, 0, len(ix.tasks))
	for _, p := range ix.tasks {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out
}

// Len returns the number of logged events.
func (ix *Indexer) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.log.Len()
}
