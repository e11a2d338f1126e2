package indexer

import (
	"sort"

	"github.com/mtlprog/taskchain/internal/domain"
)

// Log is the append-only activity log. It is not safe for concurrent use;
// the Indexer serializes access.
type Log struct {
	events []domain.TaskEvent
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds an event at the end of the log.
func (l *Log) Append(ev domain.TaskEvent) {
	l.events = append(l.events, ev)
}

// Len returns the number of events.
func (l *Log) Len() int {
	return len(l.events)
}

// All returns a copy of the log in insertion order.
func (l *Log) All() []domain.TaskEvent {
	out := make([]domain.TaskEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Newest returns a copy of the log sorted by timestamp, newest first.
// Events with equal timestamps keep reverse insertion order.
func (l *Log) Newest() []domain.TaskEvent {
	out := make([]domain.TaskEvent, len(l.events))
	for i, ev := range l.events {
		out[len(out)-1-i] = ev
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// ByActor returns the events performed by actor, case-insensitively, in insertion order.
func (l *Log) ByActor(actor string) []domain.TaskEvent {
	out := []domain.TaskEvent{}
	for i := range l.events {
		if l.events[i].IsBy(actor) {
			out = append(out, l.events[i])
		}
	}
	return out
}
