package service

import (
	"context"
	"fmt"

	"github.com/mtlprog/taskchain/internal/domain"
)

// ActivityReader is the read side of the indexer.
type ActivityReader interface {
	GlobalActivity() []domain.TaskEvent
	UserHistory(actor string) []domain.TaskEvent
	Projection(taskID uint64) (domain.Projection, bool)
	Projections() []domain.Projection
}

// ActivityService serves the activity feed and task projections.
type ActivityService struct {
	reader ActivityReader
}

// NewActivityService creates a new ActivityService.
func NewActivityService(reader ActivityReader) *ActivityService {
	return &ActivityService{reader: reader}
}

// GlobalActivity returns every indexed event, newest first.
func (s *ActivityService) GlobalActivity(_ context.Context) []domain.TaskEvent {
	return s.reader.GlobalActivity()
}

// UserHistory returns the events of actor (case-insensitive) in the order they were indexed.
func (s *ActivityService) UserHistory(_ context.Context, actor string) []domain.TaskEvent {
	return s.reader.UserHistory(actor)
}

// Task returns the projection of one ledger task.
func (s *ActivityService) Task(_ context.Context, taskID uint64) (domain.Projection, error) {
	p, ok := s.reader.Projection(taskID)
	if !ok {
		return domain.Projection{}, fmt.Errorf("%w: ledger task %d", domain.ErrTaskNotFound, taskID)
	}
	return p, nil
}

// Tasks returns every projection ordered by task id.
func (s *ActivityService) Tasks(_ context.Context) []domain.Projection {
	return s.reader.Projections()
}
