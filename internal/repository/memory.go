package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mtlprog/taskchain/internal/domain"
)

// MemoryTaskStore keeps shadow tasks in process memory, one ordered
// collection per team. Mutations of one team are serialized by that team's lock.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	teams map[string]*teamTasks
}

type teamTasks struct {
	mu    sync.Mutex
	tasks []*domain.ShadowTask
}

// NewMemoryTaskStore creates an empty MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{teams: make(map[string]*teamTasks)}
}

func (s *MemoryTaskStore) team(teamID string, create bool) *teamTasks {
	s.mu.RLock()
	t, ok := s.teams[teamID]
	s.mu.RUnlock()
	if ok || !create {
		return t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok = s.teams[teamID]; !ok {
		t = &teamTasks{}
		s.teams[teamID] = t
	}
	return t
}

// Create appends a task to the team's collection.
func (s *MemoryTaskStore) Create(_ context.Context, teamID string, task domain.ShadowTask) (domain.ShadowTask, error) {
	t := s.team(teamID, true)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.tasks = append(t.tasks, task.Clone())
	return task, nil
}

// List returns copies of the team's tasks in creation order.
func (s *MemoryTaskStore) List(ctx context.Context, teamID string) ([]domain.ShadowTask, error) {
	return s.ListByStatus(ctx, teamID)
}

// ListByStatus returns copies of the team's tasks whose status is one of
// statuses. No statuses means all tasks.
func (s *MemoryTaskStore) ListByStatus(_ context.Context, teamID string, statuses ...domain.TaskStatus) ([]domain.ShadowTask, error) {
	out := []domain.ShadowTask{}

	t := s.team(teamID, false)
	if t == nil {
		return out, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, task := range t.tasks {
		if len(statuses) == 0 || slices.Contains(statuses, task.Status) {
			out = append(out, *task.Clone())
		}
	}
	return out, nil
}

// Mutate applies fn to a copy of the first task with taskID and stores the
// copy only if fn succeeds.
func (s *MemoryTaskStore) Mutate(
	_ context.Context,
	teamID, taskID string,
	fn func(*domain.ShadowTask) error,
) (domain.ShadowTask, error) {
	t := s.team(teamID, false)
	if t == nil {
		return domain.ShadowTask{}, fmt.Errorf("%w: %s", domain.ErrTeamNotFound, teamID)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i, task := range t.tasks {
		if task.ID != taskID {
			continue
		}
		work := task.Clone()
		if err := fn(work); err != nil {
			return domain.ShadowTask{}, err
		}
		t.tasks[i] = work
		return *work.Clone(), nil
	}
	return domain.ShadowTask{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
}
