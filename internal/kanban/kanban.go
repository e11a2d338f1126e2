// Package kanban keeps board issues in memory. Every mutation is shadowed into
// the task store and announced to the board's live viewers.
package kanban

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mtlprog/taskchain/internal/domain"
	"github.com/mtlprog/taskchain/internal/live"
	"github.com/mtlprog/taskchain/internal/logger"
)

// Syncer mirrors issue changes into shadow tasks.
type Syncer interface {
	IssueCreated(ctx context.Context, issue domain.Issue) domain.SyncResult
	IssueMoved(ctx context.Context, issue domain.Issue, column string) domain.SyncResult
}

// Broadcaster notifies board viewers.
type Broadcaster interface {
	Broadcast(u live.Update) int
}

// CreateIssueInput holds the fields of a new issue.
type CreateIssueInput struct {
	BoardID     string
	ColumnID    string
	Title       string
	Priority    string
	Description string
	Assignee    string
}

// Service manages board issues.
type Service struct {
	mu     sync.RWMutex
	issues []*domain.Issue

	sync   Syncer
	hub    Broadcaster
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates a Service with an empty board store.
func NewService(syncer Syncer, hub Broadcaster) *Service {
	return &Service{
		sync:   syncer,
		hub:    hub,
		now:    time.Now,
		logger: logger.Component("kanban"),
	}
}

// CreateIssue adds an issue to a board column (todo when empty).
func (s *Service) CreateIssue(ctx context.Context, in CreateIssueInput) (domain.Issue, error) {
	if in.BoardID == "" || in.Title == "" {
		return domain.Issue{}, fmt.Errorf("%w: boardId and title are required", domain.ErrInvalidRequest)
	}
	if in.ColumnID == "" {
		in.ColumnID = domain.ColumnTodo
	}

	now := s.now()
	issue := domain.Issue{
		ID:          uuid.Must(uuid.NewV7()).String(),
		BoardID:     in.BoardID,
		ColumnID:    in.ColumnID,
		Title:       in.Title,
		Priority:    in.Priority,
		Description: in.Description,
		Assignee:    in.Assignee,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	stored := issue
	s.issues = append(s.issues, &stored)
	s.mu.Unlock()

	s.logResult(s.sync.IssueCreated(ctx, issue))
	s.hub.Broadcast(live.Update{BoardID: issue.BoardID, Type: live.UpdateIssueCreated, Payload: issue})

	return issue, nil
}

// MoveIssue moves an issue to column. A non-empty boardID must match the
// issue's board.
func (s *Service) MoveIssue(ctx context.Context, boardID, issueID, column string) (domain.Issue, error) {
	if column == "" {
		return domain.Issue{}, fmt.Errorf("%w: targetColumnId is required", domain.ErrInvalidRequest)
	}

	s.mu.Lock()
	var found *domain.Issue
	for _, is := range s.issues {
		if is.ID == issueID && (boardID == "" || is.BoardID == boardID) {
			found = is
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return domain.Issue{}, fmt.Errorf("%w: %s", domain.ErrIssueNotFound, issueID)
	}
	found.ColumnID = column
	found.UpdatedAt = s.now()
	issue := *found
	s.mu.Unlock()

	s.logResult(s.sync.IssueMoved(ctx, issue, column))
	s.hub.Broadcast(live.Update{BoardID: issue.BoardID, Type: live.UpdateIssueMoved, Payload: issue})

	return issue, nil
}

// Issues returns the board's issues in creation order.
func (s *Service) Issues(_ context.Context, boardID string) []domain.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Issue{}
	for _, is := range s.issues {
		if is.BoardID == boardID {
			out = append(out, *is)
		}
	}
	return out
}

func (s *Service) logResult(res domain.SyncResult) {
	if res.OK() {
		s.logger.Debug("shadow task synced",
			"op", res.Op,
			"team_id", res.TeamID,
			"task_id", res.TaskID,
		)
		return
	}
	s.logger.Warn("shadow task sync failed",
		"op", res.Op,
		"team_id", res.TeamID,
		"task_id", res.TaskID,
		"error", res.Err,
	)
}
