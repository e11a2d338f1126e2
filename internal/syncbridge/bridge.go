// Package syncbridge mirrors Kanban issue changes into the shadow task store.
//
// Mirroring is best effort: every outcome is returned as a domain.SyncResult
// for the caller to log, and no failure is ever propagated to the Kanban
// mutation being shadowed.
package syncbridge

import (
	"context"
	"strings"

	"github.com/mtlprog/taskchain/internal/domain"
	"github.com/mtlprog/taskchain/internal/telemetry"
)

// Sync operations.
const (
	OpCreate = "create"
	OpMove   = "move"
)

// defaultTeamID is used when a board id carries nothing but known prefixes.
const defaultTeamID = "1"

var boardPrefixes = []string{"default-", "board-"}

// Lifecycle is the shadow task state machine.
type Lifecycle interface {
	Create(ctx context.Context, teamID string, task domain.ShadowTask) (domain.ShadowTask, error)
	Update(ctx context.Context, teamID, taskID string, patch domain.TaskPatch) (domain.ShadowTask, error)
}

// Bridge mirrors issues into shadow tasks.
type Bridge struct {
	tasks   Lifecycle
	metrics *telemetry.Metrics
}

// New creates a Bridge. metrics may be nil.
func New(tasks Lifecycle, metrics *telemetry.Metrics) *Bridge {
	return &Bridge{tasks: tasks, metrics: metrics}
}

// TeamIDFromBoard derives the team id from a board id by stripping the
// "default-" and then the "board-" prefix.
func TeamIDFromBoard(boardID string) string {
	teamID := boardID
	for _, prefix := range boardPrefixes {
		teamID = strings.TrimPrefix(teamID, prefix)
	}
	if teamID == "" {
		return defaultTeamID
	}
	return teamID
}

// ColumnStatus maps a Kanban column to a shadow task status.
func ColumnStatus(column string) domain.TaskStatus {
	switch column {
	case domain.ColumnInProgress:
		return domain.TaskStatusClaimed
	case domain.ColumnDone:
		return domain.TaskStatusCompleted
	default:
		return domain.TaskStatusOpen
	}
}

func claimant(issue domain.Issue) string {
	if issue.Assignee == "" {
		return domain.Unassigned
	}
	return issue.Assignee
}

// IssueCreated mirrors a new issue as an open shadow task.
func (b *Bridge) IssueCreated(ctx context.Context, issue domain.Issue) domain.SyncResult {
	res := domain.SyncResult{
		Op:     OpCreate,
		TeamID: TeamIDFromBoard(issue.BoardID),
		TaskID: issue.ID,
	}

	_, res.Err = b.tasks.Create(ctx, res.TeamID, domain.ShadowTask{
		ID:        issue.ID,
		Title:     issue.Title,
		Status:    domain.TaskStatusOpen,
		ClaimedBy: claimant(issue),
		Category:  issue.Priority,
		CreatedAt: issue.CreatedAt,
	})

	b.metrics.SyncOutcome(res.Op, res.OK())
	return res
}

// IssueMoved mirrors a column change as a status transition.
func (b *Bridge) IssueMoved(ctx context.Context, issue domain.Issue, column string) domain.SyncResult {
	res := domain.SyncResult{
		Op:     OpMove,
		TeamID: TeamIDFromBoard(issue.BoardID),
		TaskID: issue.ID,
	}

	status := ColumnStatus(column)
	patch := domain.TaskPatch{Status: &status}
	if status == domain.TaskStatusClaimed {
		by := claimant(issue)
		patch.ClaimedBy = &by
	}

	_, res.Err = b.tasks.Update(ctx, res.TeamID, res.TaskID, patch)

	b.metrics.SyncOutcome(res.Op, res.OK())
	return res
}
