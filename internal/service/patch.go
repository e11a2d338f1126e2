package service

import (
	"time"

	"github.com/mtlprog/taskchain/internal/domain"
)

// applyPatch merges the non-nil patch fields into task and stamps the
// claim and completion times when the task arrives in those statuses.
func applyPatch(task *domain.ShadowTask, patch domain.TaskPatch, now time.Time) {
	if patch.Status != nil {
		stampTransition(task, *patch.Status, now)
		task.Status = *patch.Status
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.ClaimedBy != nil {
		task.ClaimedBy = *patch.ClaimedBy
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
}

// stampTransition records the time a task enters claimed or completed. A task
// that is released and claimed again gets a fresh ClaimedAt. It must run before
// task.Status is overwritten.
func stampTransition(task *domain.ShadowTask, next domain.TaskStatus, now time.Time) {
	if next == task.Status {
		return
	}
	switch next {
	case domain.TaskStatusClaimed:
		task.ClaimedAt = &now
	case domain.TaskStatusCompleted:
		task.CompletedAt = &now
	}
}
