package service

import (
	"errors"
	"fmt"

	"github.com/mtlprog/taskchain/internal/domain"
)

// Validator checks shadow task transitions.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// CheckTransition validates patch against the task's current state.
// Rules are checked in a fixed order and the first violation wins.
func (v *Validator) CheckTransition(task *domain.ShadowTask, patch domain.TaskPatch) error {
	if patch.Status == nil {
		return nil
	}
	next := *patch.Status

	if !next.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, next)
	}

	// Only open tasks can be claimed.
	if next == domain.TaskStatusClaimed && task.Status != domain.TaskStatusOpen {
		return fmt.Errorf("%w: task %s is %s", domain.ErrAlreadyClaimed, task.ID, task.Status)
	}

	// Only claimed tasks can be completed.
	if next == domain.TaskStatusCompleted && task.Status != domain.TaskStatusClaimed {
		return fmt.Errorf("%w: task %s is %s", domain.ErrNotYetClaimed, task.ID, task.Status)
	}

	// A recorded claimant survives a release to open.
	if next == domain.TaskStatusClaimed && patch.ClaimedBy != nil &&
		task.ClaimedBy != "" && task.ClaimedBy != *patch.ClaimedBy {
		return fmt.Errorf("%w: task %s is held by %s", domain.ErrClaimedByAnother, task.ID, task.ClaimedBy)
	}

	return nil
}

// denialReason maps a validation error to a metric label.
func denialReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return "already_claimed"
	case errors.Is(err, domain.ErrNotYetClaimed):
		return "not_yet_claimed"
	case errors.Is(err, domain.ErrClaimedByAnother):
		return "claimed_by_another"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "invalid_status"
	default:
		return ""
	}
}
