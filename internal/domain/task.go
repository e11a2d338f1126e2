package domain

import "time"

// TaskStatus represents the status of a shadow task in the team-local state machine.
type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "open"
	TaskStatusClaimed   TaskStatus = "claimed"
	TaskStatusReview    TaskStatus = "review"
	TaskStatusApproved  TaskStatus = "approved"
	TaskStatusCompleted TaskStatus = "completed"
)

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusClaimed, TaskStatusReview,
		TaskStatusApproved, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// IsActiveClaim returns true for statuses shown as active claims.
// review and approved count as claimed for presence purposes.
func (s TaskStatus) IsActiveClaim() bool {
	return s == TaskStatusClaimed || s == TaskStatusReview || s == TaskStatusApproved
}

// Unassigned is the claimant recorded for tasks mirrored from unassigned issues.
const Unassigned = "Unassigned"

// ShadowTask is a team-local task record kept loosely in sync with the ledger.
type ShadowTask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      TaskStatus `json:"status"`
	ClaimedBy   string     `json:"claimedBy,omitempty"`
	ClaimedAt   *time.Time `json:"claimedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Category    string     `json:"category,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Clone returns a copy that shares no pointers with t.
func (t *ShadowTask) Clone() *ShadowTask {
	out := *t
	if t.ClaimedAt != nil {
		at := *t.ClaimedAt
		out.ClaimedAt = &at
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	return &out
}

// TaskPatch is a shallow update of a shadow task. Nil fields are left untouched.
type TaskPatch struct {
	Title     *string     `json:"title,omitempty"`
	Status    *TaskStatus `json:"status,omitempty"`
	ClaimedBy *string     `json:"claimedBy,omitempty"`
	Category  *string     `json:"category,omitempty"`
}

// Transitions reports whether the patch moves the task into status.
func (p TaskPatch) Transitions(status TaskStatus) bool {
	return p.Status != nil && *p.Status == status
}

// ActiveClaim is the presence view of a claimed task.
type ActiveClaim struct {
	TaskID    string     `json:"taskId"`
	Title     string     `json:"title"`
	ClaimedBy string     `json:"claimedBy"`
	Status    TaskStatus `json:"status"`
}

// SyncResult is the outcome of a best-effort shadow synchronization.
// Callers log it; it is never surfaced as a request failure.
type SyncResult struct {
	Op     string
	TeamID string
	TaskID string
	Err    error
}

// OK reports whether the synchronization succeeded.
func (r SyncResult) OK() bool {
	return r.Err == nil
}
