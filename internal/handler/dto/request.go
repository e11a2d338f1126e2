package dto

import "github.com/mtlprog/taskchain/internal/domain"

// CreateTaskRequest represents the request body for POST /api/task/create.
type CreateTaskRequest struct {
	TeamID string             `json:"teamId"`
	Task   *domain.ShadowTask `json:"task"`
}

// UpdateTaskRequest represents the request body for PATCH /api/task/{teamId}/{taskId}.
// Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Status    *string `json:"status,omitempty"`
	ClaimedBy *string `json:"claimedBy,omitempty"`
	Category  *string `json:"category,omitempty"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateTaskRequest) ToPatch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:     r.Title,
		ClaimedBy: r.ClaimedBy,
		Category:  r.Category,
	}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// CreateIssueRequest represents the request body for POST /api/board/issue.
type CreateIssueRequest struct {
	BoardID     string `json:"boardId"`
	ColumnID    string `json:"columnId"`
	Title       string `json:"title"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
}

// MoveIssueRequest represents the request body for PATCH /api/board/issue/{issueId}/move.
type MoveIssueRequest struct {
	BoardID        string `json:"boardId"`
	TargetColumnID string `json:"targetColumnId"`
}
