package dto

import "github.com/mtlprog/taskchain/internal/domain"

// ActivityResponse is the global activity feed, newest first.
type ActivityResponse struct {
	OK       bool               `json:"ok"`
	Activity []domain.TaskEvent `json:"activity"`
}

// HistoryResponse is one actor's history in insertion order.
type HistoryResponse struct {
	OK      bool               `json:"ok"`
	Actor   string             `json:"actor"`
	History []domain.TaskEvent `json:"history"`
}

// ProjectionsResponse lists ledger task projections.
type ProjectionsResponse struct {
	OK    bool                `json:"ok"`
	Tasks []domain.Projection `json:"tasks"`
}

// ProjectionResponse wraps a single projection.
type ProjectionResponse struct {
	OK   bool              `json:"ok"`
	Task domain.Projection `json:"task"`
}

// TaskResponse wraps a single shadow task.
type TaskResponse struct {
	OK   bool              `json:"ok"`
	Task domain.ShadowTask `json:"task"`
}

// TaskListResponse lists a team's shadow tasks.
type TaskListResponse struct {
	TeamID string              `json:"teamId"`
	Tasks  []domain.ShadowTask `json:"tasks"`
}

// ActiveClaimsResponse lists a team's active claims.
type ActiveClaimsResponse struct {
	OK     bool                 `json:"ok"`
	Active []domain.ActiveClaim `json:"active"`
}

// ReportResponse wraps a contribution report.
type ReportResponse struct {
	OK     bool                       `json:"ok"`
	Report *domain.ContributionReport `json:"report"`
}

// IssueResponse wraps a single board issue.
type IssueResponse struct {
	Issue domain.Issue `json:"issue"`
}

// BoardResponse lists the issues of a board.
type BoardResponse struct {
	BoardID string         `json:"boardId"`
	Issues  []domain.Issue `json:"issues"`
}

// HealthzResponse reports process readiness.
type HealthzResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Listening bool   `json:"listening"`
}
