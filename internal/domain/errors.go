package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Shadow task errors
	ErrTaskNotFound     = errors.New("task not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrAlreadyClaimed   = errors.New("task already claimed")
	ErrNotYetClaimed    = errors.New("task must be claimed before completion")
	ErrClaimedByAnother = errors.New("task claimed by another user")

	// Kanban errors
	ErrIssueNotFound = errors.New("issue not found")

	// Ledger errors
	ErrSubscriptionFailure = errors.New("ledger subscription failed")
	ErrMalformedEvent      = errors.New("malformed ledger event")

	// Validation errors
	ErrInvalidStatus  = errors.New("invalid task status")
	ErrInvalidRequest = errors.New("invalid request")
)
