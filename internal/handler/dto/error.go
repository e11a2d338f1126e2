package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/taskchain/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Lookup errors
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "TASK_NOT_FOUND", message
	case errors.Is(err, domain.ErrTeamNotFound):
		return http.StatusNotFound, "TEAM_NOT_FOUND", message
	case errors.Is(err, domain.ErrIssueNotFound):
		return http.StatusNotFound, "ISSUE_NOT_FOUND", message

	// Transition errors
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, "TASK_ALREADY_CLAIMED", message
	case errors.Is(err, domain.ErrClaimedByAnother):
		return http.StatusConflict, "CLAIMED_BY_ANOTHER", message
	case errors.Is(err, domain.ErrNotYetClaimed):
		return http.StatusConflict, "NOT_YET_CLAIMED", message

	// Validation errors
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Default: internal server error
	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
