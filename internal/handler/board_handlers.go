package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mtlprog/taskchain/internal/handler/dto"
	"github.com/mtlprog/taskchain/internal/kanban"
)

// handleListIssues returns a board's issues.
// @Summary List board issues
// @Tags boards
// @Produce json
// @Param boardId path string true "Board ID"
// @Success 200 {object} dto.BoardResponse
// @Router /api/board/{boardId} [get]
func (h *Handler) handleListIssues(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("boardId")
	respondJSON(w, http.StatusOK, dto.BoardResponse{
		BoardID: boardID,
		Issues:  h.boards.Issues(r.Context(), boardID),
	})
}

// handleCreateIssue creates a board issue and mirrors it as a shadow task.
// @Summary Create an issue
// @Description Sync failures are logged and do not fail the request.
// @Tags boards
// @Accept json
// @Produce json
// @Param request body dto.CreateIssueRequest true "Issue creation request"
// @Success 201 {object} dto.IssueResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/board/issue [post]
func (h *Handler) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	issue, err := h.boards.CreateIssue(r.Context(), kanban.CreateIssueInput{
		BoardID:     req.BoardID,
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Priority:    req.Priority,
		Description: req.Description,
		Assignee:    req.Assignee,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.IssueResponse{Issue: issue})
}

// handleMoveIssue moves an issue to another column.
// @Summary Move an issue
// @Description Moving to in-progress claims the shadow task and moving to done completes it.
// @Tags boards
// @Accept json
// @Produce json
// @Param issueId path string true "Issue ID"
// @Param request body dto.MoveIssueRequest true "Target column"
// @Success 200 {object} dto.IssueResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/board/issue/{issueId}/move [patch]
func (h *Handler) handleMoveIssue(w http.ResponseWriter, r *http.Request) {
	var req dto.MoveIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	issue, err := h.boards.MoveIssue(r.Context(), req.BoardID, r.PathValue("issueId"), req.TargetColumnID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.IssueResponse{Issue: issue})
}
