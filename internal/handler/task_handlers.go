package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mtlprog/taskchain/internal/handler/dto"
)

// handleCreateTask creates a shadow task for a team.
// @Summary Create a shadow task
// @Description Appends a task to the team's collection. Status defaults to open and the id is generated when empty.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/task/create [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.TeamID == "" || req.Task == nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "teamId and task are required")
		return
	}

	task, err := h.tasks.Create(ctx, req.TeamID, *req.Task)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.TaskResponse{OK: true, Task: task})
}

// handleListTasks lists a team's shadow tasks.
// @Summary List shadow tasks
// @Description Returns the team's tasks in creation order. Unknown teams have no tasks.
// @Tags tasks
// @Produce json
// @Param teamId path string true "Team ID"
// @Success 200 {object} dto.TaskListResponse
// @Router /api/task/{teamId} [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("teamId")

	tasks, err := h.tasks.List(r.Context(), teamID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.TaskListResponse{TeamID: teamID, Tasks: tasks})
}

// handleActiveClaims lists a team's claimed, review and approved tasks.
// @Summary List active claims
// @Tags tasks
// @Produce json
// @Param teamId path string true "Team ID"
// @Success 200 {object} dto.ActiveClaimsResponse
// @Router /api/task/{teamId}/active [get]
func (h *Handler) handleActiveClaims(w http.ResponseWriter, r *http.Request) {
	active, err := h.tasks.ActiveClaims(r.Context(), r.PathValue("teamId"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ActiveClaimsResponse{OK: true, Active: active})
}

// handleUpdateTask applies a validated patch to a shadow task.
// @Summary Update a shadow task
// @Description Claims, completes or edits a task. Transition rules are checked before the patch is applied.
// @Tags tasks
// @Accept json
// @Produce json
// @Param teamId path string true "Team ID"
// @Param taskId path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/task/{teamId}/{taskId} [patch]
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.tasks.Update(ctx, r.PathValue("teamId"), r.PathValue("taskId"), req.ToPatch())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.TaskResponse{OK: true, Task: task})
}
