package handler

import (
	"net/http"

	"github.com/mtlprog/taskchain/internal/handler/dto"
)

// handleGlobalActivity returns the ledger activity feed.
// @Summary Global activity
// @Description Every ingested ledger event, newest first.
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.ActivityResponse
// @Router /api/analytics/activity [get]
func (h *Handler) handleGlobalActivity(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.ActivityResponse{
		OK:       true,
		Activity: h.activity.GlobalActivity(r.Context()),
	})
}

// handleUserHistory returns one actor's events.
// @Summary Actor history
// @Description Events performed by the actor in ingestion order. Addresses match case-insensitively.
// @Tags analytics
// @Produce json
// @Param actor path string true "Actor address"
// @Success 200 {object} dto.HistoryResponse
// @Router /api/analytics/history/{actor} [get]
func (h *Handler) handleUserHistory(w http.ResponseWriter, r *http.Request) {
	actor := r.PathValue("actor")
	respondJSON(w, http.StatusOK, dto.HistoryResponse{
		OK:      true,
		Actor:   actor,
		History: h.activity.UserHistory(r.Context(), actor),
	})
}

// handleListProjections returns every ledger task projection.
// @Summary List ledger tasks
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.ProjectionsResponse
// @Router /api/analytics/tasks [get]
func (h *Handler) handleListProjections(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.ProjectionsResponse{
		OK:    true,
		Tasks: h.activity.Tasks(r.Context()),
	})
}

// handleGetProjection returns one ledger task projection.
// @Summary Get ledger task
// @Tags analytics
// @Produce json
// @Param taskId path int true "Ledger task ID"
// @Success 200 {object} dto.ProjectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/analytics/tasks/{taskId} [get]
func (h *Handler) handleGetProjection(w http.ResponseWriter, r *http.Request) {
	taskID, ok := extractLedgerTaskID(w, r)
	if !ok {
		return
	}

	projection, err := h.activity.Task(r.Context(), taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ProjectionResponse{OK: true, Task: projection})
}
