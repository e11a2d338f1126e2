package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mtlprog/taskchain/docs" // Import generated docs
	"github.com/mtlprog/taskchain/internal/handler/dto"
	"github.com/mtlprog/taskchain/internal/kanban"
	"github.com/mtlprog/taskchain/internal/live"
	"github.com/mtlprog/taskchain/internal/service"
	"github.com/mtlprog/taskchain/internal/static"
	"github.com/mtlprog/taskchain/internal/telemetry"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ListenerStatus reports whether the ledger subscription is live.
type ListenerStatus interface {
	Listening() bool
}

// Deps are the services the HTTP layer dispatches to.
// DB and Listener are optional.
type Deps struct {
	Tasks    *service.TaskService
	Activity *service.ActivityService
	Reports  *service.ReportService
	Health   *service.HealthService
	Boards   *kanban.Service
	Hub      *live.Hub
	Metrics  *telemetry.Metrics
	DB       Pinger
	Listener ListenerStatus
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	tasks    *service.TaskService
	activity *service.ActivityService
	reports  *service.ReportService
	health   *service.HealthService
	boards   *kanban.Service
	hub      *live.Hub
	metrics  *telemetry.Metrics
	db       Pinger
	listener ListenerStatus
}

// New creates a new Handler instance with all dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		tasks:    deps.Tasks,
		activity: deps.Activity,
		reports:  deps.Reports,
		health:   deps.Health,
		boards:   deps.Boards,
		hub:      deps.Hub,
		metrics:  deps.Metrics,
		db:       deps.DB,
		listener: deps.Listener,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Ops
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.Handle("GET /metrics", h.metrics.Handler())
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())
	mux.HandleFunc("GET /{$}", h.handleIndex)

	// Ledger analytics
	mux.HandleFunc("GET /api/analytics/activity", h.handleGlobalActivity)
	mux.HandleFunc("GET /api/analytics/history/{actor}", h.handleUserHistory)
	mux.HandleFunc("GET /api/analytics/tasks", h.handleListProjections)
	mux.HandleFunc("GET /api/analytics/tasks/{taskId}", h.handleGetProjection)

	// Shadow tasks
	mux.HandleFunc("POST /api/task/create", h.handleCreateTask)
	mux.HandleFunc("GET /api/task/{teamId}", h.handleListTasks)
	mux.HandleFunc("GET /api/task/{teamId}/active", h.handleActiveClaims)
	mux.HandleFunc("PATCH /api/task/{teamId}/{taskId}", h.handleUpdateTask)

	// Reporting
	mux.HandleFunc("GET /api/business/report/{teamId}", h.handleContributionReport)
	mux.HandleFunc("GET /api/business/export/csv/{teamId}", h.handleExportCSV)
	mux.HandleFunc("GET /api/health/team/{teamId}", h.handleTeamHealth)

	// Boards
	mux.HandleFunc("GET /api/board/{boardId}", h.handleListIssues)
	mux.HandleFunc("POST /api/board/issue", h.handleCreateIssue)
	mux.HandleFunc("PATCH /api/board/issue/{issueId}/move", h.handleMoveIssue)
	mux.HandleFunc("GET /ws/board/{boardId}", h.hub.ServeBoard)
}

// handleHealthz returns 200 OK if the optional database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := dto.HealthzResponse{Status: "ok", Database: "disabled"}
	if h.listener != nil {
		resp.Listening = h.listener.Listening()
	}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			slog.Error("database health check failed", "error", err)
			resp.Status = "degraded"
			resp.Database = "unavailable"
			respondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok"
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleIndex serves the embedded activity feed page.
func (h *Handler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.IndexHTML))
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps err through dto.MapDomainError.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// extractLedgerTaskID parses the numeric ledger task id from the taskId path value.
// Returns (taskID, true) if valid, (0, false) if invalid (error already sent to client).
func extractLedgerTaskID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := r.PathValue("taskId")
	taskID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "taskId must be a non-negative integer")
		return 0, false
	}
	return taskID, true
}
