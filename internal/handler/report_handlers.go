package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/taskchain/internal/handler/dto"
)

// handleContributionReport returns the contribution report.
// @Summary Contribution report
// @Description Totals, velocity over the last 7 UTC days, recent activity and disputed completions.
// @Tags business
// @Produce json
// @Param teamId path string true "Team ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/business/report/{teamId} [get]
func (h *Handler) handleContributionReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.ContributionReport(r.Context(), r.PathValue("teamId"))
	if err != nil {
		slog.Error("contribution report failed", "error", err)
		respondError(w, http.StatusInternalServerError, "REPORT_FAILED", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, dto.ReportResponse{OK: true, Report: report})
}

// handleExportCSV streams completed tasks as CSV.
// @Summary Export completions as CSV
// @Tags business
// @Produce text/csv
// @Param teamId path string true "Team ID"
// @Success 200 {string} string "CSV document"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/business/export/csv/{teamId} [get]
func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("teamId")

	// Buffer so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := h.reports.ExportCSV(r.Context(), teamID, &buf); err != nil {
		slog.Error("csv export failed", "team_id", teamID, "error", err)
		respondError(w, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=contribution_report_%s.csv", teamID))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write csv response", "error", err)
	}
}

// handleTeamHealth returns the health dashboard of a team's shadow tasks.
// @Summary Team health
// @Tags health
// @Produce json
// @Param teamId path string true "Team ID"
// @Success 200 {object} domain.TeamHealth
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/health/team/{teamId} [get]
func (h *Handler) handleTeamHealth(w http.ResponseWriter, r *http.Request) {
	health, err := h.health.TeamHealth(r.Context(), r.PathValue("teamId"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, health)
}
