package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mtlprog/taskchain/internal/domain"
	"github.com/mtlprog/taskchain/internal/telemetry"
)

const (
	recentActivityLimit = 5
	velocityDays        = 7

	// csvTimeFormat is ISO-8601 in UTC with millisecond precision.
	csvTimeFormat = "2006-01-02T15:04:05.000Z07:00"
	dateFormat    = "2006-01-02"
	noProofLink   = "N/A"
)

var csvHeader = []string{"Task ID", "Executor", "Timestamp", "Proof Link", "Tx Hash"}

// ReportService derives contribution reports from the activity feed.
// Events carry no team link, so reports cover all indexed activity and the
// team id is only echoed back.
type ReportService struct {
	activity *ActivityService
	tracer   trace.Tracer
	clock    clock
}

// NewReportService creates a new ReportService.
func NewReportService(activity *ActivityService, opts ...Option) *ReportService {
	return &ReportService{
		activity: activity,
		tracer:   telemetry.Tracer("github.com/mtlprog/taskchain/internal/service"),
		clock:    newClock(opts),
	}
}

// ContributionReport builds the contribution report.
func (s *ReportService) ContributionReport(ctx context.Context, teamID string) (*domain.ContributionReport, error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.ContributionReport",
		trace.WithAttributes(attribute.String("team_id", teamID)),
	)
	defer span.End()

	events := s.activity.GlobalActivity(ctx)

	report := &domain.ContributionReport{
		TeamID:         teamID,
		RecentActivity: events[:min(recentActivityLimit, len(events))],
		Velocity:       make([]domain.VelocityPoint, 0, velocityDays),
		Disputes:       []domain.TaskEvent{},
	}

	today := s.clock.now().UTC()
	dayIndex := make(map[string]int, velocityDays)
	for i := velocityDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(dateFormat)
		dayIndex[date] = len(report.Velocity)
		report.Velocity = append(report.Velocity, domain.VelocityPoint{Date: date})
	}

	contributors := make(map[string]struct{})
	for _, ev := range events {
		contributors[strings.ToLower(ev.Actor)] = struct{}{}

		switch ev.Kind {
		case domain.EventKindCreated:
			report.TotalTasks++
		case domain.EventKindCompleted:
			report.CompletedTasks++
			if i, ok := dayIndex[ev.Timestamp.UTC().Format(dateFormat)]; ok {
				report.Velocity[i].Count++
			}
			if isDispute(ev) {
				report.Disputes = append(report.Disputes, ev)
			}
		}
	}
	report.TotalContributors = len(contributors)

	span.SetAttributes(
		attribute.Int("completed", report.CompletedTasks),
		attribute.Int("disputes", len(report.Disputes)),
	)
	return report, nil
}

// ExportCSV writes every completion, newest first, as CSV.
func (s *ReportService) ExportCSV(ctx context.Context, teamID string, w io.Writer) error {
	_, span := s.tracer.Start(ctx, "ReportService.ExportCSV",
		trace.WithAttributes(attribute.String("team_id", teamID)),
	)
	defer span.End()

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, ev := range s.activity.GlobalActivity(ctx) {
		if ev.Kind != domain.EventKindCompleted {
			continue
		}
		link := noProofLink
		if d, ok := ev.Details.(domain.CompletedDetails); ok && d.ProofLink != "" {
			link = d.ProofLink
		}
		row := []string{
			strconv.FormatUint(ev.TaskID, 10),
			ev.Actor,
			ev.Timestamp.UTC().Format(csvTimeFormat),
			link,
			ev.TxHash,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for task %d: %w", ev.TaskID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// isDispute reports whether a completion lacks both an IPFS reference and a proof link.
func isDispute(ev domain.TaskEvent) bool {
	d, ok := ev.Details.(domain.CompletedDetails)
	return !ok || !d.HasProof()
}
