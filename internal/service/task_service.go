package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mtlprog/taskchain/internal/domain"
	"github.com/mtlprog/taskchain/internal/telemetry"
)

// TaskStore persists shadow tasks as one ordered collection per team.
// Mutate must serialize concurrent mutations of the same team's tasks and
// must not persist anything when fn fails.
type TaskStore interface {
	Create(ctx context.Context, teamID string, task domain.ShadowTask) (domain.ShadowTask, error)
	List(ctx context.Context, teamID string) ([]domain.ShadowTask, error)
	ListByStatus(ctx context.Context, teamID string, statuses ...domain.TaskStatus) ([]domain.ShadowTask, error)
	Mutate(ctx context.Context, teamID, taskID string, fn func(*domain.ShadowTask) error) (domain.ShadowTask, error)
}

// TaskService runs the team-local shadow task state machine.
type TaskService struct {
	store     TaskStore
	validator *Validator
	metrics   *telemetry.Metrics
	tracer    trace.Tracer
	clock     clock
}

// NewTaskService creates a new TaskService. metrics may be nil.
func NewTaskService(store TaskStore, metrics *telemetry.Metrics, opts ...Option) *TaskService {
	return &TaskService{
		store:     store,
		validator: NewValidator(),
		metrics:   metrics,
		tracer:    telemetry.Tracer("github.com/mtlprog/taskchain/internal/service"),
		clock:     newClock(opts),
	}
}

// Create appends task to the team's collection. An empty status becomes open
// and an empty id is generated. Ids are not checked for uniqueness.
func (s *TaskService) Create(ctx context.Context, teamID string, task domain.ShadowTask) (domain.ShadowTask, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.Create",
		trace.WithAttributes(attribute.String("team_id", teamID)),
	)
	defer span.End()

	if teamID == "" {
		return domain.ShadowTask{}, fmt.Errorf("%w: teamId is required", domain.ErrInvalidRequest)
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusOpen
	}
	if !task.Status.IsValid() {
		return domain.ShadowTask{}, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, task.Status)
	}
	if task.ID == "" {
		task.ID = uuid.Must(uuid.NewV7()).String()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.clock.now()
	}

	created, err := s.store.Create(ctx, teamID, task)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.ShadowTask{}, fmt.Errorf("create shadow task: %w", err)
	}

	slog.Info("shadow task created",
		"team_id", teamID,
		"task_id", created.ID,
		"status", created.Status,
	)

	return created, nil
}

// List returns all tasks of the team in creation order.
func (s *TaskService) List(ctx context.Context, teamID string) ([]domain.ShadowTask, error) {
	tasks, err := s.store.List(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list shadow tasks: %w", err)
	}
	return tasks, nil
}

// Update validates and applies patch to the task in one serialized step.
// Validation failures leave the record unchanged.
func (s *TaskService) Update(ctx context.Context, teamID, taskID string, patch domain.TaskPatch) (domain.ShadowTask, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.Update",
		trace.WithAttributes(
			attribute.String("team_id", teamID),
			attribute.String("task_id", taskID),
		),
	)
	defer span.End()

	var prior domain.TaskStatus
	updated, err := s.store.Mutate(ctx, teamID, taskID, func(task *domain.ShadowTask) error {
		if err := s.validator.CheckTransition(task, patch); err != nil {
			return err
		}
		prior = task.Status
		applyPatch(task, patch, s.clock.now())
		return nil
	})
	if err != nil {
		if reason := denialReason(err); reason != "" {
			s.metrics.TransitionDenied(reason)
			slog.Warn("shadow task transition rejected",
				"team_id", teamID,
				"task_id", taskID,
				"reason", reason,
			)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.ShadowTask{}, err
	}

	if updated.Status != prior {
		s.metrics.Transition(string(updated.Status))
		slog.Info("shadow task transitioned",
			"team_id", teamID,
			"task_id", taskID,
			"from", prior,
			"to", updated.Status,
			"claimed_by", updated.ClaimedBy,
		)
	}

	return updated, nil
}

// ActiveClaims returns the team's claimed, review and approved tasks.
func (s *TaskService) ActiveClaims(ctx context.Context, teamID string) ([]domain.ActiveClaim, error) {
	tasks, err := s.store.ListByStatus(ctx, teamID,
		domain.TaskStatusClaimed,
		domain.TaskStatusReview,
		domain.TaskStatusApproved,
	)
	if err != nil {
		return nil, fmt.Errorf("list active claims: %w", err)
	}

	active := make([]domain.ActiveClaim, 0, len(tasks))
	for _, t := range tasks {
		active = append(active, domain.ActiveClaim{
			TaskID:    t.ID,
			Title:     t.Title,
			ClaimedBy: t.ClaimedBy,
			Status:    t.Status,
		})
	}
	return active, nil
}
