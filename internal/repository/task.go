package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/taskchain/internal/domain"
)

// shadowTaskColumns is the shared list of columns for shadow task queries.
var shadowTaskColumns = []string{
	"position", "id", "title", "status", "claimed_by",
	"claimed_at", "completed_at", "category", "created_at",
}

// ShadowTaskRepository stores shadow tasks in PostgreSQL, one ordered
// collection per team.
type ShadowTaskRepository struct {
	pool *pgxpool.Pool
}

// NewShadowTaskRepository creates a new ShadowTaskRepository.
func NewShadowTaskRepository(pool *pgxpool.Pool) *ShadowTaskRepository {
	return &ShadowTaskRepository{pool: pool}
}

// scanShadowTask scans a single row into a ShadowTask and its position.
func scanShadowTask(row pgx.Row) (*domain.ShadowTask, int64, error) {
	var (
		task     domain.ShadowTask
		position int64
	)
	err := row.Scan(
		&position,
		&task.ID,
		&task.Title,
		&task.Status,
		&task.ClaimedBy,
		&task.ClaimedAt,
		&task.CompletedAt,
		&task.Category,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, domain.ErrTaskNotFound
		}
		return nil, 0, fmt.Errorf("scan shadow task: %w", err)
	}
	return &task, position, nil
}

// scanShadowTasks scans multiple rows into a slice of ShadowTasks.
func scanShadowTasks(rows pgx.Rows) ([]domain.ShadowTask, error) {
	defer rows.Close()

	tasks := []domain.ShadowTask{}
	for rows.Next() {
		task, _, err := scanShadowTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// Create appends a task to the team's collection.
func (r *ShadowTaskRepository) Create(ctx context.Context, teamID string, task domain.ShadowTask) (domain.ShadowTask, error) {
	query, args, err := psql.
		Insert("shadow_tasks").
		Columns(
			"team_id", "id", "title", "status", "claimed_by",
			"claimed_at", "completed_at", "category", "created_at",
		).
		Values(
			teamID,
			task.ID,
			task.Title,
			task.Status,
			task.ClaimedBy,
			task.ClaimedAt,
			task.CompletedAt,
			task.Category,
			task.CreatedAt,
		).
		ToSql()
	if err != nil {
		return domain.ShadowTask{}, fmt.Errorf("build Create query for shadow task: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return domain.ShadowTask{}, fmt.Errorf("create shadow task: %w", err)
	}

	return task, nil
}

// List returns the team's tasks in creation order.
func (r *ShadowTaskRepository) List(ctx context.Context, teamID string) ([]domain.ShadowTask, error) {
	return r.ListByStatus(ctx, teamID)
}

// ListByStatus returns the team's tasks whose status is one of statuses, in
// creation order. No statuses means all tasks.
func (r *ShadowTaskRepository) ListByStatus(ctx context.Context, teamID string, statuses ...domain.TaskStatus) ([]domain.ShadowTask, error) {
	qb := psql.
		Select(shadowTaskColumns...).
		From("shadow_tasks").
		Where(sq.Eq{"team_id": teamID}).
		OrderBy("position ASC")

	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		qb = qb.Where(sq.Eq{"status": values})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for shadow tasks: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shadow tasks: %w", err)
	}

	return scanShadowTasks(rows)
}

// Mutate locks the first task with taskID in the team, applies fn and
// persists the result in one transaction. If fn fails nothing is written.
func (r *ShadowTaskRepository) Mutate(
	ctx context.Context,
	teamID, taskID string,
	fn func(*domain.ShadowTask) error,
) (domain.ShadowTask, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.ShadowTask{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	task, position, err := r.getForUpdate(ctx, tx, teamID, taskID)
	if err != nil {
		return domain.ShadowTask{}, err
	}

	if err := fn(task); err != nil {
		return domain.ShadowTask{}, err
	}

	query, args, err := psql.
		Update("shadow_tasks").
		Set("title", task.Title).
		Set("status", task.Status).
		Set("claimed_by", task.ClaimedBy).
		Set("claimed_at", task.ClaimedAt).
		Set("completed_at", task.CompletedAt).
		Set("category", task.Category).
		Where(sq.Eq{"position": position}).
		ToSql()
	if err != nil {
		return domain.ShadowTask{}, fmt.Errorf("build Mutate query for shadow task %s: %w", taskID, err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return domain.ShadowTask{}, fmt.Errorf("update shadow task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ShadowTask{}, fmt.Errorf("commit transaction: %w", err)
	}

	return *task, nil
}

// getForUpdate retrieves the first matching task with a FOR UPDATE lock.
func (r *ShadowTaskRepository) getForUpdate(ctx context.Context, q querier, teamID, taskID string) (*domain.ShadowTask, int64, error) {
	query, args, err := psql.
		Select(shadowTaskColumns...).
		From("shadow_tasks").
		Where(sq.Eq{"team_id": teamID, "id": taskID}).
		OrderBy("position ASC").
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build getForUpdate query for shadow task %s: %w", taskID, err)
	}

	task, position, err := scanShadowTask(q.QueryRow(ctx, query, args...))
	if errors.Is(err, domain.ErrTaskNotFound) {
		exists, terr := r.teamExists(ctx, q, teamID)
		if terr != nil {
			return nil, 0, terr
		}
		if !exists {
			return nil, 0, fmt.Errorf("%w: %s", domain.ErrTeamNotFound, teamID)
		}
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	return task, position, err
}

func (r *ShadowTaskRepository) teamExists(ctx context.Context, q querier, teamID string) (bool, error) {
	query, args, err := psql.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("shadow_tasks").
		Where(sq.Eq{"team_id": teamID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build teamExists query: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check team: %w", err)
	}
	return exists, nil
}
