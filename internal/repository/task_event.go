package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/taskchain/internal/domain"
)

// ChainEventRepository archives indexed task events so the activity log can
// be replayed after a restart.
type ChainEventRepository struct {
	pool *pgxpool.Pool
}

// NewChainEventRepository creates a new ChainEventRepository.
func NewChainEventRepository(pool *pgxpool.Pool) *ChainEventRepository {
	return &ChainEventRepository{pool: pool}
}

// Archive stores an event. Re-archiving an id already present is a no-op.
func (r *ChainEventRepository) Archive(ctx context.Context, event domain.TaskEvent) error {
	details, err := json.Marshal(event.Details)
	if err != nil {
		return fmt.Errorf("marshal %s details: %w", event.Kind, err)
	}

	query, args, err := psql.
		Insert("chain_events").
		Columns("id", "task_id", "kind", "occurred_at", "actor", "details", "tx_hash").
		Values(
			event.ID,
			// uint64 ids round-trip through BIGINT bit for bit
			int64(event.TaskID),
			event.Kind,
			event.Timestamp,
			event.Actor,
			details,
			event.TxHash,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("archive chain event: %w", err)
	}

	return nil
}

// List returns every archived event in archive order.
func (r *ChainEventRepository) List(ctx context.Context) ([]domain.TaskEvent, error) {
	query, args, err := psql.
		Select("id", "task_id", "kind", "occurred_at", "actor", "details", "tx_hash").
		From("chain_events").
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chain events: %w", err)
	}
	defer rows.Close()

	events := []domain.TaskEvent{}
	for rows.Next() {
		var (
			event   domain.TaskEvent
			taskID  int64
			details []byte
		)
		err := rows.Scan(
			&event.ID,
			&taskID,
			&event.Kind,
			&event.Timestamp,
			&event.Actor,
			&details,
			&event.TxHash,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chain event: %w", err)
		}

		event.TaskID = uint64(taskID)
		event.Timestamp = event.Timestamp.UTC()
		event.Details, err = domain.DecodeDetails(event.Kind, details)
		if err != nil {
			return nil, fmt.Errorf("chain event %s: %w", event.ID, err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return events, nil
}
