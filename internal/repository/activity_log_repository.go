package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credsure/admin-api/internal/domain"
)

// ActivityLogRepository persists the immutable audit trail.
type ActivityLogRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, limit int) ([]*domain.ActivityLog, error)
}

type activityLogRepository struct {
	pool *pgxpool.Pool
}

// NewActivityLogRepository returns a Postgres-backed implementation.
func NewActivityLogRepository(pool *pgxpool.Pool) ActivityLogRepository {
	return &activityLogRepository{pool: pool}
}

func (r *activityLogRepository) Insert(ctx context.Context, entry *domain.ActivityLog) error {
	var metadata []byte
	if entry.Metadata != nil {
		encoded, err := json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
		metadata = encoded
	}

	const query = `
        INSERT INTO activity_logs (actor_id, actor_role, action, entity_type, entity_id, metadata)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		entry.ActorID,
		entry.ActorRole,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *activityLogRepository) List(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	if limit <= 0 {
		limit = 200
	}

	const query = `
        SELECT id, actor_id, actor_role, action, entity_type, entity_id, metadata, created_at
        FROM activity_logs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.ActivityLog, 0, limit)
	for rows.Next() {
		var entry domain.ActivityLog
		var metadata []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.ActorID,
			&entry.ActorRole,
			&entry.Action,
			&entry.EntityType,
			&entry.EntityID,
			&metadata,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, err
			}
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
