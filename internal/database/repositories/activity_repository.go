package repositories

import (
	"context"
	"database/sql"

	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

type ActivityLogRepository struct {
	db *sql.DB
}

func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Record inserts an activity log entry
func (r *ActivityLogRepository) Record(ctx context.Context, entry *database.ActivityLog) error {
	query := `
        INSERT INTO activity_logs (user_id, action, entity_type, entity_id, details, ip_address)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return r.db.QueryRowContext(ctx, query, entry.UserID, entry.Action,
		entry.EntityType, entry.EntityID, entry.Details, entry.IPAddress).Scan(&entry.ID)
}

// List retrieves activity log entries, newest first
func (r *ActivityLogRepository) List(ctx context.Context, userID int64, limit, offset int) ([]database.ActivityLog, error) {
	query := `
        SELECT id, user_id, action, entity_type, entity_id, details, ip_address, created_at
        FROM activity_logs
        WHERE 1=1
    `
	args := []interface{}{}

	if userID > 0 {
		query += ` AND user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, userID, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []database.ActivityLog
	for rows.Next() {
		var entry database.ActivityLog
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Action, &entry.EntityType,
			&entry.EntityID, &entry.Details, &entry.IPAddress, &entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
