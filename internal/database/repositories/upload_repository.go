package repositories

import (
	"context"
	"database/sql"

	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

type UploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) Create(ctx context.Context, u *database.Upload) error {
	query := `
        INSERT INTO uploads (user_id, entity_type, entity_id, file_name, file_size, mime_type, storage_key)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	return r.db.QueryRowContext(ctx, query, u.UserID, u.EntityType, u.EntityID,
		u.FileName, u.FileSize, u.MimeType, u.StorageKey).Scan(&u.ID)
}

// ListByEntity retrieves upload records attached to a CRM entity
func (r *UploadRepository) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]database.Upload, error) {
	query := `
        SELECT id, user_id, entity_type, entity_id, file_name, file_size, mime_type, storage_key, created_at
        FROM uploads
        WHERE entity_type = $1 AND entity_id = $2
        ORDER BY created_at DESC
    `

	rows, err := r.db.QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []database.Upload
	for rows.Next() {
		var u database.Upload
		err := rows.Scan(
			&u.ID, &u.UserID, &u.EntityType, &u.EntityID,
			&u.FileName, &u.FileSize, &u.MimeType, &u.StorageKey, &u.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}

	return uploads, rows.Err()
}
