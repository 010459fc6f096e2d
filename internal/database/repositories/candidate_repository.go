package repositories

import (
	"context"
	"database/sql"

	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

type CandidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) Create(ctx context.Context, c *database.Candidate) error {
	query := `
        INSERT INTO candidates (first_name, last_name, email, phone, title, skills, status, owner_id, resume_path, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `
	return r.db.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone,
		c.Title, c.Skills, c.Status, c.OwnerID, c.ResumePath, c.Notes).Scan(&c.ID)
}

func (r *CandidateRepository) GetByID(ctx context.Context, id int64) (*database.Candidate, error) {
	query := `
        SELECT id, first_name, last_name, email, phone, title, skills, status,
               owner_id, resume_path, notes, created_at, updated_at
        FROM candidates
        WHERE id = $1
    `

	var c database.Candidate
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Title,
		&c.Skills, &c.Status, &c.OwnerID, &c.ResumePath, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *CandidateRepository) Update(ctx context.Context, c *database.Candidate) error {
	query := `
        UPDATE candidates
        SET first_name = $1, last_name = $2, email = $3, phone = $4, title = $5,
            skills = $6, status = $7, resume_path = $8, notes = $9,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $10
    `
	_, err := r.db.ExecContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone,
		c.Title, c.Skills, c.Status, c.ResumePath, c.Notes, c.ID)
	return err
}

func (r *CandidateRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	return err
}

// List retrieves candidates filtered by status with pagination
func (r *CandidateRepository) List(ctx context.Context, status string, limit, offset int) ([]database.Candidate, error) {
	query := `
        SELECT id, first_name, last_name, email, phone, title, skills, status,
               owner_id, resume_path, notes, created_at, updated_at
        FROM candidates
        WHERE 1=1
    `
	args := []interface{}{}

	if status != "" {
		query += ` AND status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []database.Candidate
	for rows.Next() {
		var c database.Candidate
		err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Title,
			&c.Skills, &c.Status, &c.OwnerID, &c.ResumePath, &c.Notes,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}
