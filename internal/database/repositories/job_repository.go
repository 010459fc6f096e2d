package repositories

import (
	"context"
	"database/sql"

	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j *database.Job) error {
	query := `
        INSERT INTO jobs (client_id, title, description, location, salary_min, salary_max, status, owner_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	return r.db.QueryRowContext(ctx, query, j.ClientID, j.Title, j.Description,
		j.Location, j.SalaryMin, j.SalaryMax, j.Status, j.OwnerID).Scan(&j.ID)
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*database.Job, error) {
	query := `
        SELECT id, client_id, title, description, location, salary_min, salary_max,
               status, owner_id, created_at, updated_at
        FROM jobs
        WHERE id = $1
    `

	var j database.Job
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&j.ID, &j.ClientID, &j.Title, &j.Description, &j.Location,
		&j.SalaryMin, &j.SalaryMax, &j.Status, &j.OwnerID,
		&j.CreatedAt, &j.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j *database.Job) error {
	query := `
        UPDATE jobs
        SET client_id = $1, title = $2, description = $3, location = $4,
            salary_min = $5, salary_max = $6, status = $7,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $8
    `
	_, err := r.db.ExecContext(ctx, query, j.ClientID, j.Title, j.Description,
		j.Location, j.SalaryMin, j.SalaryMax, j.Status, j.ID)
	return err
}

func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	return err
}

// List retrieves jobs filtered by status with pagination
func (r *JobRepository) List(ctx context.Context, status string, limit, offset int) ([]database.Job, error) {
	query := `
        SELECT id, client_id, title, description, location, salary_min, salary_max,
               status, owner_id, created_at, updated_at
        FROM jobs
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

	var jobs []database.Job
	for rows.Next() {
		var j database.Job
		err := rows.Scan(
			&j.ID, &j.ClientID, &j.Title, &j.Description, &j.Location,
			&j.SalaryMin, &j.SalaryMax, &j.Status, &j.OwnerID,
			&j.CreatedAt, &j.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}
