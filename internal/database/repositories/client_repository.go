package repositories

import (
	"context"
	"database/sql"

	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *database.Client) error {
	query := `
        INSERT INTO clients (name, industry, contact_name, contact_email, contact_phone, owner_id, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	return r.db.QueryRowContext(ctx, query, c.Name, c.Industry, c.ContactName,
		c.ContactEmail, c.ContactPhone, c.OwnerID, c.Notes).Scan(&c.ID)
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*database.Client, error) {
	query := `
        SELECT id, name, industry, contact_name, contact_email, contact_phone,
               owner_id, notes, created_at, updated_at
        FROM clients
        WHERE id = $1
    `

	var c database.Client
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Industry, &c.ContactName, &c.ContactEmail,
		&c.ContactPhone, &c.OwnerID, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *database.Client) error {
	query := `
        UPDATE clients
        SET name = $1, industry = $2, contact_name = $3, contact_email = $4,
            contact_phone = $5, notes = $6, updated_at = CURRENT_TIMESTAMP
        WHERE id = $7
    `
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Industry, c.ContactName,
		c.ContactEmail, c.ContactPhone, c.Notes, c.ID)
	return err
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}

// List retrieves clients with pagination
func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]database.Client, error) {
	query := `
        SELECT id, name, industry, contact_name, contact_email, contact_phone,
               owner_id, notes, created_at, updated_at
        FROM clients
        ORDER BY name ASC LIMIT $1 OFFSET $2
    `

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []database.Client
	for rows.Next() {
		var c database.Client
		err := rows.Scan(
			&c.ID, &c.Name, &c.Industry, &c.ContactName, &c.ContactEmail,
			&c.ContactPhone, &c.OwnerID, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}
