package repositories

import (
	"context"
	"database/sql"

	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *database.User) error {
	query := `
        INSERT INTO users (email, password_hash, name, role, permissions)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash,
		user.Name, user.Role, user.Permissions).Scan(&user.ID)
}

// FindByEmail retrieves an active user by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*database.User, error) {
	query := `
        SELECT id, email, password_hash, name, role, permissions,
               is_active, last_login, created_at, updated_at
        FROM users
        WHERE LOWER(email) = LOWER($1) AND is_active = TRUE
    `

	var user database.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Role, &user.Permissions, &user.IsActive,
		&user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*database.User, error) {
	query := `
        SELECT id, email, password_hash, name, role, permissions,
               is_active, last_login, created_at, updated_at
        FROM users
        WHERE id = $1
    `

	var user database.User
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Role, &user.Permissions, &user.IsActive,
		&user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	query := `
        UPDATE users
        SET last_login = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// UpdateRole changes a user's role and permission set
func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role, permissions string) error {
	query := `
        UPDATE users
        SET role = $1, permissions = $2, updated_at = CURRENT_TIMESTAMP
        WHERE id = $3
    `
	_, err := r.db.ExecContext(ctx, query, role, permissions, userID)
	return err
}

// UpdatePassword updates a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, passwordHash, userID)
	return err
}

// Deactivate disables a user account without deleting the record
func (r *UserRepository) Deactivate(ctx context.Context, userID int64) error {
	query := `UPDATE users SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// List retrieves users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]database.User, error) {
	query := `
        SELECT id, email, password_hash, name, role, permissions,
               is_active, last_login, created_at, updated_at
        FROM users
        ORDER BY created_at DESC LIMIT $1 OFFSET $2
    `

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []database.User
	for rows.Next() {
		var user database.User
		err := rows.Scan(
			&user.ID, &user.Email, &user.PasswordHash, &user.Name,
			&user.Role, &user.Permissions, &user.IsActive,
			&user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
