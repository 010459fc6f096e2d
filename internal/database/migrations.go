package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// RunMigrations executes database migrations. The id column syntax differs
// between sqlite and postgres, so statements carry a placeholder that is
// rewritten per driver.
func RunMigrations(db *sql.DB, dbType string) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if dbType == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	migrations := []string{
		createUsersTable,
		createClientsTable,
		createJobsTable,
		createCandidatesTable,
		createActivityLogsTable,
		createUploadsTable,
		createIndices,
	}

	for i, migration := range migrations {
		stmt := strings.ReplaceAll(migration, "{{id}}", idColumn)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %v", i+1, err)
		}
	}

	return nil
}

// Database schema definitions
const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id {{id}},
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    name VARCHAR(255) NOT NULL,
    role VARCHAR(20) NOT NULL DEFAULT 'viewer',
    permissions TEXT NOT NULL DEFAULT '[]',
    is_active BOOLEAN DEFAULT TRUE,
    last_login TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

const createClientsTable = `
CREATE TABLE IF NOT EXISTS clients (
    id {{id}},
    name VARCHAR(255) NOT NULL,
    industry VARCHAR(100),
    contact_name VARCHAR(255),
    contact_email VARCHAR(255),
    contact_phone VARCHAR(50),
    owner_id BIGINT,
    notes TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

const createJobsTable = `
CREATE TABLE IF NOT EXISTS jobs (
    id {{id}},
    client_id BIGINT NOT NULL,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    location VARCHAR(255),
    salary_min BIGINT DEFAULT 0,
    salary_max BIGINT DEFAULT 0,
    status VARCHAR(20) DEFAULT 'open',
    owner_id BIGINT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

const createCandidatesTable = `
CREATE TABLE IF NOT EXISTS candidates (
    id {{id}},
    first_name VARCHAR(100) NOT NULL,
    last_name VARCHAR(100) NOT NULL,
    email VARCHAR(255),
    phone VARCHAR(50),
    title VARCHAR(255),
    skills TEXT,
    status VARCHAR(20) DEFAULT 'new',
    owner_id BIGINT,
    resume_path VARCHAR(500),
    notes TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

const createActivityLogsTable = `
CREATE TABLE IF NOT EXISTS activity_logs (
    id {{id}},
    user_id BIGINT,
    action VARCHAR(100) NOT NULL,
    entity_type VARCHAR(50),
    entity_id BIGINT,
    details TEXT,
    ip_address VARCHAR(45),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

const createUploadsTable = `
CREATE TABLE IF NOT EXISTS uploads (
    id {{id}},
    user_id BIGINT NOT NULL,
    entity_type VARCHAR(50),
    entity_id BIGINT,
    file_name VARCHAR(500) NOT NULL,
    file_size BIGINT DEFAULT 0,
    mime_type VARCHAR(100),
    storage_key VARCHAR(500) NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

const createIndices = `
CREATE INDEX IF NOT EXISTS idx_users_email ON users (email);
CREATE INDEX IF NOT EXISTS idx_candidates_status ON candidates (status);
CREATE INDEX IF NOT EXISTS idx_candidates_owner ON candidates (owner_id);
CREATE INDEX IF NOT EXISTS idx_jobs_client ON jobs (client_id);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs (status);
CREATE INDEX IF NOT EXISTS idx_activity_user ON activity_logs (user_id);
CREATE INDEX IF NOT EXISTS idx_activity_created_at ON activity_logs (created_at);
CREATE INDEX IF NOT EXISTS idx_uploads_entity ON uploads (entity_type, entity_id);`
