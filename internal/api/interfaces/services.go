package interfaces

import (
	"context"

	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
	"github.com/NZUMAN2/transera-crm-sub001/internal/realtime"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/config"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/logger"
)

// UserStore is the identity datastore surface used by handlers
type UserStore interface {
	Create(ctx context.Context, user *database.User) error
	FindByEmail(ctx context.Context, email string) (*database.User, error)
	GetByID(ctx context.Context, userID int64) (*database.User, error)
	UpdateRole(ctx context.Context, userID int64, role, permissions string) error
	List(ctx context.Context, limit, offset int) ([]database.User, error)
}

// CandidateStore is the candidate datastore surface
type CandidateStore interface {
	Create(ctx context.Context, c *database.Candidate) error
	GetByID(ctx context.Context, id int64) (*database.Candidate, error)
	Update(ctx context.Context, c *database.Candidate) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status string, limit, offset int) ([]database.Candidate, error)
}

// JobStore is the job datastore surface
type JobStore interface {
	Create(ctx context.Context, j *database.Job) error
	GetByID(ctx context.Context, id int64) (*database.Job, error)
	Update(ctx context.Context, j *database.Job) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status string, limit, offset int) ([]database.Job, error)
}

// ClientStore is the client datastore surface
type ClientStore interface {
	Create(ctx context.Context, c *database.Client) error
	GetByID(ctx context.Context, id int64) (*database.Client, error)
	Update(ctx context.Context, c *database.Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]database.Client, error)
}

// ActivityStore records and lists activity log entries
type ActivityStore interface {
	Record(ctx context.Context, entry *database.ActivityLog) error
	List(ctx context.Context, userID int64, limit, offset int) ([]database.ActivityLog, error)
}

// UploadStore records upload metadata
type UploadStore interface {
	Create(ctx context.Context, u *database.Upload) error
	ListByEntity(ctx context.Context, entityType string, entityID int64) ([]database.Upload, error)
}

// Services defines the interface for API services
type Services interface {
	GetLogger() *logger.Logger
	GetConfig() *config.Config

	AuthService() AuthService
	CredentialService() CredentialService
	CSRFGuard() *auth.CSRFGuard

	APILimiter() *auth.RateLimiter
	AuthLimiter() *auth.RateLimiter
	UploadLimiter() *auth.RateLimiter

	Hub() *realtime.Hub

	Users() UserStore
	Candidates() CandidateStore
	Jobs() JobStore
	Clients() ClientStore
	Activity() ActivityStore
	Uploads() UploadStore

	IsHealthy() bool
}
