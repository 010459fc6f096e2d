package api

import (
	"database/sql"
	"fmt"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
	"github.com/NZUMAN2/transera-crm-sub001/internal/database/repositories"
	"github.com/NZUMAN2/transera-crm-sub001/internal/realtime"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/config"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/logger"
)

// Services wires the datastore, auth components and realtime hub together
// behind the interfaces the handlers consume.
type Services struct {
	cfg *config.Config
	log *logger.Logger
	db  *sql.DB

	tokens      *auth.TokenService
	credentials *auth.CredentialStore
	csrf        *auth.CSRFGuard

	apiLimiter    *auth.RateLimiter
	authLimiter   *auth.RateLimiter
	uploadLimiter *auth.RateLimiter

	hub *realtime.Hub

	users      *repositories.UserRepository
	candidates *repositories.CandidateRepository
	jobs       *repositories.JobRepository
	clients    *repositories.ClientRepository
	activity   *repositories.ActivityLogRepository
	uploads    *repositories.UploadRepository
}

// NewServices builds the service container. csrfStore decides where CSRF
// tokens live (in-process map or redis).
func NewServices(cfg *config.Config, log *logger.Logger, db *sql.DB, csrfStore auth.CSRFStore, hub *realtime.Hub) (*Services, error) {
	users := repositories.NewUserRepository(db)
	activity := repositories.NewActivityLogRepository(db)

	tokens, err := auth.NewTokenService(auth.TokenServiceConfig{
		Secret:          cfg.Security.JWTSecret,
		PreviousSecret:  cfg.Security.PreviousJWTSecret,
		SessionLifetime: cfg.Security.SessionLifetime,
		RefreshLifetime: cfg.Security.RefreshLifetime,
	}, users)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	hasher := auth.NewPasswordHasher(cfg.Security.BcryptCost)

	apiLimiter, err := auth.NewRateLimiter("api", cfg.RateLimit.API.Limit,
		cfg.RateLimit.API.Window, cfg.RateLimit.MaxKeys)
	if err != nil {
		return nil, fmt.Errorf("api limiter: %w", err)
	}
	authLimiter, err := auth.NewRateLimiter("auth", cfg.RateLimit.Auth.Limit,
		cfg.RateLimit.Auth.Window, cfg.RateLimit.MaxKeys)
	if err != nil {
		return nil, fmt.Errorf("auth limiter: %w", err)
	}
	uploadLimiter, err := auth.NewRateLimiter("upload", cfg.RateLimit.Upload.Limit,
		cfg.RateLimit.Upload.Window, cfg.RateLimit.MaxKeys)
	if err != nil {
		return nil, fmt.Errorf("upload limiter: %w", err)
	}

	return &Services{
		cfg:           cfg,
		log:           log,
		db:            db,
		tokens:        tokens,
		credentials:   auth.NewCredentialStore(users, activity, hasher, log),
		csrf:          auth.NewCSRFGuard(csrfStore, cfg.Security.CSRFLifetime),
		apiLimiter:    apiLimiter,
		authLimiter:   authLimiter,
		uploadLimiter: uploadLimiter,
		hub:           hub,
		users:         users,
		candidates:    repositories.NewCandidateRepository(db),
		jobs:          repositories.NewJobRepository(db),
		clients:       repositories.NewClientRepository(db),
		activity:      activity,
		uploads:       repositories.NewUploadRepository(db),
	}, nil
}

func (s *Services) GetLogger() *logger.Logger { return s.log }
func (s *Services) GetConfig() *config.Config { return s.cfg }

func (s *Services) AuthService() interfaces.AuthService             { return s.tokens }
func (s *Services) CredentialService() interfaces.CredentialService { return s.credentials }
func (s *Services) CSRFGuard() *auth.CSRFGuard                      { return s.csrf }

func (s *Services) APILimiter() *auth.RateLimiter    { return s.apiLimiter }
func (s *Services) AuthLimiter() *auth.RateLimiter   { return s.authLimiter }
func (s *Services) UploadLimiter() *auth.RateLimiter { return s.uploadLimiter }

func (s *Services) Hub() *realtime.Hub { return s.hub }

func (s *Services) Users() interfaces.UserStore           { return s.users }
func (s *Services) Candidates() interfaces.CandidateStore { return s.candidates }
func (s *Services) Jobs() interfaces.JobStore             { return s.jobs }
func (s *Services) Clients() interfaces.ClientStore       { return s.clients }
func (s *Services) Activity() interfaces.ActivityStore    { return s.activity }
func (s *Services) Uploads() interfaces.UploadStore       { return s.uploads }

// IsHealthy reports whether the datastore is reachable
func (s *Services) IsHealthy() bool {
	return s.db != nil && s.db.Ping() == nil
}
