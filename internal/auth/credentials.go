package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/logger"
)

// ErrInvalidCredentials covers both unknown email and wrong password. The
// two cases are deliberately indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash is a real bcrypt hash (of a throwaway value) compared against on
// the unknown-email path so both failure paths cost a full bcrypt round.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// UserStore is the external datastore boundary for identity records
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*database.User, error)
	GetByID(ctx context.Context, userID int64) (*database.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// ActivityRecorder records login events in the activity log
type ActivityRecorder interface {
	Record(ctx context.Context, entry *database.ActivityLog) error
}

// CredentialStore verifies user credentials against the backing datastore
type CredentialStore struct {
	users    UserStore
	activity ActivityRecorder
	hasher   *PasswordHasher
	log      *logger.Logger
}

func NewCredentialStore(users UserStore, activity ActivityRecorder, hasher *PasswordHasher, log *logger.Logger) *CredentialStore {
	return &CredentialStore{
		users:    users,
		activity: activity,
		hasher:   hasher,
		log:      log.WithComponent("credentials"),
	}
}

// Authenticate verifies an email/password pair. On success it stamps
// last_login and records a login activity entry. On any failure it returns
// ErrInvalidCredentials without revealing which factor failed.
func (s *CredentialStore) Authenticate(ctx context.Context, email, password, clientIP string) (*database.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Error("user lookup failed: %v", err)
		}
		// Burn a hash comparison so the unknown-email path costs the same
		// as a wrong password.
		s.hasher.Check(password, dummyHash)
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warning("failed to stamp last login for user %d: %v", user.ID, err)
	}

	if s.activity != nil {
		entry := &database.ActivityLog{
			UserID:    user.ID,
			Action:    "login",
			IPAddress: clientIP,
		}
		if err := s.activity.Record(ctx, entry); err != nil {
			s.log.Warning("failed to record login activity for user %d: %v", user.ID, err)
		}
	}

	return user, nil
}

// FindByEmail exposes the case-insensitive lookup for callers that need the
// record without verifying a password.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*database.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// HashPassword hashes a password for storage
func (s *CredentialStore) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password)
}
