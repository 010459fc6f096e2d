package interfaces

import (
	"context"

	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

// AuthService issues and verifies session and refresh tokens
type AuthService interface {
	IssueSessionToken(user *database.User) (string, error)
	IssueRefreshToken(userID int64) (string, error)
	VerifySessionToken(token string) (*auth.SessionClaims, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// CredentialService verifies user credentials against the datastore
type CredentialService interface {
	Authenticate(ctx context.Context, email, password, clientIP string) (*database.User, error)
	HashPassword(password string) (string, error)
}
