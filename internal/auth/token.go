package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

// Verification error kinds. Callers translate these at the API boundary;
// they never reach the client as raw faults.
var (
	ErrTokenMalformed     = errors.New("token malformed")
	ErrTokenExpired       = errors.New("token expired")
	ErrSignatureMismatch  = errors.New("token signature mismatch")
	ErrNotRefreshToken    = errors.New("token is not a refresh token")
	ErrMissingSecret      = errors.New("signing secret not configured")
	ErrUserLookupRequired = errors.New("user lookup required for refresh")
)

const refreshTokenType = "refresh"

// SessionClaims are the claims carried by a session token. Claims are never
// trusted without signature and expiry verification.
type SessionClaims struct {
	Email       string   `json:"email,omitempty"`
	Name        string   `json:"name,omitempty"`
	Role        string   `json:"role,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	TokenType   string   `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject id, or 0 if the subject is not numeric.
func (c *SessionClaims) UserID() int64 {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// UserLookup re-derives identity at refresh time. Role and permissions are
// always re-fetched from the live record, never taken from stale refresh
// claims.
type UserLookup interface {
	GetByID(ctx context.Context, userID int64) (*database.User, error)
}

// TokenServiceConfig configures a TokenService
type TokenServiceConfig struct {
	Secret          string
	PreviousSecret  string // verify-only, accepted during key rotation
	SessionLifetime time.Duration
	RefreshLifetime time.Duration
	Issuer          string
}

// TokenService issues and verifies signed, expiring session tokens
type TokenService struct {
	secret     []byte
	prevSecret []byte
	sessionTTL time.Duration
	refreshTTL time.Duration
	issuer     string
	users      UserLookup
}

// NewTokenService creates a token service. A missing signing secret is a
// configuration error and must be treated as fatal by the caller.
func NewTokenService(cfg TokenServiceConfig, users UserLookup) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.SessionLifetime <= 0 {
		cfg.SessionLifetime = 7 * 24 * time.Hour
	}
	if cfg.RefreshLifetime <= 0 {
		cfg.RefreshLifetime = 30 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "transera-crm"
	}

	svc := &TokenService{
		secret:     []byte(cfg.Secret),
		sessionTTL: cfg.SessionLifetime,
		refreshTTL: cfg.RefreshLifetime,
		issuer:     cfg.Issuer,
		users:      users,
	}
	if cfg.PreviousSecret != "" {
		svc.prevSecret = []byte(cfg.PreviousSecret)
	}
	return svc, nil
}

// IssueSessionToken produces a signed session token carrying the user's
// identity, role and permissions, expiring after the configured lifetime.
func (s *TokenService) IssueSessionToken(user *database.User) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		Permissions: DecodePermissions(user.Permissions),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// IssueRefreshToken produces a signed token carrying only the subject id and
// a discriminator marking it as a refresh token.
func (s *TokenService) IssueRefreshToken(userID int64) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifySessionToken checks signature and expiry and returns the claims.
// Failures are classified as malformed, expired or signature mismatch.
func (s *TokenService) VerifySessionToken(tokenStr string) (*SessionClaims, error) {
	claims, err := s.parse(tokenStr, s.secret)
	if err == nil {
		return claims, nil
	}

	// During key rotation, tokens signed with the previous secret are still
	// accepted for verification. New tokens are only ever signed with the
	// current secret.
	if errors.Is(err, ErrSignatureMismatch) && s.prevSecret != nil {
		if claims, prevErr := s.parse(tokenStr, s.prevSecret); prevErr == nil {
			return claims, nil
		}
	}

	return nil, err
}

// Refresh verifies a refresh token and mints a new session token. Identity
// claims are re-derived from the live user record so a role change takes
// effect on the next refresh rather than surviving for the refresh lifetime.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if s.users == nil {
		return "", ErrUserLookupRequired
	}

	claims, err := s.VerifySessionToken(refreshToken)
	if err != nil {
		return "", err
	}

	// A session token must never be usable in place of a refresh token.
	if claims.TokenType != refreshTokenType {
		return "", ErrNotRefreshToken
	}

	userID := claims.UserID()
	if userID == 0 {
		return "", ErrTokenMalformed
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("refresh identity lookup: %w", err)
	}
	if !user.IsActive {
		return "", ErrTokenExpired
	}

	return s.IssueSessionToken(user)
}

func (s *TokenService) parse(tokenStr string, key []byte) (*SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
	)

	token, err := parser.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		return nil, classifyJWTError(err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureMismatch
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return ErrTokenMalformed
	}
}

// DecodePermissions parses the JSON-encoded permission list stored on the
// user record. Corrupt data yields an empty list, never a wider one.
func DecodePermissions(raw string) []string {
	if raw == "" {
		return nil
	}
	var perms []string
	if err := json.Unmarshal([]byte(raw), &perms); err != nil {
		return nil
	}
	return perms
}

// EncodePermissions serializes a permission list for storage
func EncodePermissions(perms []string) string {
	if perms == nil {
		perms = []string{}
	}
	data, err := json.Marshal(perms)
	if err != nil {
		return "[]"
	}
	return string(data)
}
