package auth

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

const testSecret = "unit-test-signing-secret-0123456789abcdef"

type fakeUserLookup struct {
	users map[int64]*database.User
	err   error
}

func (f *fakeUserLookup) GetByID(_ context.Context, userID int64) (*database.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, assert.AnError
	}
	return user, nil
}

func testUser() *database.User {
	return &database.User{
		ID:          7,
		Email:       "nia@transera.io",
		Name:        "Nia Adeyemi",
		Role:        "consultant",
		Permissions: `["candidates:read","candidates:write"]`,
		IsActive:    true,
	}
}

func newTestTokenService(t *testing.T, lookup UserLookup) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenServiceConfig{Secret: testSecret}, lookup)
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(TokenServiceConfig{}, nil)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, nil)
	user := testUser()

	token, err := svc.IssueSessionToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifySessionToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.UserID())
	assert.Equal(t, "nia@transera.io", claims.Email)
	assert.Equal(t, "Nia Adeyemi", claims.Name)
	assert.Equal(t, "consultant", claims.Role)
	assert.Equal(t, []string{"candidates:read", "candidates:write"}, claims.Permissions)
	assert.Empty(t, claims.TokenType)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	svc := newTestTokenService(t, nil)
	other, err := NewTokenService(TokenServiceConfig{Secret: "a-completely-different-secret-value"}, nil)
	require.NoError(t, err)

	token, err := other.IssueSessionToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	svc := newTestTokenService(t, nil)

	for _, tok := range []string{"", "garbage", "a.b.c", "header.payload"} {
		_, err := svc.VerifySessionToken(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := newTestTokenService(t, nil)

	// Mint a correctly-signed token that expired an hour ago.
	claims := SessionClaims{
		Email: "nia@transera.io",
		Role:  "consultant",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    "transera-crm",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsAlgorithmConfusion(t *testing.T) {
	svc := newTestTokenService(t, nil)

	// An unsigned token must never verify, even with a syntactically valid
	// "none" header.
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    "transera-crm",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.VerifySessionToken(token)
	assert.Error(t, err)
}

func TestKeyRotationAcceptsPreviousSecret(t *testing.T) {
	oldSvc := newTestTokenService(t, nil)

	token, err := oldSvc.IssueSessionToken(testUser())
	require.NoError(t, err)

	rotated, err := NewTokenService(TokenServiceConfig{
		Secret:         "the-brand-new-secret-after-rotation",
		PreviousSecret: testSecret,
	}, nil)
	require.NoError(t, err)

	// Old-key tokens still verify during the rotation window
	claims, err := rotated.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID())

	// New tokens are signed with the new key only
	fresh, err := rotated.IssueSessionToken(testUser())
	require.NoError(t, err)
	_, err = oldSvc.VerifySessionToken(fresh)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	lookup := &fakeUserLookup{users: map[int64]*database.User{7: testUser()}}
	svc := newTestTokenService(t, lookup)

	refresh, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)

	session, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)

	claims, err := svc.VerifySessionToken(session)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID())
	assert.Equal(t, "consultant", claims.Role)
	assert.Empty(t, claims.TokenType)
}

func TestRefreshRejectsSessionToken(t *testing.T) {
	lookup := &fakeUserLookup{users: map[int64]*database.User{7: testUser()}}
	svc := newTestTokenService(t, lookup)

	session, err := svc.IssueSessionToken(testUser())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), session)
	assert.ErrorIs(t, err, ErrNotRefreshToken)
}

func TestRefreshRederivesRoleFromLiveRecord(t *testing.T) {
	user := testUser()
	lookup := &fakeUserLookup{users: map[int64]*database.User{7: user}}
	svc := newTestTokenService(t, lookup)

	refresh, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)

	// The user was promoted after the refresh token was issued; the next
	// session token must carry the new role.
	user.Role = "manager"
	user.Permissions = `["*"]`

	session, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)

	claims, err := svc.VerifySessionToken(session)
	require.NoError(t, err)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, []string{"*"}, claims.Permissions)
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	user := testUser()
	lookup := &fakeUserLookup{users: map[int64]*database.User{7: user}}
	svc := newTestTokenService(t, lookup)

	refresh, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)

	user.IsActive = false

	_, err = svc.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshRequiresUserLookup(t *testing.T) {
	svc := newTestTokenService(t, nil)

	refresh, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrUserLookupRequired)
}

func TestSessionClaimsUserID(t *testing.T) {
	claims := &SessionClaims{}
	assert.Equal(t, int64(0), claims.UserID())

	claims.Subject = "not-a-number"
	assert.Equal(t, int64(0), claims.UserID())

	claims.Subject = strconv.FormatInt(42, 10)
	assert.Equal(t, int64(42), claims.UserID())
}

func TestPermissionCodec(t *testing.T) {
	assert.Nil(t, DecodePermissions(""))
	assert.Nil(t, DecodePermissions("{corrupt"))
	assert.Equal(t, []string{"a", "b"}, DecodePermissions(`["a","b"]`))

	assert.Equal(t, "[]", EncodePermissions(nil))
	assert.Equal(t, `["a"]`, EncodePermissions([]string{"a"}))
}
