package auth

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/logger"
)

type fakeUserStore struct {
	byEmail         map[string]*database.User
	lastLoginStamps []int64
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*database.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, userID int64) (*database.User, error) {
	for _, u := range f.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	f.lastLoginStamps = append(f.lastLoginStamps, userID)
	return nil
}

type fakeActivityRecorder struct {
	entries []*database.ActivityLog
}

func (f *fakeActivityRecorder) Record(_ context.Context, entry *database.ActivityLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func newTestCredentialStore(t *testing.T) (*CredentialStore, *fakeUserStore, *fakeActivityRecorder) {
	t.Helper()
	hasher := NewPasswordHasher(4)
	hash, err := hasher.Hash("s3cret-passw0rd")
	require.NoError(t, err)

	users := &fakeUserStore{byEmail: map[string]*database.User{
		"nia@transera.io": {
			ID:           7,
			Email:        "nia@transera.io",
			PasswordHash: hash,
			Role:         "consultant",
			IsActive:     true,
		},
	}}
	activity := &fakeActivityRecorder{}

	store := NewCredentialStore(users, activity, hasher, logger.NewNop())
	return store, users, activity
}

func TestAuthenticateSuccess(t *testing.T) {
	store, users, activity := newTestCredentialStore(t)

	user, err := store.Authenticate(context.Background(), "nia@transera.io", "s3cret-passw0rd", "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	// Success stamps last_login and records a login event with the caller's IP
	assert.Equal(t, []int64{7}, users.lastLoginStamps)
	require.Len(t, activity.entries, 1)
	assert.Equal(t, "login", activity.entries[0].Action)
	assert.Equal(t, "203.0.113.9", activity.entries[0].IPAddress)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store, users, activity := newTestCredentialStore(t)

	user, err := store.Authenticate(context.Background(), "nia@transera.io", "wrong", "203.0.113.9")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
	assert.Empty(t, users.lastLoginStamps)
	assert.Empty(t, activity.entries)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	store, _, _ := newTestCredentialStore(t)

	user, err := store.Authenticate(context.Background(), "nobody@transera.io", "s3cret-passw0rd", "203.0.113.9")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	store, _, _ := newTestCredentialStore(t)

	_, errUnknown := store.Authenticate(context.Background(), "nobody@transera.io", "whatever", "")
	_, errWrongPw := store.Authenticate(context.Background(), "nia@transera.io", "whatever", "")

	// Same sentinel for both factors; callers cannot probe which one failed
	assert.Equal(t, errUnknown, errWrongPw)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	store, _, _ := newTestCredentialStore(t)

	hash, err := store.HashPassword("new-password-123")
	require.NoError(t, err)
	assert.True(t, store.hasher.Check("new-password-123", hash))
}
