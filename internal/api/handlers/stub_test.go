package handlers

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
	"github.com/NZUMAN2/transera-crm-sub001/internal/realtime"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/config"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonBody(body string) io.Reader {
	return strings.NewReader(body)
}

// memUserStore is an in-memory identity store shared by the credential and
// token services under test.
type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*database.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{nextID: 1, users: map[int64]*database.User{}}
}

func (m *memUserStore) Create(_ context.Context, user *database.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*database.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) && u.IsActive {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUserStore) GetByID(_ context.Context, userID int64) (*database.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *memUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		now := time.Now()
		u.LastLogin = &now
	}
	return nil
}

func (m *memUserStore) UpdateRole(_ context.Context, userID int64, role, permissions string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		u.Role = role
		u.Permissions = permissions
	}
	return nil
}

func (m *memUserStore) List(_ context.Context, limit, offset int) ([]database.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]database.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

type memCandidateStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*database.Candidate
}

func newMemCandidateStore() *memCandidateStore {
	return &memCandidateStore{nextID: 1, items: map[int64]*database.Candidate{}}
}

func (m *memCandidateStore) Create(_ context.Context, c *database.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.items[c.ID] = c
	return nil
}

func (m *memCandidateStore) GetByID(_ context.Context, id int64) (*database.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (m *memCandidateStore) Update(_ context.Context, c *database.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[c.ID]; !ok {
		return sql.ErrNoRows
	}
	c.UpdatedAt = time.Now()
	m.items[c.ID] = c
	return nil
}

func (m *memCandidateStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memCandidateStore) List(_ context.Context, status string, limit, offset int) ([]database.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []database.Candidate{}
	for _, c := range m.items {
		if status == "" || c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

type memActivityStore struct {
	mu      sync.Mutex
	entries []*database.ActivityLog
}

func (m *memActivityStore) Record(_ context.Context, entry *database.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = int64(len(m.entries) + 1)
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memActivityStore) List(_ context.Context, userID int64, limit, offset int) ([]database.ActivityLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []database.ActivityLog{}
	for _, e := range m.entries {
		if userID == 0 || e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// stubServices wires real auth components over in-memory stores
type stubServices struct {
	cfg         *config.Config
	log         *logger.Logger
	tokens      *auth.TokenService
	credentials *auth.CredentialStore
	csrf        *auth.CSRFGuard

	userStore      *memUserStore
	candidateStore *memCandidateStore
	activityStore  *memActivityStore
}

func newStubServices(t *testing.T) *stubServices {
	t.Helper()

	users := newMemUserStore()
	activity := &memActivityStore{}

	tokens, err := auth.NewTokenService(auth.TokenServiceConfig{
		Secret: "handler-test-secret-0123456789abcdef",
	}, users)
	require.NoError(t, err)

	hasher := auth.NewPasswordHasher(4)

	return &stubServices{
		cfg:            &config.Config{},
		log:            logger.NewNop(),
		tokens:         tokens,
		credentials:    auth.NewCredentialStore(users, activity, hasher, logger.NewNop()),
		csrf:           auth.NewCSRFGuard(auth.NewMemoryCSRFStore(), time.Hour),
		userStore:      users,
		candidateStore: newMemCandidateStore(),
		activityStore:  activity,
	}
}

// seedUser creates an active user with the given role and password
func (s *stubServices) seedUser(t *testing.T, email, password, role string) *database.User {
	t.Helper()
	hash, err := s.credentials.HashPassword(password)
	require.NoError(t, err)

	user := &database.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		Role:         role,
		Permissions:  `["*"]`,
		IsActive:     true,
	}
	require.NoError(t, s.userStore.Create(context.Background(), user))
	return user
}

func (s *stubServices) GetLogger() *logger.Logger { return s.log }
func (s *stubServices) GetConfig() *config.Config { return s.cfg }

func (s *stubServices) AuthService() interfaces.AuthService             { return s.tokens }
func (s *stubServices) CredentialService() interfaces.CredentialService { return s.credentials }
func (s *stubServices) CSRFGuard() *auth.CSRFGuard                      { return s.csrf }

func (s *stubServices) APILimiter() *auth.RateLimiter    { return nil }
func (s *stubServices) AuthLimiter() *auth.RateLimiter   { return nil }
func (s *stubServices) UploadLimiter() *auth.RateLimiter { return nil }

func (s *stubServices) Hub() *realtime.Hub { return nil }

func (s *stubServices) Users() interfaces.UserStore           { return s.userStore }
func (s *stubServices) Candidates() interfaces.CandidateStore { return s.candidateStore }
func (s *stubServices) Jobs() interfaces.JobStore             { return nil }
func (s *stubServices) Clients() interfaces.ClientStore       { return nil }
func (s *stubServices) Activity() interfaces.ActivityStore    { return s.activityStore }
func (s *stubServices) Uploads() interfaces.UploadStore       { return nil }

func (s *stubServices) IsHealthy() bool { return true }

var _ interfaces.Services = (*stubServices)(nil)
