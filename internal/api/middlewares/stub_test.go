package middlewares

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
	"github.com/NZUMAN2/transera-crm-sub001/internal/realtime"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/config"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/logger"
)

const stubSecret = "middleware-test-secret-0123456789abcdef"

// stubServices satisfies interfaces.Services with real auth components over
// in-memory state. Datastore surfaces the middleware never touches stay nil.
type stubServices struct {
	cfg    *config.Config
	log    *logger.Logger
	tokens *auth.TokenService
	csrf   *auth.CSRFGuard
}

func newStubServices(t *testing.T) *stubServices {
	t.Helper()

	tokens, err := auth.NewTokenService(auth.TokenServiceConfig{Secret: stubSecret}, nil)
	require.NoError(t, err)

	return &stubServices{
		cfg:    &config.Config{},
		log:    logger.NewNop(),
		tokens: tokens,
		csrf:   auth.NewCSRFGuard(auth.NewMemoryCSRFStore(), time.Hour),
	}
}

func (s *stubServices) GetLogger() *logger.Logger { return s.log }
func (s *stubServices) GetConfig() *config.Config { return s.cfg }

func (s *stubServices) AuthService() interfaces.AuthService             { return s.tokens }
func (s *stubServices) CredentialService() interfaces.CredentialService { return nil }
func (s *stubServices) CSRFGuard() *auth.CSRFGuard                      { return s.csrf }

func (s *stubServices) APILimiter() *auth.RateLimiter    { return nil }
func (s *stubServices) AuthLimiter() *auth.RateLimiter   { return nil }
func (s *stubServices) UploadLimiter() *auth.RateLimiter { return nil }

func (s *stubServices) Hub() *realtime.Hub { return nil }

func (s *stubServices) Users() interfaces.UserStore           { return nil }
func (s *stubServices) Candidates() interfaces.CandidateStore { return nil }
func (s *stubServices) Jobs() interfaces.JobStore             { return nil }
func (s *stubServices) Clients() interfaces.ClientStore       { return nil }
func (s *stubServices) Activity() interfaces.ActivityStore    { return nil }
func (s *stubServices) Uploads() interfaces.UploadStore       { return nil }

func (s *stubServices) IsHealthy() bool { return true }

// issueToken mints a valid session token for the given role
func (s *stubServices) issueToken(t *testing.T, role string) string {
	t.Helper()
	token, err := s.tokens.IssueSessionToken(&database.User{
		ID:       7,
		Email:    "nia@transera.io",
		Name:     "Nia Adeyemi",
		Role:     role,
		IsActive: true,
	})
	require.NoError(t, err)
	return token
}

var _ interfaces.Services = (*stubServices)(nil)
