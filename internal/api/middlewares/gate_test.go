package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGateRouter(services *stubServices) *gin.Engine {
	router := gin.New()
	router.Use(Gate(services))

	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	router.GET("/login", ok)
	router.GET("/health", ok)
	router.GET("/dashboard", ok)
	router.GET("/api/candidates", ok)
	router.POST("/api/auth/login", ok)
	router.GET("/api/admin/users", ok)
	router.GET("/admin/settings", ok)

	return router
}

func doGet(router *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: auth.SessionCookieName, Value: token}
}

func TestGateAllowsPublicPaths(t *testing.T) {
	router := newGateRouter(newStubServices(t))

	for _, path := range []string{"/login", "/health"} {
		w := doGet(router, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateRejectsAPIWithoutToken(t *testing.T) {
	router := newGateRouter(newStubServices(t))

	w := doGet(router, "/api/candidates")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp models.BaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.ErrCodeUnauthorized, resp.Error.Code)
}

func TestGateRedirectsPageWithoutToken(t *testing.T) {
	router := newGateRouter(newStubServices(t))

	w := doGet(router, "/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestGateRejectsTamperedToken(t *testing.T) {
	services := newStubServices(t)
	router := newGateRouter(services)

	w := doGet(router, "/api/candidates", sessionCookie("tampered.token.value"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateClearsCookiesOnBadPageToken(t *testing.T) {
	services := newStubServices(t)
	router := newGateRouter(services)

	w := doGet(router, "/dashboard", sessionCookie("tampered.token.value"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// Both auth cookies are expired so the browser stops resending junk
	cleared := map[string]bool{}
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			cleared[ck.Name] = true
		}
	}
	assert.True(t, cleared[auth.SessionCookieName])
	assert.True(t, cleared[auth.RefreshCookieName])
}

func TestGateAcceptsValidToken(t *testing.T) {
	services := newStubServices(t)
	router := newGateRouter(services)

	token := services.issueToken(t, "consultant")
	w := doGet(router, "/api/candidates", sessionCookie(token))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(router, "/dashboard", sessionCookie(token))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateBlocksNonAdminFromAdminRoutes(t *testing.T) {
	services := newStubServices(t)
	router := newGateRouter(services)
	token := services.issueToken(t, "manager")

	// API admin route: forbidden JSON
	w := doGet(router, "/api/admin/users", sessionCookie(token))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Page admin route: redirect back to dashboard
	w = doGet(router, "/admin/settings", sessionCookie(token))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestGateAdmitsAdminToAdminRoutes(t *testing.T) {
	services := newStubServices(t)
	router := newGateRouter(services)
	token := services.issueToken(t, "admin")

	w := doGet(router, "/api/admin/users", sessionCookie(token))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateNormalizesPathAliases(t *testing.T) {
	services := newStubServices(t)
	router := newGateRouter(services)
	token := services.issueToken(t, "consultant")

	// Dot-segments cannot disguise an admin path as something else
	w := doGet(router, "/api/../api/admin/users", sessionCookie(token))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"":                        "/",
		"/":                       "/",
		"/api/candidates":         "/api/candidates",
		"/api//candidates":        "/api/candidates",
		"/api/../api/admin/users": "/api/admin/users",
		"/static/":                "/static/",
		"/api/candidates/":        "/api/candidates/",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizePath(in), "input %q", in)
	}
}

func TestRoleRequired(t *testing.T) {
	router := gin.New()
	router.GET("/managed",
		func(c *gin.Context) { c.Set("user_role", c.Query("role")); c.Next() },
		RoleRequired(auth.RoleManager),
		func(c *gin.Context) { c.String(http.StatusOK, "ok") },
	)

	w := doGet(router, "/managed?role=admin")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doGet(router, "/managed?role=manager")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doGet(router, "/managed?role=consultant")
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doGet(router, "/managed?role=unknown")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPermissionRequired(t *testing.T) {
	router := gin.New()
	router.GET("/perm",
		func(c *gin.Context) {
			if c.Query("grant") != "" {
				c.Set("user_permissions", []string{c.Query("grant")})
			}
			c.Next()
		},
		PermissionRequired("candidates:write"),
		func(c *gin.Context) { c.String(http.StatusOK, "ok") },
	)

	w := doGet(router, "/perm?grant=candidates:write")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doGet(router, "/perm?grant=*")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doGet(router, "/perm?grant=jobs:read")
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doGet(router, "/perm")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWSAuthRequired(t *testing.T) {
	services := newStubServices(t)
	router := gin.New()
	router.GET("/ws/activity", WSAuthRequired(services), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("user_id")})
	})

	token := services.issueToken(t, "viewer")

	// Token via query parameter
	w := doGet(router, "/ws/activity?token="+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)

	// Cookie fallback
	w = doGet(router, "/ws/activity", sessionCookie(token))
	assert.Equal(t, http.StatusOK, w.Code)

	// No credentials at all
	w = doGet(router, "/ws/activity")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	w = doGet(router, "/ws/activity?token=garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
