package middlewares

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// publicPaths are exact-match paths that bypass authentication
var publicPaths = map[string]struct{}{
	"/":                 {},
	"/login":            {},
	"/health":           {},
	"/ping":             {},
	"/favicon.ico":      {},
	"/api/auth/login":   {},
	"/api/auth/refresh": {},
	"/api/auth/logout":  {},
}

// publicPrefixes are path prefixes that bypass authentication
var publicPrefixes = []string{
	"/static/",
	"/ws/", // websocket routes carry the token in the query and verify themselves
}

// Gate is the single authorization checkpoint. It runs on every request
// before any handler: classifies the route, enforces token presence and
// validity, and applies role restrictions. Classification always uses the
// normalized path so aliasing like /api/../dashboard cannot slip past it.
func Gate(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		normalized := normalizePath(c.Request.URL.Path)

		if isPublicPath(normalized) {
			c.Next()
			return
		}

		isAPI := strings.HasPrefix(normalized, "/api/")

		token, err := c.Cookie(auth.SessionCookieName)
		if err != nil || token == "" {
			if isAPI {
				unauthorized(c)
			} else {
				c.Redirect(http.StatusFound, loginPath)
				c.Abort()
			}
			return
		}

		claims, err := services.AuthService().VerifySessionToken(token)
		if err != nil {
			if isAPI {
				unauthorized(c)
			} else {
				// Tampered or expired token on a page route: force logout
				clearSessionCookies(c, services)
				c.Redirect(http.StatusFound, loginPath)
				c.Abort()
			}
			return
		}

		role := auth.ParseRole(claims.Role)
		if isAdminPath(normalized) && !role.IsAdmin() {
			if isAPI {
				forbidden(c)
			} else {
				c.Redirect(http.StatusFound, dashboardPath)
				c.Abort()
			}
			return
		}

		// Attach verified identity for downstream handlers
		c.Set("user_id", claims.UserID())
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)
		c.Set("user_permissions", claims.Permissions)
		c.Set("session_claims", claims)

		c.Next()
	}
}

// AdminRequired enforces the admin role on routes the path classifier does
// not already cover. Exact-role comparison is intentional here.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := auth.ParseRole(c.GetString("user_role"))
		if !role.IsAdmin() {
			forbidden(c)
			return
		}
		c.Next()
	}
}

// RoleRequired enforces a minimum role by ordinal comparison
func RoleRequired(minimum auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := auth.ParseRole(c.GetString("user_role"))
		if !role.AtLeast(minimum) {
			forbidden(c)
			return
		}
		c.Next()
	}
}

// PermissionRequired enforces a specific permission from the token claims
func PermissionRequired(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		perms, _ := c.Get("user_permissions")
		userPerms, _ := perms.([]string)

		if !auth.HasPermission(userPerms, permission) {
			forbidden(c)
			return
		}
		c.Next()
	}
}

// WSAuthRequired authenticates websocket upgrade requests via a query-param
// token, since browsers cannot set headers on websocket handshakes.
func WSAuthRequired(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			// Fall back to the session cookie for same-origin clients
			token, _ = c.Cookie(auth.SessionCookieName)
		}
		if token == "" {
			unauthorized(c)
			return
		}

		claims, err := services.AuthService().VerifySessionToken(token)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set("user_id", claims.UserID())
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	cleaned := path.Clean(p)
	// path.Clean strips the trailing slash; keep prefix checks working
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned
}

func isPublicPath(normalized string) bool {
	if _, ok := publicPaths[strings.TrimSuffix(normalized, "/")]; ok {
		return true
	}
	if normalized == "/" {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	return false
}

func isAdminPath(normalized string) bool {
	return strings.HasPrefix(normalized, "/api/admin/") ||
		strings.TrimSuffix(normalized, "/") == "/api/admin" ||
		strings.HasPrefix(normalized, "/admin/") ||
		strings.TrimSuffix(normalized, "/") == "/admin"
}

func clearSessionCookies(c *gin.Context, services interfaces.Services) {
	cfg := services.GetConfig()
	secure := cfg.Security.SecureCookies
	domain := cfg.Security.CookieDomain

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, "", -1, "/", domain, secure, true)
	c.SetCookie(auth.RefreshCookieName, "", -1, "/", domain, secure, true)
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.BaseResponse{
		Success: false,
		Error: &models.ErrorInfo{
			Code:    models.ErrCodeUnauthorized,
			Message: "Authentication required",
		},
		Timestamp: time.Now().Unix(),
	})
}

func forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, models.BaseResponse{
		Success: false,
		Error: &models.ErrorInfo{
			Code:    models.ErrCodeForbidden,
			Message: "Insufficient privileges",
		},
		Timestamp: time.Now().Unix(),
	})
}
