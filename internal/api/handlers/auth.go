package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
)

// Login authenticates an email/password pair, sets the session and refresh
// cookies, and returns the user profile along with the session token.
// Unknown email and wrong password produce byte-identical failures.
func Login(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := services.CredentialService().Authenticate(
			c.Request.Context(), req.Email, req.Password, c.ClientIP())
		if err != nil {
			respondError(c, http.StatusUnauthorized, models.ErrCodeInvalidCredentials,
				"Invalid email or password")
			return
		}

		sessionToken, err := services.AuthService().IssueSessionToken(user)
		if err != nil {
			services.GetLogger().Error("session token issuance failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to establish session")
			return
		}

		refreshToken, err := services.AuthService().IssueRefreshToken(user.ID)
		if err != nil {
			services.GetLogger().Error("refresh token issuance failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to establish session")
			return
		}

		setSessionCookies(c, services, sessionToken, refreshToken)

		c.JSON(http.StatusOK, models.AuthResponse{
			Success: true,
			Token:   sessionToken,
			User:    userToResponse(user),
		})
	}
}

// RefreshToken mints a new session token from the refresh cookie. Identity
// claims come from a live lookup, so role changes take effect here.
func RefreshToken(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie(auth.RefreshCookieName)
		if err != nil || refreshToken == "" {
			respondError(c, http.StatusUnauthorized, models.ErrCodeUnauthorized,
				"Refresh token required")
			return
		}

		sessionToken, err := services.AuthService().Refresh(c.Request.Context(), refreshToken)
		if err != nil {
			respondError(c, http.StatusUnauthorized, models.ErrCodeInvalidToken,
				"Invalid or expired refresh token")
			return
		}

		setSessionCookies(c, services, sessionToken, "")

		respondOK(c, gin.H{"token": sessionToken})
	}
}

// VerifySession reports whether the caller holds a valid session. The gate
// already verified the token, so the claims in context are authoritative.
func VerifySession(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsVal, ok := c.Get("session_claims")
		claims, _ := claimsVal.(*auth.SessionClaims)
		if !ok || claims == nil {
			c.JSON(http.StatusUnauthorized, models.VerifyResponse{Authenticated: false})
			return
		}

		c.JSON(http.StatusOK, models.VerifyResponse{
			Authenticated: true,
			User: &models.UserResponse{
				ID:          claims.UserID(),
				Email:       claims.Email,
				Name:        claims.Name,
				Role:        claims.Role,
				Permissions: claims.Permissions,
				IsActive:    true,
			},
		})
	}
}

// Logout clears all auth cookies. Always succeeds, even without a session.
func Logout(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		clearAuthCookies(c, services)
		respondOK(c, gin.H{"message": "Logged out"})
	}
}

// CSRFToken issues a fresh anti-forgery token for the authenticated session
// and mirrors it into the csrf cookie.
func CSRFToken(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			respondError(c, http.StatusUnauthorized, models.ErrCodeUnauthorized,
				"Authentication required")
			return
		}

		sessionID := strconv.FormatInt(userID, 10)
		token, err := services.CSRFGuard().Generate(c.Request.Context(), sessionID)
		if err != nil {
			services.GetLogger().Error("csrf generation failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to issue CSRF token")
			return
		}

		cfg := services.GetConfig()
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(auth.CSRFCookieName, token, auth.CSRFCookieMaxAge, "/",
			cfg.Security.CookieDomain, cfg.Security.SecureCookies, true)

		respondOK(c, models.CSRFResponse{Token: token})
	}
}
