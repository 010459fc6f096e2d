package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.BaseResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Unix(),
		RequestID: c.GetString("request_id"),
	})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, models.BaseResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Unix(),
		RequestID: c.GetString("request_id"),
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.BaseResponse{
		Success: false,
		Error: &models.ErrorInfo{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().Unix(),
		RequestID: c.GetString("request_id"),
	})
}

// bindJSON binds the request body and, on validation failure, writes a 400
// response with per-field error details. Returns false if binding failed.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		info := &models.ErrorInfo{
			Code:    models.ErrCodeValidation,
			Message: "Request validation failed",
		}

		if verrs, ok := err.(validator.ValidationErrors); ok {
			info.Fields = make(map[string]string, len(verrs))
			for _, fe := range verrs {
				info.Fields[strings.ToLower(fe.Field())] = validationMessage(fe)
			}
		} else {
			info.Details = "malformed request body"
		}

		c.JSON(http.StatusBadRequest, models.BaseResponse{
			Success:   false,
			Error:     info,
			Timestamp: time.Now().Unix(),
			RequestID: c.GetString("request_id"),
		})
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "invalid value"
	}
}

// managerOrAbove reports whether the caller's role is manager or admin
func managerOrAbove(c *gin.Context) bool {
	return auth.ParseRole(c.GetString("user_role")).AtLeast(auth.RoleManager)
}

// pathID parses the :id route parameter
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid id parameter")
		return 0, false
	}
	return id, true
}

// parseQueryID parses a required positive integer query parameter
func parseQueryID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

// pagination reads limit/offset query params with sane bounds
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func userToResponse(user *database.User) *models.UserResponse {
	resp := &models.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		Permissions: auth.DecodePermissions(user.Permissions),
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt.Unix(),
	}
	if user.LastLogin != nil {
		ts := user.LastLogin.Unix()
		resp.LastLogin = &ts
	}
	return resp
}

// setSessionCookies attaches the session and refresh cookies per the
// configured security flags.
func setSessionCookies(c *gin.Context, services interfaces.Services, sessionToken, refreshToken string) {
	cfg := services.GetConfig()
	secure := cfg.Security.SecureCookies
	domain := cfg.Security.CookieDomain

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, sessionToken, auth.SessionCookieMaxAge, "/", domain, secure, true)
	if refreshToken != "" {
		c.SetCookie(auth.RefreshCookieName, refreshToken, auth.RefreshCookieMaxAge, "/", domain, secure, true)
	}
}

// clearAuthCookies removes session, refresh and CSRF cookies
func clearAuthCookies(c *gin.Context, services interfaces.Services) {
	cfg := services.GetConfig()
	secure := cfg.Security.SecureCookies
	domain := cfg.Security.CookieDomain

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, "", -1, "/", domain, secure, true)
	c.SetCookie(auth.RefreshCookieName, "", -1, "/", domain, secure, true)
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CSRFCookieName, "", -1, "/", domain, secure, true)
}

// recordActivity writes an activity entry and publishes it to the realtime
// feed. Failures are logged, never surfaced to the client.
func recordActivity(c *gin.Context, services interfaces.Services, action, entityType string, entityID int64, details string) {
	entry := &database.ActivityLog{
		UserID:     c.GetInt64("user_id"),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  c.ClientIP(),
	}

	if err := services.Activity().Record(c.Request.Context(), entry); err != nil {
		services.GetLogger().Warning("failed to record activity %s: %v", action, err)
		return
	}

	if hub := services.Hub(); hub != nil {
		hub.Publish(action, models.ActivityResponse{
			ID:         entry.ID,
			UserID:     entry.UserID,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Details:    entry.Details,
			Timestamp:  time.Now().Unix(),
		})
	}
}
