package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
)

// CSRFProtect verifies the anti-forgery token on state-changing requests.
// The candidate token travels in the X-CSRF-Token header and is checked
// against the record keyed by the authenticated subject id. Runs after the
// gate, so the identity in context is already verified.
func CSRFProtect(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		userID := c.GetInt64("user_id")
		if userID == 0 {
			c.Next()
			return
		}

		candidate := c.GetHeader("X-CSRF-Token")
		sessionID := strconv.FormatInt(userID, 10)

		if !services.CSRFGuard().Verify(c.Request.Context(), sessionID, candidate) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeCSRFFailure,
					Message: "Invalid or missing CSRF token",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		c.Next()
	}
}
