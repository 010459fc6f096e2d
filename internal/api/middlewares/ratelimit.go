package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
)

// RateLimit applies the given limiter instance, keyed by client IP. Each
// endpoint class gets its own limiter; callers must pass the one matching
// the routes being protected.
func RateLimit(limiter *auth.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Check(c.ClientIP())

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeRateLimitExceeded,
					Message: "Rate limit exceeded. Please try again later.",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		c.Next()
	}
}
