package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
)

// ListActivity returns recent activity log entries. Managers and admins can
// filter by user; everyone else sees only their own entries.
func ListActivity(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)

		userID := c.GetInt64("user_id")
		if raw := c.Query("user_id"); raw != "" {
			requested, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest,
					"user_id must be numeric")
				return
			}
			if requested != userID && !managerOrAbove(c) {
				respondError(c, http.StatusForbidden, models.ErrCodeForbidden,
					"Cannot view another user's activity")
				return
			}
			userID = requested
		} else if managerOrAbove(c) {
			// No filter: managers see the whole feed.
			userID = 0
		}

		entries, err := services.Activity().List(c.Request.Context(), userID, limit, offset)
		if err != nil {
			services.GetLogger().Error("activity list failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to list activity")
			return
		}

		respondOK(c, models.PaginatedResponse{
			Data: entries,
			Pagination: models.PaginationInfo{
				CurrentPage: offset/limit + 1,
				PageSize:    limit,
				HasNext:     len(entries) == limit,
			},
		})
	}
}
