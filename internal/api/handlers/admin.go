package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

// ListUsers returns all user accounts (admin only)
func ListUsers(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)

		users, err := services.Users().List(c.Request.Context(), limit, offset)
		if err != nil {
			services.GetLogger().Error("user list failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to list users")
			return
		}

		out := make([]*models.UserResponse, 0, len(users))
		for i := range users {
			out = append(out, userToResponse(&users[i]))
		}

		respondOK(c, models.PaginatedResponse{
			Data: out,
			Pagination: models.PaginationInfo{
				CurrentPage: offset/limit + 1,
				PageSize:    limit,
				HasNext:     len(out) == limit,
			},
		})
	}
}

// CreateUser provisions a new account with a hashed password (admin only)
func CreateUser(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateUserRequest
		if !bindJSON(c, &req) {
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		if existing, err := services.Users().FindByEmail(c.Request.Context(), email); err == nil && existing != nil {
			respondError(c, http.StatusConflict, models.ErrCodeUserExists,
				"A user with this email already exists")
			return
		} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
			services.GetLogger().Error("user lookup failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to create user")
			return
		}

		hash, err := services.CredentialService().HashPassword(req.Password)
		if err != nil {
			services.GetLogger().Error("password hash failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to create user")
			return
		}

		user := &database.User{
			Email:        email,
			PasswordHash: hash,
			Name:         req.Name,
			Role:         string(auth.ParseRole(req.Role)),
			Permissions:  auth.EncodePermissions(req.Permissions),
			IsActive:     true,
		}

		if err := services.Users().Create(c.Request.Context(), user); err != nil {
			services.GetLogger().Error("user create failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to create user")
			return
		}

		recordActivity(c, services, "user_created", "user", user.ID, user.Email)

		respondCreated(c, userToResponse(user))
	}
}

// UpdateUserRole changes a user's role and permission set (admin only).
// Existing sessions keep their old claims until refresh or re-login.
func UpdateUserRole(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		var req models.UpdateUserRoleRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := services.Users().GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "User not found")
				return
			}
			services.GetLogger().Error("user fetch failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to fetch user")
			return
		}

		// An admin demoting themselves would lock the tenant out of the
		// admin surface once their session expires.
		if user.ID == c.GetInt64("user_id") && auth.ParseRole(req.Role) != auth.RoleAdmin {
			respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest,
				"Cannot change your own admin role")
			return
		}

		role := string(auth.ParseRole(req.Role))
		perms := auth.EncodePermissions(req.Permissions)

		if err := services.Users().UpdateRole(c.Request.Context(), id, role, perms); err != nil {
			services.GetLogger().Error("role update failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to update role")
			return
		}

		user.Role = role
		user.Permissions = perms

		recordActivity(c, services, "role_changed", "user", user.ID, role)

		respondOK(c, userToResponse(user))
	}
}
