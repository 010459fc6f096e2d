package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

// ListCandidates returns candidates, optionally filtered by status
func ListCandidates(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		status := c.Query("status")

		candidates, err := services.Candidates().List(c.Request.Context(), status, limit, offset)
		if err != nil {
			services.GetLogger().Error("candidate list failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to list candidates")
			return
		}

		respondOK(c, models.PaginatedResponse{
			Data: candidates,
			Pagination: models.PaginationInfo{
				CurrentPage: offset/limit + 1,
				PageSize:    limit,
				HasNext:     len(candidates) == limit,
			},
		})
	}
}

// CreateCandidate registers a new candidate owned by the caller
func CreateCandidate(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateCandidateRequest
		if !bindJSON(c, &req) {
			return
		}

		candidate := &database.Candidate{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Title:     req.Title,
			Skills:    req.Skills,
			Status:    "new",
			OwnerID:   c.GetInt64("user_id"),
			Notes:     req.Notes,
		}

		if err := services.Candidates().Create(c.Request.Context(), candidate); err != nil {
			services.GetLogger().Error("candidate create failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to create candidate")
			return
		}

		recordActivity(c, services, "candidate_created", "candidate", candidate.ID,
			fmt.Sprintf("%s %s", candidate.FirstName, candidate.LastName))

		respondCreated(c, candidate)
	}
}

// GetCandidate returns a single candidate by id
func GetCandidate(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		candidate, err := services.Candidates().GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(c, http.StatusNotFound, models.ErrCodeCandidateNotFound,
					"Candidate not found")
				return
			}
			services.GetLogger().Error("candidate fetch failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to fetch candidate")
			return
		}

		respondOK(c, candidate)
	}
}

// UpdateCandidate applies a partial update to a candidate
func UpdateCandidate(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		var req models.UpdateCandidateRequest
		if !bindJSON(c, &req) {
			return
		}

		candidate, err := services.Candidates().GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(c, http.StatusNotFound, models.ErrCodeCandidateNotFound,
					"Candidate not found")
				return
			}
			services.GetLogger().Error("candidate fetch failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to fetch candidate")
			return
		}

		applyCandidateUpdate(candidate, &req)

		if err := services.Candidates().Update(c.Request.Context(), candidate); err != nil {
			services.GetLogger().Error("candidate update failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to update candidate")
			return
		}

		recordActivity(c, services, "candidate_updated", "candidate", candidate.ID, "")

		respondOK(c, candidate)
	}
}

// DeleteCandidate removes a candidate record
func DeleteCandidate(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		if err := services.Candidates().Delete(c.Request.Context(), id); err != nil {
			services.GetLogger().Error("candidate delete failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to delete candidate")
			return
		}

		recordActivity(c, services, "candidate_deleted", "candidate", id, "")

		respondOK(c, gin.H{"deleted": id})
	}
}

func applyCandidateUpdate(candidate *database.Candidate, req *models.UpdateCandidateRequest) {
	if req.FirstName != "" {
		candidate.FirstName = req.FirstName
	}
	if req.LastName != "" {
		candidate.LastName = req.LastName
	}
	if req.Email != "" {
		candidate.Email = req.Email
	}
	if req.Phone != "" {
		candidate.Phone = req.Phone
	}
	if req.Title != "" {
		candidate.Title = req.Title
	}
	if req.Skills != "" {
		candidate.Skills = req.Skills
	}
	if req.Status != "" {
		candidate.Status = req.Status
	}
	if req.Notes != "" {
		candidate.Notes = req.Notes
	}
}
