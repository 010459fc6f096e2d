package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

// ListJobs returns jobs, optionally filtered by status
func ListJobs(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		status := c.Query("status")

		jobs, err := services.Jobs().List(c.Request.Context(), status, limit, offset)
		if err != nil {
			services.GetLogger().Error("job list failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to list jobs")
			return
		}

		respondOK(c, models.PaginatedResponse{
			Data: jobs,
			Pagination: models.PaginationInfo{
				CurrentPage: offset/limit + 1,
				PageSize:    limit,
				HasNext:     len(jobs) == limit,
			},
		})
	}
}

// CreateJob opens a new position against an existing client
func CreateJob(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateJobRequest
		if !bindJSON(c, &req) {
			return
		}

		// The referenced client must exist before the job can be opened.
		if _, err := services.Clients().GetByID(c.Request.Context(), req.ClientID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(c, http.StatusNotFound, models.ErrCodeClientNotFound,
					"Client not found")
				return
			}
			services.GetLogger().Error("client lookup failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to create job")
			return
		}

		job := &database.Job{
			ClientID:    req.ClientID,
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			SalaryMin:   req.SalaryMin,
			SalaryMax:   req.SalaryMax,
			Status:      "open",
			OwnerID:     c.GetInt64("user_id"),
		}

		if err := services.Jobs().Create(c.Request.Context(), job); err != nil {
			services.GetLogger().Error("job create failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to create job")
			return
		}

		recordActivity(c, services, "job_created", "job", job.ID, job.Title)

		respondCreated(c, job)
	}
}

// GetJob returns a single job by id
func GetJob(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		job, err := services.Jobs().GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(c, http.StatusNotFound, models.ErrCodeJobNotFound, "Job not found")
				return
			}
			services.GetLogger().Error("job fetch failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to fetch job")
			return
		}

		respondOK(c, job)
	}
}

// UpdateJob applies a partial update to a job
func UpdateJob(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		var req models.UpdateJobRequest
		if !bindJSON(c, &req) {
			return
		}

		job, err := services.Jobs().GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(c, http.StatusNotFound, models.ErrCodeJobNotFound, "Job not found")
				return
			}
			services.GetLogger().Error("job fetch failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to fetch job")
			return
		}

		if req.Title != "" {
			job.Title = req.Title
		}
		if req.Description != "" {
			job.Description = req.Description
		}
		if req.Location != "" {
			job.Location = req.Location
		}
		if req.SalaryMin != 0 {
			job.SalaryMin = req.SalaryMin
		}
		if req.SalaryMax != 0 {
			job.SalaryMax = req.SalaryMax
		}
		if req.Status != "" {
			job.Status = req.Status
		}

		if err := services.Jobs().Update(c.Request.Context(), job); err != nil {
			services.GetLogger().Error("job update failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to update job")
			return
		}

		recordActivity(c, services, "job_updated", "job", job.ID, job.Status)

		respondOK(c, job)
	}
}

// DeleteJob removes a job record
func DeleteJob(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		if err := services.Jobs().Delete(c.Request.Context(), id); err != nil {
			services.GetLogger().Error("job delete failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to delete job")
			return
		}

		recordActivity(c, services, "job_deleted", "job", id, "")

		respondOK(c, gin.H{"deleted": id})
	}
}
