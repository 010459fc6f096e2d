package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/api/models"
	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
)

// RegisterUpload records file metadata and issues a storage key. The binary
// itself goes to external storage keyed by the returned value.
func RegisterUpload(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UploadRequest
		if !bindJSON(c, &req) {
			return
		}

		upload := &database.Upload{
			UserID:     c.GetInt64("user_id"),
			EntityType: req.EntityType,
			EntityID:   req.EntityID,
			FileName:   req.FileName,
			FileSize:   req.FileSize,
			MimeType:   req.MimeType,
			StorageKey: fmt.Sprintf("%s/%d/%s/%s", req.EntityType, req.EntityID,
				time.Now().UTC().Format("2006-01-02"), uuid.NewString()),
		}

		if err := services.Uploads().Create(c.Request.Context(), upload); err != nil {
			services.GetLogger().Error("upload record failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to record upload")
			return
		}

		recordActivity(c, services, "file_uploaded", req.EntityType, req.EntityID, req.FileName)

		respondCreated(c, upload)
	}
}

// ListUploads returns uploads attached to an entity
func ListUploads(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityType := c.Query("entity_type")
		switch entityType {
		case "candidate", "job", "client":
		default:
			respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest,
				"entity_type must be candidate, job or client")
			return
		}

		entityID, err := parseQueryID(c, "entity_id")
		if err != nil {
			respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest,
				"entity_id must be a positive integer")
			return
		}

		uploads, err := services.Uploads().ListByEntity(c.Request.Context(), entityType, entityID)
		if err != nil {
			services.GetLogger().Error("upload list failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to list uploads")
			return
		}

		respondOK(c, uploads)
	}
}
