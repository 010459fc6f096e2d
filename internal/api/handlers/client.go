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

// ListClients returns hiring companies owned by the agency
func ListClients(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)

		clients, err := services.Clients().List(c.Request.Context(), limit, offset)
		if err != nil {
			services.GetLogger().Error("client list failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to list clients")
			return
		}

		respondOK(c, models.PaginatedResponse{
			Data: clients,
			Pagination: models.PaginationInfo{
				CurrentPage: offset/limit + 1,
				PageSize:    limit,
				HasNext:     len(clients) == limit,
			},
		})
	}
}

// CreateClient registers a new hiring company
func CreateClient(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateClientRequest
		if !bindJSON(c, &req) {
			return
		}

		client := &database.Client{
			Name:         req.Name,
			Industry:     req.Industry,
			ContactName:  req.ContactName,
			ContactEmail: req.ContactEmail,
			ContactPhone: req.ContactPhone,
			OwnerID:      c.GetInt64("user_id"),
			Notes:        req.Notes,
		}

		if err := services.Clients().Create(c.Request.Context(), client); err != nil {
			services.GetLogger().Error("client create failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to create client")
			return
		}

		recordActivity(c, services, "client_created", "client", client.ID, client.Name)

		respondCreated(c, client)
	}
}

// GetClient returns a single client by id
func GetClient(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		client, err := services.Clients().GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(c, http.StatusNotFound, models.ErrCodeClientNotFound,
					"Client not found")
				return
			}
			services.GetLogger().Error("client fetch failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to fetch client")
			return
		}

		respondOK(c, client)
	}
}

// UpdateClient applies a partial update to a client
func UpdateClient(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		var req models.UpdateClientRequest
		if !bindJSON(c, &req) {
			return
		}

		client, err := services.Clients().GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(c, http.StatusNotFound, models.ErrCodeClientNotFound,
					"Client not found")
				return
			}
			services.GetLogger().Error("client fetch failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to fetch client")
			return
		}

		if req.Name != "" {
			client.Name = req.Name
		}
		if req.Industry != "" {
			client.Industry = req.Industry
		}
		if req.ContactName != "" {
			client.ContactName = req.ContactName
		}
		if req.ContactEmail != "" {
			client.ContactEmail = req.ContactEmail
		}
		if req.ContactPhone != "" {
			client.ContactPhone = req.ContactPhone
		}
		if req.Notes != "" {
			client.Notes = req.Notes
		}

		if err := services.Clients().Update(c.Request.Context(), client); err != nil {
			services.GetLogger().Error("client update failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to update client")
			return
		}

		recordActivity(c, services, "client_updated", "client", client.ID, client.Name)

		respondOK(c, client)
	}
}

// DeleteClient removes a client record
func DeleteClient(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		if err := services.Clients().Delete(c.Request.Context(), id); err != nil {
			services.GetLogger().Error("client delete failed: %v", err)
			respondError(c, http.StatusInternalServerError, models.ErrCodeInternalError,
				"Unable to delete client")
			return
		}

		recordActivity(c, services, "client_deleted", "client", id, "")

		respondOK(c, gin.H{"deleted": id})
	}
}
