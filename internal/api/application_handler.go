package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

type ApplicationHandler struct {
	service domain.ApplicationService
	logger  logger.Logger
}

type applyRequest struct {
	UserID *int64 `json:"userId"`
}

type statusRequest struct {
	Status domain.ApplicationStatus `json:"status" binding:"required"`
}

func NewApplicationHandler(service domain.ApplicationService, logger logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		logger:  logger,
	}
}

// Apply records an application for the caller. Admins may apply on behalf
// of another user through the optional userId body field.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, ok := paramID(c, "jobId")
	if !ok {
		return
	}

	var req applyRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	userID := principal(c).UserID
	if req.UserID != nil {
		if !allowSelfOr(c, *req.UserID, domain.RoleAdmin) {
			return
		}
		userID = *req.UserID
	}

	app, err := h.service.Apply(c.Request.Context(), jobID, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Application created successfully", "application": app})
}

// ListApplications returns every application to staff and only their own
// to applicants.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	p := principal(c)

	var (
		views []*domain.ApplicationView
		err   error
	)
	if p.Is(domain.RoleAdmin, domain.RoleRecruiter) {
		views, err = h.service.ListApplications(c.Request.Context())
	} else {
		views, err = h.service.ListUserApplications(c.Request.Context(), p.UserID)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ApplicationHandler) ListAllApplications(c *gin.Context) {
	views, err := h.service.ListApplications(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ApplicationHandler) ListUserApplications(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok || !allowSelfOr(c, userID, domain.RoleAdmin, domain.RoleRecruiter) {
		return
	}

	views, err := h.service.ListUserApplications(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.service.GetApplication(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Application status updated successfully", "application": app})
}

// DeleteApplication lets applicants withdraw their own applications.
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.service.GetApplication(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !allowSelfOr(c, view.UserID, domain.RoleAdmin) {
		return
	}

	if err := h.service.DeleteApplication(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Application deleted successfully"})
}
