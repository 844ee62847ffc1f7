package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

type AuditLogHandler struct {
	service domain.AuditLogService
	logger  logger.Logger
}

func NewAuditLogHandler(service domain.AuditLogService, logger logger.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AuditLogHandler) GetAllLogs(c *gin.Context) {
	pageStr := c.Query("page")
	pageSizeStr := c.Query("page_size")

	page := 1
	pageSize := 10

	var err error
	if pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			h.logger.Warn("Geçersiz sayfa numarası", map[string]interface{}{"page": pageStr})
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid page number"})
			return
		}
	}

	if pageSizeStr != "" {
		pageSize, err = strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 1 || pageSize > 100 {
			h.logger.Warn("Geçersiz sayfa boyutu", map[string]interface{}{"page_size": pageSizeStr})
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid page size, must be between 1 and 100"})
			return
		}
	}

	logs, err := h.service.GetAllLogs(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *AuditLogHandler) GetEntityLogs(c *gin.Context) {
	entityType := domain.EntityType(c.Param("entityType"))
	if !entityType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid entity type"})
		return
	}

	entityID, ok := paramID(c, "entityId")
	if !ok {
		return
	}

	logs, err := h.service.GetEntityLogs(c.Request.Context(), entityType, entityID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
