package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hirehub/pkg/cache"
	"hirehub/pkg/logger"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	db     *sql.DB
	cache  cache.Cache
	logger logger.Logger
}

type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Services  map[string]interface{} `json:"services"`
	Version   string                 `json:"version"`
}

// NewHealthHandler accepts a nil cache when redis is disabled.
func NewHealthHandler(db *sql.DB, cache cache.Cache, logger logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	services := map[string]interface{}{
		"database": h.checkDatabaseHealth(ctx),
	}
	if h.cache != nil {
		services["redis"] = h.checkRedisHealth(ctx)
	}

	status := "healthy"
	for _, service := range services {
		if serviceMap, ok := service.(map[string]interface{}); ok && serviceMap["status"] != "healthy" {
			status = "degraded"
			break
		}
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
		Version:   "1.0.0",
	})
}

func (h *HealthHandler) checkDatabaseHealth(ctx context.Context) map[string]interface{} {
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.WarnContext(ctx, "Veritabanı sağlık kontrolü başarısız", map[string]interface{}{"error": err.Error()})
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}

	stats := h.db.Stats()
	return map[string]interface{}{
		"status":           "healthy",
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"wait_duration":    stats.WaitDuration.String(),
	}
}

func (h *HealthHandler) checkRedisHealth(ctx context.Context) map[string]interface{} {
	if err := h.cache.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "Redis sağlık kontrolü başarısız", map[string]interface{}{"error": err.Error()})
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}
	return map[string]interface{}{
		"status": "healthy",
	}
}

func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now(),
	})
}

// ReadinessCheck only gates on the database; the job cache degrades to the
// database when redis is unavailable.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	response := gin.H{"timestamp": time.Now()}

	if err := h.db.PingContext(ctx); err != nil {
		response["status"] = "not_ready"
		response["issues"] = []string{"database: " + err.Error()}
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	response["status"] = "ready"
	c.JSON(http.StatusOK, response)
}
