package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hirehub/pkg/cache"
	"hirehub/pkg/logger"
)

type CacheHandler struct {
	cache         cache.Cache
	warmUpManager *cache.WarmUpManager
	logger        logger.Logger
}

type CacheInvalidateRequest struct {
	Keys  []string `json:"keys,omitempty"`
	JobID *int64   `json:"jobId,omitempty"`
}

func NewCacheHandler(cache cache.Cache, warmUpManager *cache.WarmUpManager, logger logger.Logger) *CacheHandler {
	return &CacheHandler{
		cache:         cache,
		warmUpManager: warmUpManager,
		logger:        logger,
	}
}

func (h *CacheHandler) WarmUp(c *gin.Context) {
	if err := h.warmUpManager.WarmUpJobs(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":       "Cache warmed up",
		"timestamp": time.Now(),
	})
}

// Invalidate drops the given keys, one job, or with an empty body every job
// entry.
func (h *CacheHandler) Invalidate(c *gin.Context) {
	var req CacheInvalidateRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	var err error

	switch {
	case len(req.Keys) > 0:
		err = h.cache.DeleteMultiple(ctx, req.Keys)
	case req.JobID != nil:
		// The owner is unknown here, so every owner listing goes too.
		err = h.cache.DeleteMultiple(ctx, []string{cache.JobCacheKey(*req.JobID), cache.JobListKey})
		if err == nil {
			err = h.cache.InvalidatePrefix(ctx, cache.JobPrefix+":owner")
		}
	default:
		err = h.cache.InvalidatePrefix(ctx, cache.JobPrefix)
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "Cache invalidation hatası", map[string]interface{}{"error": err.Error()})
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":       "Cache invalidated",
		"timestamp": time.Now(),
	})
}

func (h *CacheHandler) Health(c *gin.Context) {
	response := gin.H{"timestamp": time.Now()}

	if err := h.cache.Ping(c.Request.Context()); err != nil {
		response["status"] = "unhealthy"
		response["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	response["status"] = "healthy"
	c.JSON(http.StatusOK, response)
}
