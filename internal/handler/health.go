package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	redisClient redis.Cmdable
}

// NewHealthHandler takes the session Redis client, or nil when sessions
// live in cookies.
func NewHealthHandler(redisClient redis.Cmdable) *HealthHandler {
	return &HealthHandler{redisClient: redisClient}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(c *gin.Context) {
	if h.redisClient == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "redis": "disabled"})
		return
	}
	if err := h.redisClient.Ping(c.Request.Context()).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "redis": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "redis": "connected"})
}
