package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Tesseract-Nexus/go-shared/cache"
	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "catalog-service"
	serviceVersion = "1.0.0"
)

// Pinger reports whether the backing stores are reachable
type Pinger interface {
	Ping(ctx context.Context) error
	CacheStats() *cache.CacheStats
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().UTC(),
	})
}

// ReadinessCheck godoc
// @Summary Readiness check
// @Description Pings the database and redis
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"service":   serviceName,
			"version":   serviceVersion,
			"timestamp": time.Now().UTC(),
			"error":     err.Error(),
		})
		return
	}

	checks := gin.H{"database": "connected"}
	if stats := h.store.CacheStats(); stats != nil {
		checks["cache"] = stats
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}
