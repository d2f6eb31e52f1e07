package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// RegisterHealthRoutes registers GET /health.
func RegisterHealthRoutes(r gin.IRouter, cfg HandlerConfig) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":     "Adaraa Fashion Store API is running!",
			"timestamp":   cfg.Now().UTC().Format(isoMillis),
			"environment": cfg.Env,
		})
	})
}
