package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fashion-Store/Aradaa/internal/notify"
	"github.com/Fashion-Store/Aradaa/internal/validation"
)

// RegisterContactRoutes registers POST /contact. It always succeeds; the
// message is forwarded in the background when a notifier is configured.
func RegisterContactRoutes(r gin.IRouter, cfg HandlerConfig) {
	r.POST("/contact", func(c *gin.Context) {
		var req validation.ContactRequest
		// unreadable bodies are accepted too
		_ = c.ShouldBindJSON(&req)

		if cfg.Notifier != nil && req.Message != "" {
			msg := notify.Contact{Name: req.Name, Email: req.Email, Subject: req.Subject, Message: req.Message}
			cfg.background(c.Request.Context(), "notify_contact", func(ctx context.Context) error {
				return cfg.Notifier.NotifyContact(ctx, msg)
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Thank you for your message! We'll get back to you soon.",
		})
	})
}
