package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Fashion-Store/Aradaa/internal/session"
	"github.com/Fashion-Store/Aradaa/internal/validation"
)

// RegisterAuthRoutes registers the demo login and register endpoints. Any
// non-empty credentials are accepted.
func RegisterAuthRoutes(r gin.IRouter, cfg HandlerConfig) {
	v := validation.New()

	r.POST("/auth/login", func(c *gin.Context) {
		var req validation.LoginRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		email := strings.TrimSpace(req.Email)
		user := session.User{
			// stable per address so repeated logins yield the same id
			ID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(email))).String(),
			Name:  nameFromEmail(email),
			Email: email,
		}
		respondWithSession(c, cfg, user, "Login successful")
	})

	r.POST("/auth/register", func(c *gin.Context) {
		var req validation.RegisterRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		user := session.User{
			ID:    uuid.NewString(),
			Name:  strings.TrimSpace(req.Name),
			Email: strings.TrimSpace(req.Email),
		}
		respondWithSession(c, cfg, user, "Registration successful")
	})
}

func respondWithSession(c *gin.Context, cfg HandlerConfig, user session.User, message string) {
	token, err := cfg.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		cfg.Logger.ErrorContext(c.Request.Context(), "issue token", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "token_issue_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"user":    user,
		"token":   token,
	})
}

// nameFromEmail turns "ayesha.khan@x.com" into "Ayesha Khan".
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	for i, p := range parts {
		r := []rune(p)
		parts[i] = string(unicode.ToUpper(r[0])) + string(r[1:])
	}
	if len(parts) == 0 {
		return email
	}
	return strings.Join(parts, " ")
}
