package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// fallback handles every unmatched route. Unknown API paths get a JSON 404.
// In production other paths serve the built frontend from PublicDir, falling
// back to index.html so client-side routes resolve.
func fallback(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}

		if !cfg.Production {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Route not found",
				"message": "This route should be handled by the frontend in development mode",
			})
			return
		}

		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
			return
		}

		if name, ok := publicFile(cfg.PublicDir, path); ok {
			c.File(name)
			return
		}
		index := filepath.Join(cfg.PublicDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
			return
		}
		c.File(index)
	}
}

// publicFile maps a URL path to a regular file under dir.
func publicFile(dir, urlPath string) (string, bool) {
	clean := filepath.FromSlash(filepath.Clean("/" + urlPath))
	if clean == string(filepath.Separator) {
		return "", false
	}
	name := filepath.Join(dir, clean)
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return name, true
}
