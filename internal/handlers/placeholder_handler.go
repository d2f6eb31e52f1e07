package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPlaceholderSide = 2000

// RegisterPlaceholderRoutes registers GET /placeholder/:w/:h, a grey SVG of the
// requested size used by the sample catalog images.
func RegisterPlaceholderRoutes(r gin.IRouter, cfg HandlerConfig) {
	r.GET("/placeholder/:w/:h", func(c *gin.Context) {
		w, errW := strconv.Atoi(c.Param("w"))
		h, errH := strconv.Atoi(c.Param("h"))
		if errW != nil || errH != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be integers"})
			return
		}
		w, h = clampSide(w), clampSide(h)

		c.Header("Cache-Control", "public, max-age=86400")
		c.Data(http.StatusOK, "image/svg+xml", placeholderSVG(w, h))
	})
}

func clampSide(n int) int {
	return min(max(n, 1), maxPlaceholderSide)
}

func placeholderSVG(w, h int) []byte {
	fontSize := max(min(w, h)/10, 8)
	return fmt.Appendf(nil, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="#f3f4f6"/>`+
		`<text x="50%%" y="50%%" dominant-baseline="middle" text-anchor="middle" font-family="sans-serif" font-size="%d" fill="#9ca3af">%d×%d</text>`+
		`</svg>`, w, h, w, h, fontSize, w, h)
}
