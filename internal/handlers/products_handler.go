package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fashion-Store/Aradaa/internal/catalog"
)

// RegisterProductRoutes registers the catalog listing and detail routes.
func RegisterProductRoutes(r gin.IRouter, cfg HandlerConfig) {
	r.GET("/products", func(c *gin.Context) {
		products := catalog.Query(cfg.Products, catalog.Params{
			Category: c.Query("category"),
			Search:   c.Query("search"),
			SortBy:   c.Query("sortBy"),
		})
		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"total":    len(products),
		})
	})

	r.GET("/products/:id", func(c *gin.Context) {
		p, ok := catalog.Find(cfg.Products, c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	})
}
