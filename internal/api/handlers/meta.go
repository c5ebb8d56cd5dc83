package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/optcg-api/backend/internal/services"
)

type MetaHandler struct {
	catalog      *services.CatalogService
	lastModified *services.LastModifiedService
}

func NewMetaHandler(catalog *services.CatalogService, lastModified *services.LastModifiedService) *MetaHandler {
	return &MetaHandler{
		catalog:      catalog,
		lastModified: lastModified,
	}
}

// GetLastModified reports when the card data last changed upstream.
func (h *MetaHandler) GetLastModified(c *gin.Context) {
	ts, err := h.lastModified.LastModified(c.Request.Context())
	if errors.Is(err, services.ErrLastModifiedDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("Warning: last-modified lookup failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch last modified date"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lastModified": ts})
}

func (h *MetaHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cards":  h.catalog.GetCardCount(),
	})
}
