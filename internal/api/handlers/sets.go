package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/optcg-api/backend/internal/metrics"
	"github.com/codyseavey/optcg-api/backend/internal/services"
)

type SetHandler struct {
	catalog *services.CatalogService
}

func NewSetHandler(catalog *services.CatalogService) *SetHandler {
	return &SetHandler{
		catalog: catalog,
	}
}

// ListSets returns every distinct set with its card count. Not paginated.
func (h *SetHandler) ListSets(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.ListSets())
}

// ListSetCards returns all cards of one set, ordered by code.
// GET /sets/:groupId/cards
func (h *SetHandler) ListSetCards(c *gin.Context) {
	result, err := h.catalog.ListSetCards(c.Param("groupId"))
	if errors.Is(err, services.ErrNotFound) {
		metrics.NotFoundTotal.WithLabelValues("set").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "Set not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
