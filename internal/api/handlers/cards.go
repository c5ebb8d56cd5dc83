package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/optcg-api/backend/internal/metrics"
	"github.com/codyseavey/optcg-api/backend/internal/services"
)

type CardHandler struct {
	catalog *services.CatalogService
}

func NewCardHandler(catalog *services.CatalogService) *CardHandler {
	return &CardHandler{
		catalog: catalog,
	}
}

// ListCards filters the catalog by the query parameters and returns one page.
// GET /cards?name=luffy&color=red&limit=25&page=1
func (h *CardHandler) ListCards(c *gin.Context) {
	filter := services.FilterFromQuery(c.Request.URL.Query())
	page := services.ParsePage(c.Query("page"))
	limit := services.ParseLimit(c.Query("limit"))

	result := h.catalog.ListCards(filter, page, limit)

	metrics.CardQueriesTotal.WithLabelValues(strconv.FormatBool(!filter.IsEmpty())).Inc()
	metrics.CardQueryMatches.Observe(float64(result.Total))

	c.JSON(http.StatusOK, result)
}

// GetCard resolves a single card by id or code, ignoring case.
// GET /card/:value
func (h *CardHandler) GetCard(c *gin.Context) {
	card, err := h.catalog.GetCard(c.Param("value"))
	if errors.Is(err, services.ErrNotFound) {
		metrics.NotFoundTotal.WithLabelValues("card").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, card)
}
