package api

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/optcg-api/backend/internal/api/handlers"
	"github.com/codyseavey/optcg-api/backend/internal/services"
)

func SetupRouter(catalog *services.CatalogService, lastModified *services.LastModifiedService) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from environment or allow all
	config := cors.DefaultConfig()
	if origins := parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")); len(origins) > 0 {
		config.AllowOrigins = origins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}
	config.AllowCredentials = false // Explicitly set
	router.Use(cors.New(config))

	router.Use(requestID(), instrument())

	// Initialize handlers
	cardHandler := handlers.NewCardHandler(catalog)
	setHandler := handlers.NewSetHandler(catalog)
	metaHandler := handlers.NewMetaHandler(catalog, lastModified)

	// Catalog routes
	public := router.Group("/", cacheControl(catalogCacheControl))
	{
		public.GET("/cards", cardHandler.ListCards)
		public.GET("/card/:value", cardHandler.GetCard)
		public.GET("/sets", setHandler.ListSets)
		public.GET("/sets/:groupId/cards", setHandler.ListSetCards)
		public.GET("/last-modified", metaHandler.GetLastModified)
	}

	// Operational routes
	ops := router.Group("/", cacheControl("no-store"))
	{
		ops.GET("/health", metaHandler.Health)
		ops.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}

// parseOrigins splits a comma-separated origin list, dropping blanks.
func parseOrigins(value string) []string {
	var origins []string
	for _, origin := range strings.Split(value, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
