package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codyseavey/optcg-api/backend/internal/api"
	"github.com/codyseavey/optcg-api/backend/internal/metrics"
	"github.com/codyseavey/optcg-api/backend/internal/services"
)

func main() {
	// Card data location
	dataPath := os.Getenv("CARDS_DATA_PATH")
	if dataPath == "" {
		dataPath = "./onepiece_cards.json"
	}

	// Load the catalog once; the server never runs without it
	catalog, err := services.NewCatalogServiceFromFile(dataPath, os.Getenv("CARDS_DATA_URL"))
	if err != nil {
		log.Fatalf("Failed to load card catalog: %v", err)
	}
	cardCount, setCount := catalog.GetCardCount(), catalog.GetSetCount()
	metrics.SetCatalogSize(cardCount, setCount)
	log.Printf("Loaded %d cards from %d sets", cardCount, setCount)

	// Initialize last-modified lookup against the data repository's history
	githubPath := os.Getenv("GITHUB_DATA_PATH")
	if githubPath == "" {
		githubPath = "onepiece_cards.json"
	}
	cacheTTL := services.DefaultLastModifiedTTL
	if ttlStr := os.Getenv("LAST_MODIFIED_CACHE_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil {
			cacheTTL = ttl
		} else {
			log.Printf("Warning: invalid LAST_MODIFIED_CACHE_TTL %q, using %s", ttlStr, cacheTTL)
		}
	}
	lastModified := services.NewLastModifiedService(os.Getenv("GITHUB_REPO"), githubPath, os.Getenv("GITHUB_TOKEN"), cacheTTL)
	if !lastModified.IsEnabled() {
		log.Println("GITHUB_REPO not set, /last-modified is disabled")
	}

	// Setup router
	router := api.SetupRouter(catalog, lastModified)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
