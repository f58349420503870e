package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/plantheque/backend/config"
	httpDelivery "github.com/plantheque/backend/internal/delivery/http"
	"github.com/plantheque/backend/internal/infrastructure/library"
	"github.com/plantheque/backend/internal/infrastructure/matchcache"
	"github.com/plantheque/backend/internal/infrastructure/promesse"
	"github.com/plantheque/backend/internal/infrastructure/rustica"
	"github.com/plantheque/backend/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Planthèque Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	store, err := library.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open library store: %v", err)
	}
	defer store.Close()
	log.Printf("Library store: %s", cfg.Storage.DatabasePath)

	cache := matchcache.NewFileStore(cfg.Matching.CachePath)
	log.Printf("Match cache: %s (%d entries)", cfg.Matching.CachePath, cache.Entries())

	promesseClient := promesse.NewClient(cfg.Sources.PromesseBaseURL, cfg.Sources.RequestTimeout)
	rusticaClient := rustica.NewClient(cfg.Sources.RusticaBaseURL, cfg.Sources.RequestTimeout, cfg.Sources.PolitenessDelay)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		promesseClient.SetDebug(true)
		log.Printf("Catalog client debug mode enabled")
	}

	profiles, err := usecase.LoadProfiles(cfg.Sources.ProfilePath)
	if err != nil {
		log.Fatalf("Failed to load selector profiles: %v", err)
	}
	if cfg.Sources.ProfilePath != "" {
		log.Printf("Selector profiles: %s", cfg.Sources.ProfilePath)
	}

	// Initialize usecase layer
	debug := cfg.Server.Debug
	service := usecase.NewPlantService(
		store,
		promesseClient,
		rusticaClient,
		usecase.NewListingExtractor(profiles.Listing, "promesse", cfg.Sources.PromesseBaseURL, debug),
		usecase.NewDetailExtractor(profiles.Detail, "promesse", cfg.Sources.PromesseBaseURL, debug),
		usecase.NewCareExtractor(debug),
		usecase.NewIdentityResolver(cache, usecase.ResolverConfig{
			MinConfidence:      cfg.Matching.MinConfidence,
			FuzzyThreshold:     cfg.Matching.FuzzyThreshold,
			EnableDebugLogging: debug,
		}),
		usecase.PlantServiceConfig{EnableDebugLogging: debug},
	)

	log.Printf("Matching: confidence=%d%%, fuzzy=%d%%",
		cfg.Matching.MinConfidence, cfg.Matching.FuzzyThreshold)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(service, cfg.Server.UploadDir)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
