package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/plantheque/backend/config"
	"github.com/plantheque/backend/internal/infrastructure/promesse"
	"github.com/plantheque/backend/internal/usecase"
)

var searchMax int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Scrape the nursery catalog for a plant query",
	Long: `Runs a full-text search on the nursery catalog and prints the
extracted summaries.
Examples:
  plantheque search "lavande"
  plantheque search rosier grimpant`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleSearch(args)
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchMax, "max", 10, "maximum number of results to print")
	rootCmd.AddCommand(searchCmd)
}

func handleSearch(args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	profiles, err := usecase.LoadProfiles(cfg.Sources.ProfilePath)
	if err != nil {
		log.Fatalf("Failed to load selector profiles: %v", err)
	}

	client := promesse.NewClient(cfg.Sources.PromesseBaseURL, cfg.Sources.RequestTimeout)
	if cfg.Server.Debug {
		client.SetDebug(true)
	}
	extractor := usecase.NewListingExtractor(profiles.Listing, "promesse", cfg.Sources.PromesseBaseURL, cfg.Server.Debug)

	query := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	html, err := client.FetchSearchPage(ctx, query)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	plants, err := extractor.ExtractAll(html)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
	if len(plants) == 0 {
		fmt.Printf("No results for %q.\n", query)
		return
	}

	fmt.Printf("\n🔍 Results for %q (%d found)\n\n", query, len(plants))
	for i, plant := range plants {
		if i >= searchMax {
			fmt.Printf("... and %d more (raise --max to see them)\n", len(plants)-searchMax)
			break
		}
		fmt.Printf("#%d %s %s", i+1, plant.Icon, plant.FrenchName)
		if plant.LatinName != "" {
			fmt.Printf(" (%s)", plant.LatinName)
		}
		fmt.Println()
		if plant.Price != "" {
			fmt.Printf("   %s", plant.Price)
			if plant.PlantType != "" {
				fmt.Printf(" (%s)", plant.PlantType)
			}
			fmt.Println()
		}
		if plant.Description != "" {
			fmt.Printf("   %s\n", usecase.Truncate(plant.Description, 150))
		}
		if plant.URL != "" {
			fmt.Printf("   %s\n", plant.URL)
		}
		fmt.Println()
	}
}
