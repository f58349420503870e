package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/plantheque/backend/config"
	"github.com/plantheque/backend/internal/domain"
	"github.com/plantheque/backend/internal/infrastructure/matchcache"
	"github.com/plantheque/backend/internal/infrastructure/rustica"
	"github.com/plantheque/backend/internal/usecase"
)

var resolveFrench string

var resolveCmd = &cobra.Command{
	Use:   "resolve [latin name]",
	Short: "Locate a plant's care page on the gardening magazine",
	Long: `Resolves where a plant lives on the care source, scores the match and
prints the extracted care record. Confident resolutions are written to
the match cache so later lookups skip the probing.
Examples:
  plantheque resolve "Lavandula angustifolia"
  plantheque resolve "Rosa" --francais "Rosier"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleResolve(args)
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveFrench, "francais", "", "french name to strengthen the match confidence")
	rootCmd.AddCommand(resolveCmd)
}

func handleResolve(args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cache := matchcache.NewFileStore(cfg.Matching.CachePath)
	client := rustica.NewClient(cfg.Sources.RusticaBaseURL, cfg.Sources.RequestTimeout, cfg.Sources.PolitenessDelay)
	care := usecase.NewCareExtractor(cfg.Server.Debug)
	resolver := usecase.NewIdentityResolver(cache, usecase.ResolverConfig{
		MinConfidence:      cfg.Matching.MinConfidence,
		FuzzyThreshold:     cfg.Matching.FuzzyThreshold,
		EnableDebugLogging: cfg.Server.Debug,
	})

	latinName := strings.Join(args, " ")
	ref := &domain.PlantRef{LatinName: latinName, FrenchName: resolveFrench}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Cached resolutions skip the probing entirely
	if resolution, ok := resolver.Lookup(ref, client.Source()); ok {
		fmt.Printf("⚡ Cache hit! %s → %s\n", latinName, resolution.URL)
		record := fetchCareRecord(ctx, client, care, resolution.URL)
		printCareRecord(record)
		return
	}

	pageURL, err := client.LocatePlant(ctx, latinName)
	if err != nil {
		log.Fatalf("Could not locate %q: %v", latinName, err)
	}

	record := fetchCareRecord(ctx, client, care, pageURL)

	resolution, err := resolver.Commit(ref, record.Ref(), client.Source(), pageURL)
	if err != nil && !errors.Is(err, domain.ErrLowConfidence) {
		log.Fatalf("Resolution failed: %v", err)
	}

	fmt.Printf("\n🔍 %s → %s\n", latinName, pageURL)
	if resolution.Confidence != nil {
		fmt.Printf("   Confidence: %d%%", resolution.Confidence.Score)
		if len(resolution.Confidence.Basis) > 0 {
			fmt.Printf(" (%s)", strings.Join(resolution.Confidence.Basis, ", "))
		}
		fmt.Println()
	}
	if errors.Is(err, domain.ErrLowConfidence) {
		fmt.Println("⚠️  Below the confidence threshold; not cached. Verify the match manually.")
	}

	printCareRecord(record)
}

func fetchCareRecord(ctx context.Context, client *rustica.Client, care *usecase.CareExtractor, pageURL string) *domain.CareRecord {
	html, err := client.FetchPage(ctx, pageURL)
	if err != nil {
		log.Fatalf("Failed to fetch %s: %v", pageURL, err)
	}
	record, err := care.Extract(html, pageURL)
	if err != nil {
		log.Fatalf("No care record on %s: %v", pageURL, err)
	}
	return record
}

func printCareRecord(record *domain.CareRecord) {
	fmt.Printf("\n🌿 %s", record.FrenchName)
	if record.LatinName != "" {
		fmt.Printf(" (%s)", record.LatinName)
	}
	fmt.Println()

	if record.WateringFrequency != "" {
		fmt.Printf("   Arrosage: %s\n", record.WateringFrequency)
	}
	if record.WateringAdvice != "" {
		fmt.Printf("   %s\n", record.WateringAdvice)
	}
	if record.FeedingPeriod != "" {
		fmt.Printf("   Fertilisation: %s", record.FeedingPeriod)
		if record.FeedingType != "" {
			fmt.Printf(" (%s)", record.FeedingType)
		}
		fmt.Println()
	}
	for _, disease := range record.Diseases {
		fmt.Printf("   Maladie: %s\n", formatTreatment(disease))
	}
	for _, pest := range record.Pests {
		fmt.Printf("   Parasite: %s\n", formatTreatment(pest))
	}
	if len(record.PropagationMethods) > 0 {
		fmt.Printf("   Multiplication: %s\n", strings.Join(record.PropagationMethods, ", "))
	}
}

func formatTreatment(t domain.Treatment) string {
	if t.Treatment == "" {
		return t.Name
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Treatment)
}
