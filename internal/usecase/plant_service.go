package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/plantheque/backend/internal/domain"
)

// suggestionQueries feeds the homepage suggestions: one result per query
var suggestionQueries = []string{"rose", "lavande", "olivier", "hortensia"}

// PlantServiceConfig holds configuration for the plant service
type PlantServiceConfig struct {
	LocalResultThreshold int // below this many local hits the web is searched too
	MaxWebResults        int
	EnableDebugLogging   bool
}

// PlantService orchestrates search, detail extraction and cross-source
// care resolution on top of the extraction core. All network work goes
// through the injected source clients; the extractors only ever see
// fetched documents.
type PlantService struct {
	library  domain.LibraryRepository
	searcher domain.PlantSearcher
	locator  domain.PlantLocator
	listing  *ListingExtractor
	detail   *DetailExtractor
	care     *CareExtractor
	resolver *IdentityResolver

	localResultThreshold int
	maxWebResults        int
	debug                bool
}

// NewPlantService creates a plant service with its dependencies
func NewPlantService(
	library domain.LibraryRepository,
	searcher domain.PlantSearcher,
	locator domain.PlantLocator,
	listing *ListingExtractor,
	detail *DetailExtractor,
	care *CareExtractor,
	resolver *IdentityResolver,
	config PlantServiceConfig,
) *PlantService {
	threshold := config.LocalResultThreshold
	if threshold <= 0 {
		threshold = 5
	}
	maxWeb := config.MaxWebResults
	if maxWeb <= 0 {
		maxWeb = 10
	}

	return &PlantService{
		library:              library,
		searcher:             searcher,
		locator:              locator,
		listing:              listing,
		detail:               detail,
		care:                 care,
		resolver:             resolver,
		localResultThreshold: threshold,
		maxWebResults:        maxWeb,
		debug:                config.EnableDebugLogging,
	}
}

// Search looks a query up in the local store first and reaches out to
// the web source when local results run short (or forceWeb is set).
// Freshly scraped summaries are persisted so the next search finds them
// locally.
func (s *PlantService) Search(ctx context.Context, query string, forceWeb bool) (*domain.SearchResult, error) {
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	result := &domain.SearchResult{
		Local: []domain.PlantSummary{},
		Web:   []domain.PlantSummary{},
	}

	if !forceWeb {
		local, err := s.library.SearchPlants(ctx, query)
		if err != nil {
			log.Printf("[SEARCH] Local lookup failed for %q: %v", query, err)
		} else {
			result.Local = local
		}
	}

	if len(result.Local) < s.localResultThreshold {
		web, err := s.searchWeb(ctx, query)
		if err != nil {
			if len(result.Local) == 0 {
				return nil, err
			}
			// Local results are still worth returning
			log.Printf("[SEARCH] Web lookup failed for %q: %v", query, err)
		} else {
			result.Web = web
		}
	}

	result.TotalFound = len(result.Local) + len(result.Web)
	return result, nil
}

func (s *PlantService) searchWeb(ctx context.Context, query string) ([]domain.PlantSummary, error) {
	html, err := s.searcher.FetchSearchPage(ctx, query)
	if err != nil {
		return nil, err
	}

	plants, err := s.listing.ExtractAll(html)
	if err != nil {
		return nil, err
	}
	if len(plants) > s.maxWebResults {
		plants = plants[:s.maxWebResults]
	}

	for i := range plants {
		if _, err := s.library.SavePlant(ctx, &plants[i]); err != nil {
			log.Printf("[SEARCH] Persisting %q failed: %v", plants[i].FrenchName, err)
		}
	}
	return plants, nil
}

// GetDetail fetches a product page and extracts its full attribute
// record. The summary projection is persisted as a side effect.
func (s *PlantService) GetDetail(ctx context.Context, pageURL string) (*domain.PlantDetail, error) {
	if pageURL == "" {
		return nil, domain.ErrInvalidRequest
	}

	html, err := s.searcher.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	detail, err := s.detail.Extract(html, pageURL)
	if err != nil {
		return nil, err
	}

	summary := detail.Summary()
	if _, err := s.library.SavePlant(ctx, &summary); err != nil {
		log.Printf("[DETAIL] Persisting %q failed: %v", summary.FrenchName, err)
	}
	return detail, nil
}

// GetCare resolves where the plant lives on the care source and extracts
// its care record. The resolver's cache short-circuits the locator; a
// computed resolution is committed back through it. On low confidence
// the care data and resolution are still returned alongside
// ErrLowConfidence so the caller can decide.
func (s *PlantService) GetCare(ctx context.Context, latinName, frenchName string) (*domain.CareRecord, *domain.Resolution, error) {
	if latinName == "" {
		return nil, nil, domain.ErrInvalidRequest
	}

	ref := &domain.PlantRef{LatinName: latinName, FrenchName: frenchName}
	source := s.locator.Source()

	if resolution, ok := s.resolver.Lookup(ref, source); ok {
		care, err := s.fetchCare(ctx, resolution.URL)
		if err != nil {
			return nil, resolution, err
		}
		return care, resolution, nil
	}

	pageURL, err := s.locator.LocatePlant(ctx, latinName)
	if err != nil {
		return nil, nil, err
	}

	care, err := s.fetchCare(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}

	resolution, err := s.resolver.Commit(ref, care.Ref(), source, pageURL)
	if err != nil {
		if errors.Is(err, domain.ErrLowConfidence) && resolution != nil {
			return care, resolution, err
		}
		return nil, nil, err
	}
	return care, resolution, nil
}

func (s *PlantService) fetchCare(ctx context.Context, pageURL string) (*domain.CareRecord, error) {
	html, err := s.locator.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return s.care.Extract(html, pageURL)
}

// Suggestions scrapes one result for each of the fixed suggestion
// queries. Failing queries are skipped; the homepage degrades rather
// than erroring.
func (s *PlantService) Suggestions(ctx context.Context) []domain.PlantSummary {
	suggestions := []domain.PlantSummary{}
	for _, query := range suggestionQueries {
		web, err := s.searchWeb(ctx, query)
		if err != nil {
			log.Printf("[SUGGEST] %q failed: %v", query, err)
			continue
		}
		if len(web) > 0 {
			suggestions = append(suggestions, web[0])
		}
	}
	return suggestions
}

// AddToLibrary persists the plant and adds it to the curated library.
// Adding a plant that is already in the library merges quantities.
func (s *PlantService) AddToLibrary(ctx context.Context, plant *domain.PlantSummary, quantity int, notes string) (*domain.LibraryEntry, error) {
	if plant == nil || plant.FrenchName == "" {
		return nil, domain.ErrInvalidRequest
	}
	if quantity <= 0 {
		quantity = 1
	}

	plantID, err := s.library.SavePlant(ctx, plant)
	if err != nil {
		return nil, err
	}
	return s.library.AddToLibrary(ctx, plantID, quantity, notes)
}

// Library returns every entry of the curated library
func (s *PlantService) Library(ctx context.Context) ([]domain.LibraryEntry, error) {
	return s.library.ListLibrary(ctx)
}

// UpdatePhoto attaches an uploaded photo path to a library entry
func (s *PlantService) UpdatePhoto(ctx context.Context, entryID int64, photoPath string) error {
	return s.library.UpdatePhoto(ctx, entryID, photoPath)
}

// Stats aggregates the library for the stats endpoint
func (s *PlantService) Stats(ctx context.Context) (*domain.LibraryStats, error) {
	return s.library.Stats(ctx)
}
