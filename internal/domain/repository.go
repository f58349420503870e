package domain

import "context"

// MatchCache defines the interface for the persistent mapping from
// normalized latin name to per-source canonical URLs. Keys are expected
// to be already normalized by the caller.
type MatchCache interface {
	Lookup(normalizedName, source string) (string, error)
	Store(normalizedName, source, url string) error
	Entries() int
}

// PageFetcher fetches a single page from a source site and returns its raw HTML
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// PlantSearcher defines the interface for a source site offering full-text search
type PlantSearcher interface {
	PageFetcher
	FetchSearchPage(ctx context.Context, query string) (string, error)
}

// PlantLocator defines the interface for a source site where plants are
// located by probing candidate URLs rather than searching
type PlantLocator interface {
	PageFetcher
	LocatePlant(ctx context.Context, latinName string) (string, error)
	Source() string
}

// LibraryRepository defines the interface for plant and library persistence
type LibraryRepository interface {
	SavePlant(ctx context.Context, plant *PlantSummary) (int64, error)
	SearchPlants(ctx context.Context, query string) ([]PlantSummary, error)
	AddToLibrary(ctx context.Context, plantID int64, quantity int, notes string) (*LibraryEntry, error)
	ListLibrary(ctx context.Context) ([]LibraryEntry, error)
	UpdatePhoto(ctx context.Context, entryID int64, photoPath string) error
	Stats(ctx context.Context) (*LibraryStats, error)
}
