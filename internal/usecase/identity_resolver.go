package usecase

import (
	"log"
	"math"
	"strings"

	"github.com/plantheque/backend/internal/domain"
)

// Confidence weights for pairwise identity scoring
const (
	latinNameWeight  = 60  // normalized latin names equal
	genusWeight      = 20  // same genus, different species
	frenchNameFactor = 0.3 // fuzzy french-name score scaled to 0-30
	familyWeight     = 10  // taxonomic family equal

	frenchNameThreshold = 70 // minimum fuzzy score for the french-name signal
)

// Basis labels reported in MatchConfidenceResult
const (
	basisLatinName  = "nom_latin"
	basisGenus      = "genre"
	basisFrenchName = "nom_francais"
	basisFamily     = "famille"
)

// MatchConfidence scores how likely two records scraped from different
// sources denote the same botanical entity. Each signal contributes
// independently and additively: normalized latin-name equality 60,
// genus-only equality 20, fuzzy french-name similarity up to 30, family
// equality 10. The score is capped at 100.
func MatchConfidence(a, b *domain.PlantRef) *domain.MatchConfidenceResult {
	return matchConfidence(a, b, frenchNameThreshold)
}

func matchConfidence(a, b *domain.PlantRef, fuzzyThreshold int) *domain.MatchConfidenceResult {
	result := &domain.MatchConfidenceResult{}
	if a == nil || b == nil {
		return result
	}

	if a.LatinName != "" && b.LatinName != "" {
		switch {
		case NormalizeLatinName(a.LatinName) == NormalizeLatinName(b.LatinName):
			result.Score += latinNameWeight
			result.Basis = append(result.Basis, basisLatinName)
		case SameGenus(a.LatinName, b.LatinName):
			result.Score += genusWeight
			result.Basis = append(result.Basis, basisGenus)
		}
	}

	if a.FrenchName != "" && b.FrenchName != "" {
		if _, score, ok := BestMatch(a.FrenchName, []string{b.FrenchName}, fuzzyThreshold); ok {
			result.Score += int(math.Round(float64(score) * frenchNameFactor))
			result.Basis = append(result.Basis, basisFrenchName)
		}
	}

	if a.Family != "" && b.Family != "" && strings.EqualFold(a.Family, b.Family) {
		result.Score += familyWeight
		result.Basis = append(result.Basis, basisFamily)
	}

	if result.Score > 100 {
		result.Score = 100
	}
	return result
}

// ResolverConfig holds configuration for the identity resolver
type ResolverConfig struct {
	MinConfidence      int
	FuzzyThreshold     int // minimum fuzzy score for the french-name signal
	EnableDebugLogging bool
}

// IdentityResolver decides where a plant known from one source lives on
// another source. All reads and writes of the persistent match cache go
// through it: lookups short-circuit locator work, and resolutions that
// reach the confidence threshold are written back.
type IdentityResolver struct {
	cache          domain.MatchCache
	minConfidence  int
	fuzzyThreshold int
	debug          bool
}

// NewIdentityResolver creates a resolver backed by the given match cache
func NewIdentityResolver(cache domain.MatchCache, config ResolverConfig) *IdentityResolver {
	minConfidence := config.MinConfidence
	if minConfidence <= 0 {
		minConfidence = 60
	}
	fuzzyThreshold := config.FuzzyThreshold
	if fuzzyThreshold <= 0 {
		fuzzyThreshold = frenchNameThreshold
	}

	return &IdentityResolver{
		cache:          cache,
		minConfidence:  minConfidence,
		fuzzyThreshold: fuzzyThreshold,
		debug:          config.EnableDebugLogging,
	}
}

// Lookup consults the match cache for the plant's normalized latin name
// on the target source. A hit returns the stored URL without any
// confidence computation.
func (r *IdentityResolver) Lookup(plant *domain.PlantRef, source string) (*domain.Resolution, bool) {
	if plant == nil || plant.LatinName == "" {
		return nil, false
	}

	normalized := NormalizeLatinName(plant.LatinName)
	url, err := r.cache.Lookup(normalized, source)
	if err != nil {
		return nil, false
	}

	if r.debug {
		log.Printf("[RESOLVE] Cache hit: %q → %s (%s)", normalized, url, source)
	}
	return &domain.Resolution{URL: url, Source: source, FromCache: true}, true
}

// Commit scores the candidate identity found at url against the requested
// plant. At or above the confidence threshold the mapping is written back
// to the cache, keyed by the plant's normalized latin name; a cache write
// failure is logged and swallowed because the in-memory resolution stays
// valid for the current call. Below the threshold the resolution is still
// returned, together with ErrLowConfidence, so callers can inspect the
// score and decide for themselves.
func (r *IdentityResolver) Commit(plant, candidate *domain.PlantRef, source, url string) (*domain.Resolution, error) {
	if plant == nil || plant.LatinName == "" || url == "" {
		return nil, domain.ErrInvalidRequest
	}

	confidence := matchConfidence(plant, candidate, r.fuzzyThreshold)
	resolution := &domain.Resolution{
		URL:        url,
		Source:     source,
		Confidence: confidence,
	}

	if r.debug {
		log.Printf("[RESOLVE] %q on %s: score %d (basis: %v)",
			plant.LatinName, source, confidence.Score, confidence.Basis)
	}

	if confidence.Score < r.minConfidence {
		return resolution, domain.ErrLowConfidence
	}

	normalized := NormalizeLatinName(plant.LatinName)
	if err := r.cache.Store(normalized, source, url); err != nil {
		log.Printf("[RESOLVE] Cache write failed for %q: %v", normalized, err)
	}
	return resolution, nil
}
