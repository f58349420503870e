package usecase

import (
	"errors"
	"testing"

	"github.com/plantheque/backend/internal/domain"
)

// fakeMatchCache is an in-memory MatchCache for resolver tests
type fakeMatchCache struct {
	entries   map[string]string
	failStore bool
	stores    int
}

func newFakeMatchCache() *fakeMatchCache {
	return &fakeMatchCache{entries: map[string]string{}}
}

func (f *fakeMatchCache) Lookup(normalizedName, source string) (string, error) {
	url, ok := f.entries[normalizedName+"|"+source]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return url, nil
}

func (f *fakeMatchCache) Store(normalizedName, source, url string) error {
	if f.failStore {
		return errors.New("disk full")
	}
	f.entries[normalizedName+"|"+source] = url
	f.stores++
	return nil
}

func (f *fakeMatchCache) Entries() int { return len(f.entries) }

func TestMatchConfidence(t *testing.T) {
	testCases := []struct {
		name      string
		a         *domain.PlantRef
		b         *domain.PlantRef
		wantScore int
		wantBasis []string
	}{
		{
			name: "full agreement scores 100",
			a: &domain.PlantRef{
				LatinName:  "Lavandula angustifolia 'Hidcote'",
				FrenchName: "Lavande vraie",
				Family:     "Lamiacées",
			},
			b: &domain.PlantRef{
				LatinName:  "Lavandula angustifolia",
				FrenchName: "Lavande vraie",
				Family:     "lamiacées", // case-insensitive
			},
			wantScore: 100,
			wantBasis: []string{"nom_latin", "nom_francais", "famille"},
		},
		{
			name:      "latin name alone scores 60",
			a:         &domain.PlantRef{LatinName: "Olea europaea subsp. europaea"},
			b:         &domain.PlantRef{LatinName: "Olea europaea"},
			wantScore: 60,
			wantBasis: []string{"nom_latin"},
		},
		{
			name:      "same genus different species scores 20",
			a:         &domain.PlantRef{LatinName: "Lavandula stoechas"},
			b:         &domain.PlantRef{LatinName: "Lavandula angustifolia"},
			wantScore: 20,
			wantBasis: []string{"genre"},
		},
		{
			name:      "similar french names contribute scaled score",
			a:         &domain.PlantRef{FrenchName: "Lavande vraie"},
			b:         &domain.PlantRef{FrenchName: "Lavande officinale"},
			wantScore: 26, // fuzzy 85 scaled by 0.3, rounded
			wantBasis: []string{"nom_francais"},
		},
		{
			name:      "dissimilar french names contribute nothing",
			a:         &domain.PlantRef{FrenchName: "Lavande vraie"},
			b:         &domain.PlantRef{FrenchName: "Chêne pédonculé"},
			wantScore: 0,
			wantBasis: nil,
		},
		{
			name:      "family alone scores 10",
			a:         &domain.PlantRef{Family: "Rosacées"},
			b:         &domain.PlantRef{Family: "Rosacées"},
			wantScore: 10,
			wantBasis: []string{"famille"},
		},
		{
			name:      "no shared signals",
			a:         &domain.PlantRef{LatinName: "Rosa canina"},
			b:         &domain.PlantRef{LatinName: "Olea europaea"},
			wantScore: 0,
			wantBasis: nil,
		},
		{
			name:      "nil refs score zero",
			a:         nil,
			b:         nil,
			wantScore: 0,
			wantBasis: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchConfidence(tc.a, tc.b)
			if got.Score != tc.wantScore {
				t.Errorf("Score = %d, want %d", got.Score, tc.wantScore)
			}
			if len(got.Basis) != len(tc.wantBasis) {
				t.Fatalf("Basis = %v, want %v", got.Basis, tc.wantBasis)
			}
			for i, basis := range tc.wantBasis {
				if got.Basis[i] != basis {
					t.Errorf("Basis[%d] = %q, want %q", i, got.Basis[i], basis)
				}
			}
		})
	}
}

func TestNewIdentityResolver(t *testing.T) {
	t.Run("uses configured threshold", func(t *testing.T) {
		r := NewIdentityResolver(newFakeMatchCache(), ResolverConfig{MinConfidence: 80})
		if r.minConfidence != 80 {
			t.Errorf("minConfidence = %d, want 80", r.minConfidence)
		}
	})

	t.Run("defaults threshold when zero", func(t *testing.T) {
		r := NewIdentityResolver(newFakeMatchCache(), ResolverConfig{})
		if r.minConfidence != 60 {
			t.Errorf("minConfidence = %d, want 60 (default)", r.minConfidence)
		}
	})
}

func TestIdentityResolver_Lookup(t *testing.T) {
	cache := newFakeMatchCache()
	cache.entries["lavandula angustifolia|rustica"] = "https://example.org/lavande"
	resolver := NewIdentityResolver(cache, ResolverConfig{})

	t.Run("hit returns cached url", func(t *testing.T) {
		plant := &domain.PlantRef{LatinName: "Lavandula angustifolia"}
		resolution, ok := resolver.Lookup(plant, "rustica")
		if !ok {
			t.Fatal("expected cache hit")
		}
		if resolution.URL != "https://example.org/lavande" {
			t.Errorf("URL = %q", resolution.URL)
		}
		if !resolution.FromCache {
			t.Error("FromCache should be true")
		}
	})

	t.Run("cultivar spelling shares the cache entry", func(t *testing.T) {
		plant := &domain.PlantRef{LatinName: "Lavandula angustifolia 'Hidcote'"}
		resolution, ok := resolver.Lookup(plant, "rustica")
		if !ok {
			t.Fatal("expected cache hit for cultivar spelling")
		}
		if resolution.URL != "https://example.org/lavande" {
			t.Errorf("URL = %q", resolution.URL)
		}
	})

	t.Run("miss on unknown name", func(t *testing.T) {
		plant := &domain.PlantRef{LatinName: "Rosa canina"}
		if _, ok := resolver.Lookup(plant, "rustica"); ok {
			t.Error("expected cache miss")
		}
	})

	t.Run("miss on other source", func(t *testing.T) {
		plant := &domain.PlantRef{LatinName: "Lavandula angustifolia"}
		if _, ok := resolver.Lookup(plant, "autre"); ok {
			t.Error("expected cache miss for other source")
		}
	})

	t.Run("nil plant", func(t *testing.T) {
		if _, ok := resolver.Lookup(nil, "rustica"); ok {
			t.Error("expected no hit for nil plant")
		}
	})
}

func TestIdentityResolver_Commit(t *testing.T) {
	plant := &domain.PlantRef{
		LatinName:  "Lavandula angustifolia 'Hidcote'",
		FrenchName: "Lavande vraie",
	}
	candidate := &domain.PlantRef{
		LatinName:  "Lavandula angustifolia",
		FrenchName: "Lavande officinale",
	}

	t.Run("confident match is cached under the normalized name", func(t *testing.T) {
		cache := newFakeMatchCache()
		resolver := NewIdentityResolver(cache, ResolverConfig{MinConfidence: 60})

		resolution, err := resolver.Commit(plant, candidate, "rustica", "https://example.org/lavande")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolution.Confidence == nil || resolution.Confidence.Score != 86 {
			t.Fatalf("Confidence = %+v, want score 86", resolution.Confidence)
		}
		if got := cache.entries["lavandula angustifolia|rustica"]; got != "https://example.org/lavande" {
			t.Errorf("cached url = %q", got)
		}
	})

	t.Run("low confidence returns the resolution with the error", func(t *testing.T) {
		cache := newFakeMatchCache()
		resolver := NewIdentityResolver(cache, ResolverConfig{MinConfidence: 95})

		resolution, err := resolver.Commit(plant, candidate, "rustica", "https://example.org/lavande")
		if !errors.Is(err, domain.ErrLowConfidence) {
			t.Fatalf("error = %v, want ErrLowConfidence", err)
		}
		if resolution == nil || resolution.Confidence.Score != 86 {
			t.Fatalf("resolution = %+v, want score 86 alongside the error", resolution)
		}
		if cache.stores != 0 {
			t.Error("low-confidence resolution must not be cached")
		}
	})

	t.Run("cache write failure is swallowed", func(t *testing.T) {
		cache := newFakeMatchCache()
		cache.failStore = true
		resolver := NewIdentityResolver(cache, ResolverConfig{MinConfidence: 60})

		resolution, err := resolver.Commit(plant, candidate, "rustica", "https://example.org/lavande")
		if err != nil {
			t.Fatalf("cache write failure must not fail the resolution: %v", err)
		}
		if resolution == nil || resolution.Confidence.Score != 86 {
			t.Fatalf("resolution = %+v", resolution)
		}
	})

	t.Run("missing latin name rejected", func(t *testing.T) {
		resolver := NewIdentityResolver(newFakeMatchCache(), ResolverConfig{})
		_, err := resolver.Commit(&domain.PlantRef{FrenchName: "Lavande"}, candidate, "rustica", "https://example.org/x")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("missing url rejected", func(t *testing.T) {
		resolver := NewIdentityResolver(newFakeMatchCache(), ResolverConfig{})
		_, err := resolver.Commit(plant, candidate, "rustica", "")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})
}
