package usecase

import (
	"errors"
	"testing"

	"github.com/plantheque/backend/internal/domain"
)

const searchPageFixture = `
<html><body>
<ul>
	<li class="ais-Hits-item">
		<a class="result-title" href="/plantes/lavande-vraie">Lavande vraie (Lavandula angustifolia)</a>
		<span class="price">Dès 8,50 €</span>
		<p class="result-description">Une incontournable des jardins secs, au parfum inimitable.</p>
		<span class="exposure">Plein soleil</span>
	</li>
	<li class="ais-Hits-item">
		<a class="result-title" href="https://autre.example.org/rosier-pierre-de-ronsard">Rosier grimpant Pierre de Ronsard</a>
		<span class="latin-name">Rosa 'Pierre de Ronsard'</span>
	</li>
	<li class="ais-Hits-item">
		<span class="price">9,90 €</span>
	</li>
</ul>
</body></html>`

func newTestListingExtractor() *ListingExtractor {
	return NewListingExtractor(DefaultListingProfile(), "promesse", "https://www.pepinieres.example", false)
}

func TestListingExtractor_ExtractAll(t *testing.T) {
	extractor := newTestListingExtractor()

	plants, err := extractor.ExtractAll(searchPageFixture)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plants) != 2 {
		t.Fatalf("got %d plants, want 2 (nameless fragment filtered)", len(plants))
	}

	t.Run("first result fully populated", func(t *testing.T) {
		p := plants[0]
		if p.FrenchName != "Lavande vraie" {
			t.Errorf("FrenchName = %q", p.FrenchName)
		}
		if p.LatinName != "Lavandula angustifolia" {
			t.Errorf("LatinName = %q", p.LatinName)
		}
		if p.Price != "8,50 €" {
			t.Errorf("Price = %q", p.Price)
		}
		if p.PriceValue != 8.5 {
			t.Errorf("PriceValue = %v", p.PriceValue)
		}
		if p.Exposure != "Plein soleil" {
			t.Errorf("Exposure = %q", p.Exposure)
		}
		if p.PlantType != "Vivace" {
			t.Errorf("PlantType = %q", p.PlantType)
		}
		if p.URL != "https://www.pepinieres.example/plantes/lavande-vraie" {
			t.Errorf("URL = %q, want relative link resolved", p.URL)
		}
		if p.Source != "promesse" {
			t.Errorf("Source = %q", p.Source)
		}
	})

	t.Run("second result keeps dedicated latin element", func(t *testing.T) {
		p := plants[1]
		if p.FrenchName != "Rosier grimpant Pierre de Ronsard" {
			t.Errorf("FrenchName = %q", p.FrenchName)
		}
		if p.LatinName != "Rosa 'Pierre de Ronsard'" {
			t.Errorf("LatinName = %q", p.LatinName)
		}
		if p.PlantType != "Rosier" {
			t.Errorf("PlantType = %q, want Rosier", p.PlantType)
		}
		if p.Icon != "🌹" {
			t.Errorf("Icon = %q", p.Icon)
		}
		if p.Price != PriceUnavailable {
			t.Errorf("Price = %q, want %q", p.Price, PriceUnavailable)
		}
		if p.URL != "https://autre.example.org/rosier-pierre-de-ronsard" {
			t.Errorf("URL = %q, want absolute link untouched", p.URL)
		}
	})
}

func TestListingExtractor_EmptyPage(t *testing.T) {
	extractor := newTestListingExtractor()

	plants, err := extractor.ExtractAll("<html><body><p>Aucun résultat</p></body></html>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plants) != 0 {
		t.Errorf("got %d plants, want 0", len(plants))
	}
	if plants == nil {
		t.Error("result slice must not be nil")
	}
}

func TestSplitLatinName(t *testing.T) {
	testCases := []struct {
		name      string
		inName    string
		inLatin   string
		wantName  string
		wantLatin string
	}{
		{
			name:      "trailing parens feed the latin name",
			inName:    "Lavande vraie (Lavandula angustifolia)",
			inLatin:   "",
			wantName:  "Lavande vraie",
			wantLatin: "Lavandula angustifolia",
		},
		{
			name:      "dedicated latin element wins over parens",
			inName:    "Lavande vraie (Lavandula angustifolia)",
			inLatin:   "Lavandula stoechas",
			wantName:  "Lavande vraie",
			wantLatin: "Lavandula stoechas",
		},
		{
			name:      "no parens leaves both untouched",
			inName:    "Rosier grimpant",
			inLatin:   "",
			wantName:  "Rosier grimpant",
			wantLatin: "",
		},
		{
			name:      "name that is only parens keeps the content",
			inName:    "(Lavandula angustifolia)",
			inLatin:   "",
			wantName:  "Lavandula angustifolia",
			wantLatin: "Lavandula angustifolia",
		},
		{
			name:      "mid-name parens not treated as latin",
			inName:    "Rosier (presque) parfait",
			inLatin:   "",
			wantName:  "Rosier (presque) parfait",
			wantLatin: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotName, gotLatin := SplitLatinName(tc.inName, tc.inLatin)
			if gotName != tc.wantName || gotLatin != tc.wantLatin {
				t.Errorf("SplitLatinName(%q, %q) = (%q, %q), want (%q, %q)",
					tc.inName, tc.inLatin, gotName, gotLatin, tc.wantName, tc.wantLatin)
			}
		})
	}
}

func TestListingExtractor_MalformedItemSkipped(t *testing.T) {
	extractor := newTestListingExtractor()

	// A parseable page with zero matching items is a valid empty result,
	// not ErrNoRecord: listings legitimately come back empty.
	plants, err := extractor.ExtractAll(`<html><body><li class="ais-Hits-item"></li></body></html>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plants) != 0 {
		t.Errorf("got %d plants, want 0", len(plants))
	}
	if errors.Is(err, domain.ErrNoRecord) {
		t.Error("empty listing must not be ErrNoRecord")
	}
}
