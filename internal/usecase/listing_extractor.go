package usecase

import (
	"log"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/plantheque/backend/internal/domain"
)

// descriptionLimit caps listing descriptions; detail pages carry the
// long form.
const descriptionLimit = 200

// parenLatinRegex captures a trailing parenthesized latin name inside a
// display name: "Lavande vraie (Lavandula angustifolia)"
var parenLatinRegex = regexp.MustCompile(`\(([\w\s]+)\)\s*$`)

// ListingProfile groups the selector strategies for one site's
// search-results markup. Every field is a fallback chain tried in order.
type ListingProfile struct {
	Item        string          `yaml:"item"`
	Name        []FieldStrategy `yaml:"name"`
	LatinName   []FieldStrategy `yaml:"latin_name"`
	Price       []FieldStrategy `yaml:"price"`
	Description []FieldStrategy `yaml:"description"`
	Exposure    []FieldStrategy `yaml:"exposure"`
	URL         []FieldStrategy `yaml:"url"`
}

// DefaultListingProfile returns the selector chains for the search-results
// markup variants seen in the wild. Sites move classes around; each chain
// goes from the current markup to older shapes.
func DefaultListingProfile() ListingProfile {
	return ListingProfile{
		Item: "li.ais-Hits-item, article.product-item, div.product-card",
		Name: []FieldStrategy{
			{Selector: "a.result-title"},
			{Selector: "h2.product-title"},
			{Selector: "h3 a"},
			{Selector: ".product-name"},
		},
		LatinName: []FieldStrategy{
			{Selector: ".latin-name"},
			{Selector: "em.species"},
			{Selector: ".scientific-name"},
		},
		Price: []FieldStrategy{
			{Selector: ".price"},
			{Selector: ".product-price"},
			{Selector: "[data-price]", Attr: "data-price"},
		},
		Description: []FieldStrategy{
			{Selector: ".result-description"},
			{Selector: ".product-description"},
			{Selector: "p.excerpt"},
		},
		Exposure: []FieldStrategy{
			{Selector: ".exposure"},
			{Selector: "[data-exposition]", Attr: "data-exposition"},
		},
		URL: []FieldStrategy{
			{Selector: "a.result-title", Attr: "href"},
			{Selector: "a", Attr: "href"},
		},
	}
}

// ListingExtractor turns a search-results page into summary records
type ListingExtractor struct {
	profile ListingProfile
	source  string
	baseURL *url.URL
	debug   bool
}

// NewListingExtractor creates a listing extractor for one source site.
// baseURL resolves relative links found in the markup.
func NewListingExtractor(profile ListingProfile, source, baseURL string, enableDebugLogging bool) *ListingExtractor {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	return &ListingExtractor{
		profile: profile,
		source:  source,
		baseURL: base,
		debug:   enableDebugLogging,
	}
}

// ExtractAll parses a search-results document and extracts one summary
// record per result fragment. Fragments without a usable name are invalid
// and filtered out rather than returned as empty records.
func (e *ListingExtractor) ExtractAll(html string) ([]domain.PlantSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, domain.ErrNoRecord
	}

	results := []domain.PlantSummary{}
	doc.Find(e.profile.Item).Each(func(_ int, sel *goquery.Selection) {
		plant, ok := e.Extract(sel)
		if !ok {
			return
		}
		results = append(results, plant)
	})

	if e.debug {
		log.Printf("[LISTING] %s: %d records extracted", e.source, len(results))
	}
	return results, nil
}

// Extract pulls one summary record out of a single result fragment. The
// second return value is false when the fragment has no name and must be
// skipped by the caller.
func (e *ListingExtractor) Extract(fragment *goquery.Selection) (domain.PlantSummary, bool) {
	name := ExtractField(fragment, e.profile.Name)
	if name == "" {
		return domain.PlantSummary{}, false
	}

	latin := ExtractField(fragment, e.profile.LatinName)
	name, latin = SplitLatinName(name, latin)

	description := Truncate(ExtractField(fragment, e.profile.Description), descriptionLimit)
	plantType := ClassifyPlantType(name, description)
	rawPrice := ExtractField(fragment, e.profile.Price)

	return domain.PlantSummary{
		FrenchName:  name,
		LatinName:   latin,
		Exposure:    ExtractField(fragment, e.profile.Exposure),
		PlantType:   plantType,
		Price:       ParsePrice(rawPrice),
		PriceValue:  ParsePriceValue(rawPrice),
		Description: description,
		Icon:        PlantIcon(name, plantType),
		URL:         e.resolveURL(ExtractField(fragment, e.profile.URL)),
		Source:      e.source,
	}, true
}

// SplitLatinName strips a trailing parenthesized latin name out of a
// display name. The parenthesized value only fills the latin field when
// no separate latin-name element supplied one.
func SplitLatinName(name, latin string) (string, string) {
	m := parenLatinRegex.FindStringSubmatch(name)
	if m == nil {
		return name, latin
	}

	if latin == "" {
		latin = CleanText(m[1])
	}
	name = CleanText(strings.TrimSuffix(name, m[0]))
	if name == "" {
		// A name that was nothing but the parenthesized part keeps it
		return CleanText(m[1]), latin
	}
	return name, latin
}

func (e *ListingExtractor) resolveURL(href string) string {
	if href == "" || e.baseURL == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return e.baseURL.ResolveReference(ref).String()
}
