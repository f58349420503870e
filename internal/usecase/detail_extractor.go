package usecase

import (
	"log"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/plantheque/backend/internal/domain"
)

// Package-level compiled patterns for detail-page parsing
var (
	// zoneRegex extracts a USDA-style zone code out of free hardiness text:
	// "Rustique jusqu'à -15°C (zone 7b)" → "7b"
	zoneRegex = regexp.MustCompile(`(?i)zone\s*(\d+\s*[ab]?)`)

	// heightRangeRegex extracts a delivered-height range out of labeled
	// text: "Hauteur livrée env. 40/60cm" → "40/60cm"
	heightRangeRegex = regexp.MustCompile(`(\d+(?:[.,]\d+)?(?:\s*/\s*\d+(?:[.,]\d+)?)?\s*(?:cm|m)\b)`)

	// stockRegex reads the unit count out of availability text: "En stock (27)"
	stockRegex = regexp.MustCompile(`\((\d+)\)`)

	// srcsetWidthRegex reads the width descriptor of one srcset entry
	srcsetWidthRegex = regexp.MustCompile(`^(\d+)w$`)
)

// DetailProfile groups the selectors for one site's product-page markup.
// Scalar fields use fallback strategy chains; the structural selectors
// locate the breadcrumb trail, keyed spec blocks, labeled sections,
// purchasable-format blocks and images.
type DetailProfile struct {
	Title            []FieldStrategy `yaml:"title"`
	LatinName        []FieldStrategy `yaml:"latin_name"`
	Price            []FieldStrategy `yaml:"price"`
	ShortDescription []FieldStrategy `yaml:"short_description"`
	LongDescription  []FieldStrategy `yaml:"long_description"`
	MainImage        []FieldStrategy `yaml:"main_image"`

	Breadcrumb   string `yaml:"breadcrumb"`
	SpecBlock    string `yaml:"spec_block"`
	SpecAttr     string `yaml:"spec_attr"`
	Section      string `yaml:"section"`
	SectionTitle string `yaml:"section_title"`
	Row          string `yaml:"row"`
	RowLabel     string `yaml:"row_label"`
	RowValue     string `yaml:"row_value"`
	Format       string `yaml:"format"`
	Calendar     string `yaml:"calendar"`
	Gallery      string `yaml:"gallery"`
}

// DefaultDetailProfile returns the selectors for the product-page markup
// variants seen in the wild.
func DefaultDetailProfile() DetailProfile {
	return DetailProfile{
		Title: []FieldStrategy{
			{Selector: "h1.product-title"},
			{Selector: "h1[itemprop=name]"},
			{Selector: "h1"},
		},
		LatinName: []FieldStrategy{
			{Selector: ".latin-name"},
			{Selector: "em.species"},
			{Selector: "h1 small"},
		},
		Price: []FieldStrategy{
			{Selector: ".product-price"},
			{Selector: ".price"},
		},
		ShortDescription: []FieldStrategy{
			{Selector: ".product-summary"},
			{Selector: ".short-description"},
		},
		LongDescription: []FieldStrategy{
			{Selector: ".product-long-description"},
			{Selector: "#description"},
			{Selector: ".description-full"},
		},
		MainImage: []FieldStrategy{
			{Selector: "img.product-main-image", Attr: "src"},
			{Selector: ".product-media-main img", Attr: "src"},
		},

		Breadcrumb:   "nav.breadcrumb a, ol.breadcrumb a, .breadcrumbs a",
		SpecBlock:    "[data-spec]",
		SpecAttr:     "data-spec",
		Section:      "section.plant-section, .product-section",
		SectionTitle: "h2, h3, .section-title",
		Row:          ".spec-row, tr, .row",
		RowLabel:     ".label, th, dt",
		RowValue:     ".value, td, dd",
		Format:       ".product-formats .format-item, .format-option",
		Calendar:     "[data-calendar]",
		Gallery:      ".product-gallery img",
	}
}

// fieldAssign writes one extracted value into the record
type fieldAssign func(d *domain.PlantDetail, v string)

// specAttrFields maps the machine-readable spec keys found on keyed
// attribute blocks onto record fields.
var specAttrFields = map[string]fieldAssign{
	"exposition": func(d *domain.PlantDetail, v string) { d.Exposure = v },
	"rusticite":  assignHardiness,
	"humidite":   func(d *domain.PlantDetail, v string) { d.SoilMoisture = v },
	"hauteur":    func(d *domain.PlantDetail, v string) { d.Height = v },
	"largeur":    func(d *domain.PlantDetail, v string) { d.Width = v },
	"famille":    func(d *domain.PlantDetail, v string) { d.Family = v },
	"origine":    func(d *domain.PlantDetail, v string) { d.Origin = v },
	"port":       func(d *domain.PlantDetail, v string) { d.Habit = v },
	"difficulte": func(d *domain.PlantDetail, v string) { d.Difficulty = v },
	"climat":     func(d *domain.PlantDetail, v string) { d.Climate = v },
	"sol":        func(d *domain.PlantDetail, v string) { d.SoilType = v },
}

// assignHardiness keeps the free-text hardiness and additionally pulls
// the embedded zone code out of it when present.
func assignHardiness(d *domain.PlantDetail, v string) {
	d.Hardiness = v
	if m := zoneRegex.FindStringSubmatch(v); m != nil {
		d.HardinessZone = strings.ReplaceAll(m[1], " ", "")
	}
}

// labelRule assigns a row value to a record field when the row label
// contains the keyword. Rules are ordered within their section; the
// first matching keyword wins, so "période" style keywords must come
// before their broader suffixes ("taille").
type labelRule struct {
	keyword string
	assign  fieldAssign
}

// sectionOrder fixes the order in which section headings are probed;
// "plantation" must come before "soins" for combined headings.
var sectionOrder = []string{"floraison", "feuillage", "botanique", "plantation", "emplacement", "soins", "port"}

// sectionRules dispatches label/value rows inside each named section.
// Unrecognized labels are ignored so site markup can grow new rows
// without breaking extraction.
var sectionRules = map[string][]labelRule{
	"floraison": {
		{"inflorescence", func(d *domain.PlantDetail, v string) { d.Inflorescence = v }},
		{"taille", func(d *domain.PlantDetail, v string) { d.FlowerSize = v }},
		{"période", func(d *domain.PlantDetail, v string) { d.BloomPeriod = v }},
		{"couleur", func(d *domain.PlantDetail, v string) { d.BloomColor = v }},
	},
	"feuillage": {
		{"persistance", func(d *domain.PlantDetail, v string) { d.FoliagePersistence = v }},
		{"couleur", func(d *domain.PlantDetail, v string) { d.FoliageColor = v }},
		{"feuillage", func(d *domain.PlantDetail, v string) { d.FoliagePersistence = v }},
	},
	"botanique": {
		{"famille", func(d *domain.PlantDetail, v string) { d.Family = v }},
		{"genre", func(d *domain.PlantDetail, v string) { d.Genus = v }},
		{"espèce", func(d *domain.PlantDetail, v string) { d.Species = v }},
		{"origine", func(d *domain.PlantDetail, v string) { d.Origin = v }},
	},
	"plantation": {
		{"idéale", func(d *domain.PlantDetail, v string) { d.PlantingBest = v }},
		{"meilleure", func(d *domain.PlantDetail, v string) { d.PlantingBest = v }},
		{"possible", func(d *domain.PlantDetail, v string) { d.PlantingAcceptable = v }},
	},
	"emplacement": {
		{"exposition", func(d *domain.PlantDetail, v string) { d.Exposure = v }},
		{"humidité", func(d *domain.PlantDetail, v string) { d.SoilMoisture = v }},
		{"ph", func(d *domain.PlantDetail, v string) { d.SoilPH = v }},
		{"climat", func(d *domain.PlantDetail, v string) { d.Climate = v }},
		{"rusticité", assignHardiness},
		{"sol", func(d *domain.PlantDetail, v string) { d.SoilType = v }},
	},
	"soins": {
		{"résistance", func(d *domain.PlantDetail, v string) { d.DiseaseResistance = v }},
		{"protection", func(d *domain.PlantDetail, v string) { d.WinterProtection = v }},
		{"difficulté", func(d *domain.PlantDetail, v string) { d.Difficulty = v }},
		{"fréquence", func(d *domain.PlantDetail, v string) { d.PruningFrequency = v }},
		{"période", func(d *domain.PlantDetail, v string) { d.PruningPeriod = v }},
		{"taille", func(d *domain.PlantDetail, v string) { d.PruningDescription = v }},
	},
	"port": {
		{"hauteur", func(d *domain.PlantDetail, v string) { d.Height = v }},
		{"largeur", func(d *domain.PlantDetail, v string) { d.Width = v }},
		{"port", func(d *domain.PlantDetail, v string) { d.Habit = v }},
	},
}

// calendarFields maps calendar block names onto record calendar maps
var calendarFields = map[string]func(d *domain.PlantDetail) map[string]string{
	"floraison":  func(d *domain.PlantDetail) map[string]string { return d.BloomCalendar },
	"plantation": func(d *domain.PlantDetail) map[string]string { return d.PlantingCalendar },
}

// DetailExtractor turns a product detail page into a full attribute record
type DetailExtractor struct {
	profile DetailProfile
	source  string
	baseURL *url.URL
	debug   bool
}

// NewDetailExtractor creates a detail extractor for one source site
func NewDetailExtractor(profile DetailProfile, source, baseURL string, enableDebugLogging bool) *DetailExtractor {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	return &DetailExtractor{
		profile: profile,
		source:  source,
		baseURL: base,
		debug:   enableDebugLogging,
	}
}

// Extract parses a product detail page into a PlantDetail. The page title
// is the one required anchor: without it there is no record and
// ErrNoRecord is returned. Every other field group is extracted
// independently, so a malformed block never aborts the rest.
func (e *DetailExtractor) Extract(html, pageURL string) (*domain.PlantDetail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, domain.ErrNoRecord
	}
	root := doc.Selection

	name := ExtractField(root, e.profile.Title)
	if name == "" {
		return nil, domain.ErrNoRecord
	}

	detail := domain.NewPlantDetail()
	detail.URL = pageURL
	detail.Source = e.source

	latin := ExtractField(root, e.profile.LatinName)
	detail.FrenchName, detail.LatinName = SplitLatinName(name, latin)

	detail.Description = ExtractField(root, e.profile.ShortDescription)
	detail.LongDescription = ExtractField(root, e.profile.LongDescription)

	e.extractBreadcrumb(root, detail)
	e.extractSpecBlocks(root, detail)
	e.extractSections(root, detail)
	e.extractCalendars(root, detail)
	detail.Formats = e.extractFormats(root)
	e.extractImages(root, detail)

	if detail.PlantType == "" {
		detail.PlantType = ClassifyPlantType(detail.FrenchName, detail.Description)
	}
	detail.Icon = PlantIcon(detail.FrenchName, detail.PlantType)

	rawPrice := ExtractField(root, e.profile.Price)
	detail.Price = ParsePrice(rawPrice)
	detail.PriceValue = ParsePriceValue(rawPrice)
	if detail.PriceValue == 0 && len(detail.Formats) > 0 && detail.Formats[0].Price > 0 {
		detail.PriceValue = detail.Formats[0].Price
		detail.Price = FormatPrice(detail.PriceValue)
	}

	if e.debug {
		log.Printf("[DETAIL] %s: %q (%s), %d formats, %d images",
			e.source, detail.FrenchName, detail.LatinName, len(detail.Formats), len(detail.Gallery))
	}
	return detail, nil
}

// extractBreadcrumb reads the navigation trail: the home entry is
// dropped, the first remaining entry is the plant type and the second,
// when present, the subcategory.
func (e *DetailExtractor) extractBreadcrumb(root *goquery.Selection, detail *domain.PlantDetail) {
	var trail []string
	root.Find(e.profile.Breadcrumb).Each(func(_ int, sel *goquery.Selection) {
		entry := CleanText(sel.Text())
		if entry == "" {
			return
		}
		lower := strings.ToLower(entry)
		if lower == "accueil" || lower == "home" {
			return
		}
		trail = append(trail, entry)
	})

	if len(trail) > 0 {
		detail.PlantType = trail[0]
	}
	if len(trail) > 1 {
		detail.Subcategory = trail[1]
	}
}

// extractSpecBlocks reads elements tagged with a machine-readable spec
// key and maps them 1:1 onto record fields. Unknown keys are ignored.
func (e *DetailExtractor) extractSpecBlocks(root *goquery.Selection, detail *domain.PlantDetail) {
	root.Find(e.profile.SpecBlock).Each(func(_ int, sel *goquery.Selection) {
		key := strings.ToLower(CleanText(sel.AttrOr(e.profile.SpecAttr, "")))
		assign, ok := specAttrFields[key]
		if !ok {
			return
		}
		if value := CleanText(sel.Text()); value != "" {
			assign(detail, value)
		}
	})
}

// extractSections walks the labeled content sections and dispatches each
// label/value row through the section's rule list.
func (e *DetailExtractor) extractSections(root *goquery.Selection, detail *domain.PlantDetail) {
	root.Find(e.profile.Section).Each(func(_ int, section *goquery.Selection) {
		heading := strings.ToLower(CleanText(section.Find(e.profile.SectionTitle).First().Text()))
		if heading == "" {
			return
		}

		var rules []labelRule
		for _, key := range sectionOrder {
			if strings.Contains(heading, key) {
				rules = sectionRules[key]
				break
			}
		}
		if rules == nil {
			return
		}

		section.Find(e.profile.Row).Each(func(_ int, row *goquery.Selection) {
			label := strings.ToLower(CleanText(row.Find(e.profile.RowLabel).First().Text()))
			value := CleanText(row.Find(e.profile.RowValue).First().Text())
			if label == "" || value == "" {
				return
			}
			for _, rule := range rules {
				if strings.Contains(label, rule.keyword) {
					rule.assign(detail, value)
					return
				}
			}
		})
	})
}

// extractCalendars reads month→status calendar blocks
func (e *DetailExtractor) extractCalendars(root *goquery.Selection, detail *domain.PlantDetail) {
	root.Find(e.profile.Calendar).Each(func(_ int, block *goquery.Selection) {
		name := strings.ToLower(block.AttrOr("data-calendar", ""))
		target, ok := calendarFields[name]
		if !ok {
			return
		}
		calendar := target(detail)
		block.Find("[data-month]").Each(func(_ int, month *goquery.Selection) {
			m := strings.ToLower(month.AttrOr("data-month", ""))
			status := CleanText(month.AttrOr("data-status", ""))
			if m != "" && status != "" {
				calendar[m] = status
			}
		})
	})
}

// extractFormats reads every purchasable-format block. Partially-present
// fields are left at their zero value instead of dropping the format.
func (e *DetailExtractor) extractFormats(root *goquery.Selection) []domain.PlantFormat {
	formats := []domain.PlantFormat{}
	root.Find(e.profile.Format).Each(func(_ int, block *goquery.Selection) {
		format := domain.PlantFormat{
			Reference: CleanText(block.AttrOr("data-ref", "")),
			Format:    CleanText(block.Find(".format-label, .format-name").First().Text()),
			Price:     ParsePriceValue(block.Find(".format-price").First().Text()),
		}

		if height := CleanText(block.Find(".format-height, .delivered-height").First().Text()); height != "" {
			if m := heightRangeRegex.FindStringSubmatch(height); m != nil {
				format.DeliveredHeight = m[1]
			}
		}

		block.Find(".tier-prices [data-qty]").Each(func(_ int, tier *goquery.Selection) {
			qty, err := strconv.Atoi(CleanText(tier.AttrOr("data-qty", "")))
			if err != nil || qty <= 0 {
				return
			}
			price := ParseDecimal(tier.Text())
			if price <= 0 {
				return
			}
			if format.TierPrices == nil {
				format.TierPrices = map[int]float64{}
			}
			format.TierPrices[qty] = price
		})

		if stockText := block.Find(".stock, .availability").First().Text(); stockText != "" {
			if m := stockRegex.FindStringSubmatch(stockText); m != nil {
				format.Stock, _ = strconv.Atoi(m[1])
			}
		}

		block.Find(".badge").Each(func(_ int, badge *goquery.Selection) {
			if text := CleanText(badge.Text()); text != "" {
				format.Badges = append(format.Badges, text)
			}
		})

		if format.Reference != "" || format.Format != "" || format.Price > 0 {
			formats = append(formats, format)
		}
	})
	return formats
}

// extractImages fills the gallery and resolves the primary image by
// trying, in order: an image whose alt text matches the plant's full
// name, the structural main-image selectors, and finally the first
// responsive image served from a product-media path. An empty primary
// image is not an error.
func (e *DetailExtractor) extractImages(root *goquery.Selection, detail *domain.PlantDetail) {
	root.Find(e.profile.Gallery).Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", img.AttrOr("data-src", ""))
		if src != "" {
			detail.Gallery = append(detail.Gallery, e.resolveURL(src))
		}
	})

	// Strategy 1: alt text matching the plant name
	root.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		alt := CleanText(img.AttrOr("alt", ""))
		if alt == "" || !strings.EqualFold(alt, detail.FrenchName) {
			return true
		}
		if src := img.AttrOr("src", ""); src != "" {
			detail.MainImage = e.resolveURL(src)
			return false
		}
		return true
	})
	if detail.MainImage != "" {
		return
	}

	// Strategy 2: structural main-image hint
	if src := ExtractField(root, e.profile.MainImage); src != "" {
		detail.MainImage = e.resolveURL(src)
		return
	}

	// Strategy 3: responsive image from a product-media path
	root.Find("img[srcset]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		srcset := img.AttrOr("srcset", "")
		if !strings.Contains(srcset, "/media/") && !strings.Contains(srcset, "product") {
			return true
		}
		if best := bestSrcsetURL(srcset); best != "" {
			detail.MainImage = e.resolveURL(best)
			return false
		}
		if src := img.AttrOr("src", ""); src != "" {
			detail.MainImage = e.resolveURL(src)
			return false
		}
		return true
	})
}

// bestSrcsetURL parses a srcset attribute and returns the URL with the
// maximum width descriptor. Entries without a width descriptor are
// skipped; an empty result tells the caller to fall back to plain src.
func bestSrcsetURL(srcset string) string {
	best := ""
	bestWidth := -1
	for _, entry := range strings.Split(srcset, ",") {
		fields := strings.Fields(entry)
		if len(fields) < 2 {
			continue
		}
		m := srcsetWidthRegex.FindStringSubmatch(fields[len(fields)-1])
		if m == nil {
			continue
		}
		width, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if width > bestWidth {
			bestWidth = width
			best = fields[0]
		}
	}
	return best
}

func (e *DetailExtractor) resolveURL(href string) string {
	if href == "" || e.baseURL == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return e.baseURL.ResolveReference(ref).String()
}
