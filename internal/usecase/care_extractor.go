package usecase

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/plantheque/backend/internal/domain"
)

// adviceLimit caps free-text care advice at the first 200 characters
const adviceLimit = 200

// treatmentMinLength filters out empty-looking list items
const treatmentMinLength = 6

// Keyword sets locating the care sections inside a content page
var (
	wateringKeywords    = []string{"arrosage", "besoins en eau", "irrigation"}
	feedingKeywords     = []string{"fertilisation", "engrais", "fertiliser", "apport", "amendement"}
	diseaseKeywords     = []string{"maladie", "pathologie", "infection"}
	pestKeywords        = []string{"parasite", "insecte", "ravageur", "puceron", "cochenille"}
	propagationKeywords = []string{"multiplication", "bouturage", "semis", "marcottage", "division"}
)

// feedingMonths is probed in order; the first period mentioned in the
// feeding section wins.
var feedingMonths = []string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	"printemps", "été", "automne", "hiver",
}

// careLatinStrategies locates the latin name on a care page, usually an
// italic or scientific-name styled span next to the title.
var careLatinStrategies = []FieldStrategy{
	{Selector: "span[class*=latin], p[class*=latin], em[class*=latin]"},
	{Selector: "span[class*=scientific], em[class*=scientific]"},
	{Selector: "span[class*=italic], p[class*=italic], em[class*=italic]"},
	{Selector: "h1 em"},
}

// CareExtractor turns a plant-care content page into a care record
type CareExtractor struct {
	debug bool
}

// NewCareExtractor creates a care extractor
func NewCareExtractor(enableDebugLogging bool) *CareExtractor {
	return &CareExtractor{debug: enableDebugLogging}
}

// Extract parses a care page into a CareRecord. The page title is the
// required anchor; without it there is no record. Every care section is
// extracted independently and simply stays empty when absent.
func (e *CareExtractor) Extract(html, pageURL string) (*domain.CareRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, domain.ErrNoRecord
	}

	title := CleanText(doc.Find("h1").First().Text())
	if title == "" {
		return nil, domain.ErrNoRecord
	}

	record := domain.NewCareRecord(pageURL)
	record.FrenchName = title
	record.LatinName = ExtractField(doc.Selection, careLatinStrategies)

	e.extractWatering(doc, record)
	e.extractFeeding(doc, record)
	record.Diseases = extractTreatments(doc, diseaseKeywords)
	record.Pests = extractTreatments(doc, pestKeywords)
	e.extractPropagation(doc, record)

	if e.debug {
		log.Printf("[CARE] %q (%s): watering=%v diseases=%d pests=%d methods=%d",
			record.FrenchName, record.LatinName,
			record.WateringFrequency != "", len(record.Diseases), len(record.Pests),
			len(record.PropagationMethods))
	}
	return record, nil
}

// extractWatering classifies the watering frequency mentioned in the
// watering section and keeps the section's opening text as advice.
func (e *CareExtractor) extractWatering(doc *goquery.Document, record *domain.CareRecord) {
	section := findCareSection(doc, wateringKeywords)
	if section == nil {
		return
	}

	text := CleanText(section.Text())
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "modéré") || strings.Contains(lower, "régulier"):
		record.WateringFrequency = "Modéré"
	case strings.Contains(lower, "abondant") || strings.Contains(lower, "copieux"):
		record.WateringFrequency = "Abondant"
	case strings.Contains(lower, "faible") || strings.Contains(lower, "peu"):
		record.WateringFrequency = "Faible"
	}

	record.WateringAdvice = Truncate(text, adviceLimit)
}

// extractFeeding reads the fertilization period and type out of the
// feeding section.
func (e *CareExtractor) extractFeeding(doc *goquery.Document, record *domain.CareRecord) {
	section := findCareSection(doc, feedingKeywords)
	if section == nil {
		return
	}

	lower := strings.ToLower(CleanText(section.Text()))
	for _, month := range feedingMonths {
		if strings.Contains(lower, month) {
			record.FeedingPeriod = capitalize(month)
			break
		}
	}

	switch {
	case strings.Contains(lower, "organique"):
		record.FeedingType = "Organique"
	case strings.Contains(lower, "compost"):
		record.FeedingType = "Compost"
	case strings.Contains(lower, "fumier"):
		record.FeedingType = "Fumier"
	}
}

// extractPropagation collects the propagation methods mentioned in the
// multiplication section, plus the division period for perennials.
func (e *CareExtractor) extractPropagation(doc *goquery.Document, record *domain.CareRecord) {
	section := findCareSection(doc, propagationKeywords)
	if section == nil {
		return
	}

	lower := strings.ToLower(CleanText(section.Text()))
	if strings.Contains(lower, "bouturage") {
		record.PropagationMethods = append(record.PropagationMethods, "Bouturage")
	}
	if strings.Contains(lower, "semis") {
		record.PropagationMethods = append(record.PropagationMethods, "Semis")
	}
	if strings.Contains(lower, "division") {
		record.PropagationMethods = append(record.PropagationMethods, "Division")
		if strings.Contains(lower, "printemps") {
			record.DivisionPeriod = "Printemps"
		} else if strings.Contains(lower, "automne") {
			record.DivisionPeriod = "Automne"
		}
	}
	if strings.Contains(lower, "marcottage") {
		record.PropagationMethods = append(record.PropagationMethods, "Marcottage")
	}
}

// extractTreatments collects name/treatment pairs from the list items of
// the section matching the keywords. Items split on the first ":" into
// name and treatment; too-short items are skipped.
func extractTreatments(doc *goquery.Document, keywords []string) []domain.Treatment {
	treatments := []domain.Treatment{}

	section := findCareSection(doc, keywords)
	if section == nil {
		return treatments
	}
	list := section.Closest("div, section, ul")
	if list.Length() == 0 {
		list = section
	}

	list.Find("li").Each(func(_ int, item *goquery.Selection) {
		text := CleanText(item.Text())
		if len([]rune(text)) < treatmentMinLength {
			return
		}
		name, treatment, found := strings.Cut(text, ":")
		if !found {
			treatments = append(treatments, domain.Treatment{Name: text})
			return
		}
		treatments = append(treatments, domain.Treatment{
			Name:      CleanText(name),
			Treatment: CleanText(treatment),
		})
	})
	return treatments
}

// findCareSection locates the tightest block of text mentioning one of
// the keywords: the matching element itself for paragraphs and list
// items, the enclosing container for headings. Returns nil when no
// section mentions any keyword.
func findCareSection(doc *goquery.Document, keywords []string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("p, li, h2, h3, h4").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.ToLower(sel.Text())
		for _, keyword := range keywords {
			if !strings.Contains(text, keyword) {
				continue
			}
			switch goquery.NodeName(sel) {
			case "p", "li":
				found = sel
			default:
				found = sel.Closest("div, section")
				if found.Length() == 0 {
					found = sel.Parent()
				}
			}
			return false
		}
		return true
	})
	return found
}

// capitalize upper-cases the first rune of a french word
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
