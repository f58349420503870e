package domain

// PlantSummary represents a plant summary extracted from a search-results page
type PlantSummary struct {
	FrenchName  string  `json:"nom_francais"`
	LatinName   string  `json:"nom_latin"`
	Exposure    string  `json:"exposition"`
	PlantType   string  `json:"type_plante"`
	Price       string  `json:"prix"`
	PriceValue  float64 `json:"prix_valeur,omitempty"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	URL         string  `json:"url"`
	Source      string  `json:"source"` // e.g., "promesse"
}

// PlantFormat represents one purchasable format on a product page.
// Partially-present fields stay at their zero value and are omitted
// from the serialized entry.
type PlantFormat struct {
	Reference       string          `json:"reference,omitempty"`
	Format          string          `json:"format,omitempty"`
	DeliveredHeight string          `json:"hauteur_livraison,omitempty"`
	Price           float64         `json:"prix,omitempty"`
	TierPrices      map[int]float64 `json:"prix_paliers,omitempty"`
	Stock           int             `json:"stock,omitempty"`
	Badges          []string        `json:"badges,omitempty"`
}

// PlantDetail represents the full attribute record extracted from a product
// detail page. Every optional field defaults to an empty string, list or
// mapping; the serialized form never carries null values.
type PlantDetail struct {
	FrenchName string  `json:"nom_francais"`
	LatinName  string  `json:"nom_latin"`
	Price      string  `json:"prix"`
	PriceValue float64 `json:"prix_valeur,omitempty"`
	Icon       string  `json:"icon"`
	URL        string  `json:"url"`
	Source     string  `json:"source"`

	// Taxonomy
	Genus   string `json:"genre"`
	Species string `json:"espece"`
	Family  string `json:"famille"`
	Origin  string `json:"origine"`

	// Categorization
	PlantType   string `json:"type_plante"`
	Subcategory string `json:"sous_categorie"`

	// Descriptions
	Description     string `json:"description"`
	LongDescription string `json:"description_longue"`

	// Site conditions
	Exposure      string `json:"exposition"`
	Hardiness     string `json:"rusticite"`
	HardinessZone string `json:"zone_rusticite"`
	SoilMoisture  string `json:"humidite_sol"`

	// Dimensions
	Height     string `json:"hauteur"`
	Width      string `json:"largeur"`
	FlowerSize string `json:"taille_fleur"`

	// Growth habit
	Habit string `json:"port"`

	// Bloom
	BloomColor    string `json:"couleur_floraison"`
	BloomPeriod   string `json:"periode_floraison"`
	Inflorescence string `json:"inflorescence"`

	// Foliage
	FoliagePersistence string `json:"feuillage"`
	FoliageColor       string `json:"couleur_feuillage"`

	// Planting calendar
	PlantingBest       string            `json:"periode_plantation_ideale"`
	PlantingAcceptable string            `json:"periode_plantation_possible"`
	BloomCalendar      map[string]string `json:"calendrier_floraison"`
	PlantingCalendar   map[string]string `json:"calendrier_plantation"`

	// Cultivation constraints
	SoilPH     string `json:"ph_sol"`
	SoilType   string `json:"type_sol"`
	Climate    string `json:"climat"`
	Difficulty string `json:"difficulte"`

	// Care
	PruningDescription string `json:"taille_description"`
	PruningPeriod      string `json:"periode_taille"`
	PruningFrequency   string `json:"frequence_taille"`
	DiseaseResistance  string `json:"resistance_maladies"`
	WinterProtection   string `json:"protection_hivernale"`

	// Purchasable formats and images
	Formats   []PlantFormat `json:"formats"`
	Gallery   []string      `json:"images"`
	MainImage string        `json:"image_principale"`
}

// SearchResult groups local and freshly-scraped results for one query
type SearchResult struct {
	Local      []PlantSummary `json:"local"`
	Web        []PlantSummary `json:"web"`
	TotalFound int            `json:"total_found"`
}

// NewPlantDetail returns a detail record with every collection field
// initialized, so callers never observe a nil list or mapping.
func NewPlantDetail() *PlantDetail {
	return &PlantDetail{
		BloomCalendar:    map[string]string{},
		PlantingCalendar: map[string]string{},
		Formats:          []PlantFormat{},
		Gallery:          []string{},
	}
}

// Summary projects the detail record down to its listing form.
func (d *PlantDetail) Summary() PlantSummary {
	return PlantSummary{
		FrenchName:  d.FrenchName,
		LatinName:   d.LatinName,
		Exposure:    d.Exposure,
		PlantType:   d.PlantType,
		Price:       d.Price,
		PriceValue:  d.PriceValue,
		Description: d.Description,
		Icon:        d.Icon,
		URL:         d.URL,
		Source:      d.Source,
	}
}
