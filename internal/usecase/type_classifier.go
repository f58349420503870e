package usecase

import "strings"

// DefaultPlantType is returned when no classification rule matches.
const DefaultPlantType = "Plante"

// DefaultPlantIcon is the generic fallback icon.
const DefaultPlantIcon = "🌿"

// typeRule maps a keyword set onto a plant category.
type typeRule struct {
	category string
	keywords []string
}

// plantTypeRules is evaluated top to bottom and the first match wins, so
// the most botanically specific categories must stay first. "rosier"
// appears in both the rose rule and the shrub rule; the ordering is what
// keeps a rose from classifying as a shrub.
var plantTypeRules = []typeRule{
	{"Rosier", []string{"rosier", "rose "}},
	{"Succulente", []string{"succulente", "cactus", "cactée", "crassula", "echeveria", "sedum", "aloe"}},
	{"Graminée", []string{"graminée", "carex", "miscanthus", "stipa", "fétuque", "pennisetum"}},
	{"Grimpante", []string{"grimpant", "clématite", "glycine", "chèvrefeuille", "jasmin", "lierre"}},
	{"Aromatique", []string{"aromatique", "thym", "romarin", "basilic", "menthe", "ciboulette", "persil", "origan"}},
	{"Fruitier", []string{"fruitier", "pommier", "poirier", "cerisier", "fraisier", "framboisier", "abricotier", "prunier", "figuier", "vigne"}},
	{"Arbre", []string{"arbre", "chêne", "érable", "bouleau", "olivier", "tilleul", "hêtre", "conifère", "sapin"}},
	{"Arbuste", []string{"arbuste", "buisson", "haie", "hortensia", "lilas", "forsythia", "rosier", "buddleia"}},
	{"Vivace", []string{"vivace", "lavande", "pivoine", "hosta", "géranium", "iris", "hellébore"}},
	{"Annuelle", []string{"annuelle", "pétunia", "cosmos", "zinnia", "capucine", "tomate", "courgette"}},
}

// iconRule maps a keyword set onto a display icon.
type iconRule struct {
	icon     string
	keywords []string
}

// plantIconRules follows the same first-match-wins discipline as
// plantTypeRules.
var plantIconRules = []iconRule{
	{"🌹", []string{"rose", "rosier"}},
	{"🌵", []string{"cactus", "succulente", "aloe", "agave"}},
	{"🌾", []string{"graminée", "carex", "miscanthus", "stipa"}},
	{"🍅", []string{"tomate", "légume", "potager", "fraisier", "framboisier", "courgette", "pommier", "poirier"}},
	{"🌺", []string{"hibiscus", "tropical", "exotique", "hortensia"}},
	{"🌸", []string{"cerisier", "magnolia", "pivoine", "fleur", "floraison"}},
	{"🌳", []string{"arbre", "chêne", "érable", "olivier", "conifère"}},
}

// ClassifyPlantType maps a free-text name and description onto one of the
// fixed plant categories. The two inputs are concatenated and matched
// case-insensitively against the ordered rule table.
func ClassifyPlantType(name, description string) string {
	text := strings.ToLower(name + " " + description)
	for _, rule := range plantTypeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}
	return DefaultPlantType
}

// PlantIcon picks a display icon from the plant name and its category.
func PlantIcon(name, category string) string {
	text := strings.ToLower(name + " " + category)
	for _, rule := range plantIconRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.icon
			}
		}
	}
	return DefaultPlantIcon
}
