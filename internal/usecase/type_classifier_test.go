package usecase

import (
	"testing"
)

func TestClassifyPlantType(t *testing.T) {
	testCases := []struct {
		name        string
		plantName   string
		description string
		want        string
	}{
		{
			name:      "rosier beats the shrub rule",
			plantName: "Rosier grimpant Pierre de Ronsard",
			want:      "Rosier", // "rosier" is also a shrub keyword; rule order decides
		},
		{
			name:      "named rose cultivar stays a rosier",
			plantName: "Rosier David Austin",
			want:      "Rosier",
		},
		{
			name:      "olivier classifies as tree",
			plantName: "Olivier",
			want:      "Arbre",
		},
		{
			name:      "lavande classifies as perennial",
			plantName: "Lavande vraie",
			want:      "Vivace",
		},
		{
			name:      "hortensia classifies as shrub",
			plantName: "Hortensia 'Annabelle'",
			want:      "Arbuste",
		},
		{
			name:      "ornamental grass",
			plantName: "Miscanthus sinensis",
			want:      "Graminée",
		},
		{
			name:      "succulent",
			plantName: "Echeveria elegans",
			want:      "Succulente",
		},
		{
			name:      "vegetable classifies as annual",
			plantName: "Tomate cerise",
			want:      "Annuelle",
		},
		{
			name:      "fruit tree",
			plantName: "Cerisier du Japon",
			want:      "Fruitier",
		},
		{
			name:        "description contributes keywords",
			plantName:   "Incrediball",
			description: "Un arbuste compact idéal en haie libre",
			want:        "Arbuste",
		},
		{
			name:      "unknown name falls back to default",
			plantName: "Machin bidule",
			want:      "Plante",
		},
		{
			name:      "empty input falls back to default",
			plantName: "",
			want:      "Plante",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyPlantType(tc.plantName, tc.description)
			if got != tc.want {
				t.Errorf("ClassifyPlantType(%q, %q) = %q, want %q",
					tc.plantName, tc.description, got, tc.want)
			}
		})
	}
}

func TestPlantIcon(t *testing.T) {
	testCases := []struct {
		name      string
		plantName string
		category  string
		want      string
	}{
		{"rose", "Rosier grimpant", "Rosier", "🌹"},
		{"cactus", "Echeveria elegans", "Succulente", "🌵"},
		{"grass", "Miscanthus sinensis", "Graminée", "🌾"},
		{"vegetable", "Tomate cerise", "Annuelle", "🍅"},
		{"hortensia", "Hortensia 'Annabelle'", "Arbuste", "🌺"},
		{"flowering cherry before tree", "Cerisier du Japon", "Arbre", "🌸"},
		{"tree", "Olivier", "Arbre", "🌳"},
		{"generic fallback", "Lavande vraie", "Vivace", "🌿"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := PlantIcon(tc.plantName, tc.category)
			if got != tc.want {
				t.Errorf("PlantIcon(%q, %q) = %q, want %q",
					tc.plantName, tc.category, got, tc.want)
			}
		})
	}
}
