package domain

// PlantRef carries the identity fields used for cross-source matching
type PlantRef struct {
	FrenchName string `json:"nom_francais,omitempty"`
	LatinName  string `json:"nom_latin,omitempty"`
	Family     string `json:"famille,omitempty"`
}

// MatchConfidenceResult represents the outcome of a pairwise identity
// comparison: a 0-100 score plus the signals that contributed to it
type MatchConfidenceResult struct {
	Score int      `json:"score"`
	Basis []string `json:"basis,omitempty"`
}

// Resolution represents a resolved cross-source plant location
type Resolution struct {
	URL        string                 `json:"url"`
	Source     string                 `json:"source"` // e.g., "rustica"
	FromCache  bool                   `json:"from_cache"`
	Confidence *MatchConfidenceResult `json:"confidence,omitempty"`
}
