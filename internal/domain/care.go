package domain

// Treatment pairs an ailment name with its recommended treatment
type Treatment struct {
	Name      string `json:"nom"`
	Treatment string `json:"traitement"`
}

// CareRecord represents plant-care data extracted from a content site
// (watering, feeding, diseases, pests, propagation)
type CareRecord struct {
	FrenchName string `json:"nom_francais"`
	LatinName  string `json:"nom_latin"`
	URL        string `json:"url"`

	// Watering
	WateringFrequency string `json:"arrosage_frequence"`
	WateringNeeds     string `json:"arrosage_besoins"`
	WateringAdvice    string `json:"arrosage_conseils"`

	// Feeding
	FeedingPeriod    string `json:"fertilisation_periode"`
	FeedingType      string `json:"fertilisation_type"`
	FeedingFrequency string `json:"fertilisation_frequence"`

	// Diseases and pests
	Diseases []Treatment `json:"maladies"`
	Pests    []Treatment `json:"parasites"`

	// Propagation
	PropagationMethods []string `json:"multiplication_methodes"`
	PropagationPeriod  string   `json:"multiplication_periode"`
	DivisionFrequency  string   `json:"division_frequence"`
	DivisionPeriod     string   `json:"division_periode"`

	// Other upkeep
	Mulching      string `json:"paillage"`
	Staking       string `json:"tuteurage"`
	CutbackPeriod string `json:"rabattage_periode"`
}

// NewCareRecord returns a care record with every list field initialized.
func NewCareRecord(url string) *CareRecord {
	return &CareRecord{
		URL:                url,
		Diseases:           []Treatment{},
		Pests:              []Treatment{},
		PropagationMethods: []string{},
	}
}

// Ref projects the record down to its matching identity.
func (c *CareRecord) Ref() *PlantRef {
	return &PlantRef{FrenchName: c.FrenchName, LatinName: c.LatinName}
}
