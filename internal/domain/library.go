package domain

import "time"

// LibraryEntry represents one plant in the user's curated library
type LibraryEntry struct {
	ID        int64        `json:"id"`
	Plant     PlantSummary `json:"plant"`
	Quantity  int          `json:"quantity"`
	Notes     string       `json:"notes"`
	PhotoPath string       `json:"photo_path,omitempty"`
	AddedAt   time.Time    `json:"date_added"`
}

// LibraryStats aggregates the library for the stats endpoint
type LibraryStats struct {
	TotalEntries int            `json:"total"`
	TotalPlants  int            `json:"total_plants"`
	ByType       map[string]int `json:"types"`
}
