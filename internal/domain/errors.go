package domain

import "errors"

var (
	// ErrPlantNotFound is returned when a plant cannot be located on a source site
	ErrPlantNotFound = errors.New("plant not found on source site")

	// ErrNoRecord is returned when a document yields no usable record
	ErrNoRecord = errors.New("no record extracted from document")

	// ErrLowConfidence is returned when the match confidence is below the threshold
	ErrLowConfidence = errors.New("match confidence below threshold")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when a mapping is not present in the match cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrSourceUnavailable is returned when a source site request fails
	ErrSourceUnavailable = errors.New("source site request failed")

	// ErrEntryNotFound is returned when a library entry does not exist
	ErrEntryNotFound = errors.New("library entry not found")
)
