package usecase

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profiles bundles the selector profiles for the extractors that read
// site markup. Source sites move their classes around; keeping the
// selectors in an optional YAML file makes drift fixable without a
// rebuild.
type Profiles struct {
	Listing ListingProfile
	Detail  DetailProfile
}

// DefaultProfiles returns the built-in selector chains
func DefaultProfiles() Profiles {
	return Profiles{
		Listing: DefaultListingProfile(),
		Detail:  DefaultDetailProfile(),
	}
}

// profileFile mirrors the YAML document. Sections are pointers so an
// absent section keeps its default.
type profileFile struct {
	Listing *ListingProfile `yaml:"listing"`
	Detail  *DetailProfile  `yaml:"detail"`
}

// LoadProfiles reads selector overrides from a YAML file on top of the
// defaults. An empty path returns the defaults unchanged.
func LoadProfiles(path string) (Profiles, error) {
	profiles := DefaultProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return profiles, fmt.Errorf("reading selector profiles: %w", err)
	}

	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return profiles, fmt.Errorf("parsing selector profiles: %w", err)
	}

	if file.Listing != nil {
		profiles.Listing = *file.Listing
	}
	if file.Detail != nil {
		profiles.Detail = *file.Detail
	}
	return profiles, nil
}
