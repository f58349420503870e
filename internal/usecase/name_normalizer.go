package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for latin name normalization
var (
	// Matches quoted cultivar names: 'Hidcote', "Annabelle"
	cultivarRegex = regexp.MustCompile(`['"].*?['"]`)

	// Matches subspecies/variety/form/cultivar markers and their tail
	qualifierRegex = regexp.MustCompile(`(?i)\b(subsp\.|var\.|f\.|cv\.|×).*$`)
)

// NormalizeLatinName canonicalizes a latin binomial into the cross-source
// join key: quoted cultivar names are removed, subspecies/variety
// qualifiers and everything after them are stripped, and only the first
// two tokens (genus + species) are kept, lower-cased. The function is
// idempotent.
//
//	"Lavandula angustifolia 'Hidcote'" → "lavandula angustifolia"
//	"Rosa 'Pierre de Ronsard'"         → "rosa"
//	"Olea europaea subsp. europaea"    → "olea europaea"
func NormalizeLatinName(name string) string {
	if name == "" {
		return ""
	}

	cleaned := cultivarRegex.ReplaceAllString(name, "")
	cleaned = qualifierRegex.ReplaceAllString(cleaned, "")

	parts := strings.Fields(cleaned)
	switch {
	case len(parts) >= 2:
		return strings.ToLower(parts[0] + " " + parts[1])
	case len(parts) == 1:
		return strings.ToLower(parts[0])
	default:
		return ""
	}
}

// Genus returns the genus token (first word) of a latin name, lower-cased.
func Genus(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(parts[0])
}

// SameGenus reports whether two latin names share their genus token.
func SameGenus(a, b string) bool {
	ga := Genus(a)
	return ga != "" && ga == Genus(b)
}
