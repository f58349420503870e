package usecase

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FieldStrategy describes one way of locating a field inside a document.
// A strategy reads the text content of the first element matched by
// Selector, or the named attribute when Attr is set. When Match is set,
// the value must match the pattern; if the pattern has a capture group,
// the first group becomes the extracted value.
type FieldStrategy struct {
	Selector string `yaml:"selector"`
	Attr     string `yaml:"attr,omitempty"`
	Match    string `yaml:"match,omitempty"`
}

// ExtractField applies each strategy in order against root and returns
// the first value that is non-empty after whitespace collapsing. Missing
// fields are not errors: when no strategy matches, the empty string is
// returned, so higher-level extractors can express "try A, else B, else C"
// without repeating nil-checks.
func ExtractField(root *goquery.Selection, strategies []FieldStrategy) string {
	for _, strategy := range strategies {
		if text := applyStrategy(root, strategy); text != "" {
			return text
		}
	}
	return ""
}

// applyStrategy scans every element matched by the strategy's selector and
// returns the first non-empty value it yields.
func applyStrategy(root *goquery.Selection, strategy FieldStrategy) string {
	var pattern *regexp.Regexp
	if strategy.Match != "" {
		var err error
		pattern, err = regexp.Compile(strategy.Match)
		if err != nil {
			return ""
		}
	}

	result := ""
	root.Find(strategy.Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := sel.Text()
		if strategy.Attr != "" {
			raw = sel.AttrOr(strategy.Attr, "")
		}

		text := CleanText(raw)
		if text == "" {
			return true
		}

		if pattern != nil {
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				return true
			}
			if len(m) > 1 {
				text = CleanText(m[1])
			}
			if text == "" {
				return true
			}
		}

		result = text
		return false
	})

	return result
}

// CleanText collapses every run of whitespace, newlines included, into a
// single space and trims the result.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most max characters. Multi-byte characters
// count as one.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
