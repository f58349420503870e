package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// Package-level compiled price patterns
var (
	// priceRegex matches a decimal number followed by the euro marker,
	// accepting both "," and "." as decimal separator ("24,90 €", "8.50€")
	priceRegex = regexp.MustCompile(`(\d+(?:[.,]\d{1,2})?)\s*€`)

	// decimalRegex matches a bare decimal number
	decimalRegex = regexp.MustCompile(`\d+(?:[.,]\d{1,2})?`)
)

// PriceUnavailable is the display value used when no price can be found.
// Price is best-effort metadata, never a required field.
const PriceUnavailable = "Prix non disponible"

// ParsePrice extracts a currency-formatted price from raw text and
// returns it in display form, keeping the decimal separator as written
// on the page ("24,90 €" stays "24,90 €"). When no price pattern is
// present the sentinel PriceUnavailable is returned.
func ParsePrice(raw string) string {
	m := priceRegex.FindStringSubmatch(raw)
	if m == nil {
		return PriceUnavailable
	}
	return m[1] + " €"
}

// ParsePriceValue extracts the numeric value of a price, accepting either
// "," or "." as decimal separator. Returns 0 when no price is present.
func ParsePriceValue(raw string) float64 {
	m := priceRegex.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	return parseDecimal(m[1])
}

// ParseDecimal reads the first decimal number out of raw, with or without
// a currency marker. Tier-price cells carry bare numbers ("11,90").
func ParseDecimal(raw string) float64 {
	m := decimalRegex.FindString(raw)
	if m == "" {
		return 0
	}
	return parseDecimal(m)
}

// FormatPrice renders a numeric price in the site's display style,
// decimal comma included.
func FormatPrice(value float64) string {
	return strings.Replace(strconv.FormatFloat(value, 'f', 2, 64), ".", ",", 1) + " €"
}

func parseDecimal(s string) float64 {
	value, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return value
}
