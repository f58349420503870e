package usecase

import (
	"testing"
)

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{"comma separator kept", "24,90 €", "24,90 €"},
		{"dot separator kept", "Dès 8.50€ port compris", "8.50 €"},
		{"surrounding text stripped", "À partir de 12,00 € TTC", "12,00 €"},
		{"no euro marker", "ajouter au panier", "Prix non disponible"},
		{"empty input", "", "Prix non disponible"},
		{"integer price", "15 €", "15 €"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParsePrice(tc.raw)
			if got != tc.want {
				t.Errorf("ParsePrice(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParsePriceValue(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want float64
	}{
		{"comma decimal", "24,90 €", 24.90},
		{"dot decimal", "8.50€", 8.50},
		{"no price yields zero", "sur demande", 0},
		{"integer price", "15 €", 15},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParsePriceValue(tc.raw)
			if got != tc.want {
				t.Errorf("ParsePriceValue(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseDecimal(t *testing.T) {
	testCases := []struct {
		raw  string
		want float64
	}{
		{"11,90", 11.90}, // tier-price cells carry bare numbers
		{"19.90", 19.90},
		{"12", 12},
		{"", 0},
		{"n/a", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			got := ParseDecimal(tc.raw)
			if got != tc.want {
				t.Errorf("ParseDecimal(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	testCases := []struct {
		value float64
		want  string
	}{
		{24.9, "24,90 €"},
		{12.5, "12,50 €"},
		{15, "15,00 €"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			got := FormatPrice(tc.value)
			if got != tc.want {
				t.Errorf("FormatPrice(%v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}
