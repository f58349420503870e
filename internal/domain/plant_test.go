package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPlantDetailSerializesWithoutNulls(t *testing.T) {
	detail := NewPlantDetail()
	detail.FrenchName = "Lavande vraie"

	data, err := json.Marshal(detail)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := string(data)
	if strings.Contains(body, "null") {
		t.Errorf("serialized detail carries null: %s", body)
	}
	for _, want := range []string{`"formats":[]`, `"images":[]`, `"calendrier_floraison":{}`, `"calendrier_plantation":{}`} {
		if !strings.Contains(body, want) {
			t.Errorf("serialized detail missing %s", want)
		}
	}
}

func TestPlantDetailSummary(t *testing.T) {
	detail := NewPlantDetail()
	detail.FrenchName = "Hortensia 'Annabelle'"
	detail.LatinName = "Hydrangea arborescens"
	detail.PlantType = "Arbuste"
	detail.Price = "24,90 €"
	detail.PriceValue = 24.9
	detail.URL = "https://x.example/hortensia"
	detail.Source = "promesse"

	summary := detail.Summary()
	if summary.FrenchName != detail.FrenchName || summary.LatinName != detail.LatinName {
		t.Errorf("summary = %+v", summary)
	}
	if summary.PriceValue != 24.9 || summary.URL != detail.URL || summary.Source != "promesse" {
		t.Errorf("summary = %+v", summary)
	}
}

func TestCareRecordSerializesWithoutNulls(t *testing.T) {
	record := NewCareRecord("https://conseils.example/lavande")

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := string(data)
	for _, want := range []string{`"maladies":[]`, `"parasites":[]`, `"multiplication_methodes":[]`} {
		if !strings.Contains(body, want) {
			t.Errorf("serialized record missing %s", want)
		}
	}
}

func TestCareRecordRef(t *testing.T) {
	record := NewCareRecord("https://x.example/c")
	record.FrenchName = "Lavande officinale"
	record.LatinName = "Lavandula angustifolia"

	ref := record.Ref()
	if ref.FrenchName != "Lavande officinale" || ref.LatinName != "Lavandula angustifolia" {
		t.Errorf("ref = %+v", ref)
	}
}
