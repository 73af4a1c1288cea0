package export

import (
	"bytes"
	"testing"

	"github.com/foodlens/foodlensgo/internal/models"
)

func TestSummaryCard(t *testing.T) {
	score := 72
	record := &models.ProductRecord{
		ID:          "0d1a4c72-2f13-4b2e-9b5a-3f8f1c2d4e5f",
		Name:        "Organic Milk",
		Brand:       "Green Valley",
		Barcode:     "4006381333931",
		HealthScore: &score,
	}
	record.SetIngredients([]string{"Milk", "Vitamin D3"})
	record.SetAllergens([]string{"Milk"})

	pdf, err := SummaryCard(record)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output is not a PDF (%d bytes)", len(pdf))
	}
}

func TestSummaryCardMinimalRecord(t *testing.T) {
	record := &models.ProductRecord{ID: "abc", Name: "Unknown Product"}

	pdf, err := SummaryCard(record)
	if err != nil {
		t.Fatalf("minimal record export failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Error("empty output")
	}
}

func TestSummaryCardNilRecord(t *testing.T) {
	if _, err := SummaryCard(nil); err == nil {
		t.Error("nil record must error")
	}
}
