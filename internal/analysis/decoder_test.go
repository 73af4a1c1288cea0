package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/foodlens/foodlensgo/internal/models"
)

const milkResponse = `{
	"product_name": "Organic Milk",
	"brand": "Green Valley",
	"ingredients": [
		{"name": "Milk", "explanation": "whole milk base", "concern_level": "none"},
		{"name": "Vitamin D3", "explanation": "fortification", "concern_level": "low"}
	],
	"allergens": ["Milk"],
	"processing_level": "minimally",
	"natural_percentage": 90,
	"summary": "A minimally processed dairy product."
}`

func TestDecodeBareJSON(t *testing.T) {
	record, err := Decode(milkResponse)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if record.Name != "Organic Milk" {
		t.Errorf("name = %q", record.Name)
	}
	if record.Brand != "Green Valley" {
		t.Errorf("brand = %q", record.Brand)
	}
	if record.Category != models.CategoryOther {
		t.Errorf("missing category must default to Other, got %q", record.Category)
	}
	if got := record.IngredientNames(); len(got) != 2 || got[0] != "Milk" {
		t.Errorf("ingredients = %v", got)
	}
	if len(record.Allergens) != 1 || record.Allergens[0].Name != "Milk" {
		t.Errorf("allergens = %v", record.Allergens)
	}
	// minimally (85) averaged with 90% natural, integer-truncated
	if record.HealthScore == nil || *record.HealthScore != 87 {
		t.Errorf("health score = %v, want 87", record.HealthScore)
	}
	if record.NotesFormat != models.NotesFormatNarrative {
		t.Errorf("notes format = %q", record.NotesFormat)
	}
	if !strings.Contains(record.Notes, "Summary: A minimally processed dairy product.") {
		t.Errorf("notes missing summary section:\n%s", record.Notes)
	}
}

func TestDecodeFencedWithProseMatchesBare(t *testing.T) {
	wrapped := "Here is the analysis you asked for:\n```json\n" + milkResponse + "\n```\nLet me know if you need more."

	bare, err := Decode(milkResponse)
	if err != nil {
		t.Fatalf("bare decode failed: %v", err)
	}
	fenced, err := Decode(wrapped)
	if err != nil {
		t.Fatalf("fenced decode failed: %v", err)
	}

	if bare.Name != fenced.Name || bare.Category != fenced.Category {
		t.Errorf("fenced decode diverged: %q/%q vs %q/%q",
			bare.Name, bare.Category, fenced.Name, fenced.Category)
	}
	if *bare.HealthScore != *fenced.HealthScore {
		t.Errorf("score diverged: %d vs %d", *bare.HealthScore, *fenced.HealthScore)
	}
	if len(bare.Ingredients) != len(fenced.Ingredients) {
		t.Errorf("ingredient count diverged")
	}
}

func TestDecodeServiceError(t *testing.T) {
	_, err := Decode(`{"error": "not a food label"}`)

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Message != "not a food label" {
		t.Errorf("message = %q", svcErr.Message)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"prose only", "I could not analyze this label, sorry."},
		{"broken json", `{"product_name": "Milk", "ingredients": [`},
		{"missing ingredients", `{"product_name": "Milk"}`},
		{"wrong ingredient shape", `{"ingredients": "milk, sugar"}`},
	}

	for _, tc := range cases {
		_, err := Decode(tc.input)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: expected ErrMalformed, got %v", tc.name, err)
		}
	}
}

func TestDecodeDefaults(t *testing.T) {
	record, err := Decode(`{"ingredients": []}`)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if record.Name != "Unknown Product" {
		t.Errorf("name = %q, want Unknown Product", record.Name)
	}
	if record.Category != models.CategoryOther {
		t.Errorf("category = %q, want Other", record.Category)
	}
	if record.Ingredients == nil || record.Allergens == nil || record.Images == nil {
		t.Error("collections must never be nil")
	}
	if record.HealthScore == nil || *record.HealthScore != 50 {
		t.Errorf("unspecified processing level must score 50, got %v", record.HealthScore)
	}
}

func TestDecodeNutrition(t *testing.T) {
	record, err := Decode(`{
		"ingredients": [{"name": "Oats"}],
		"nutrition": {"calories": 389, "protein": 16.9, "carbs": 66.3, "fat": 6.9}
	}`)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if record.NutritionFacts == nil {
		t.Fatal("nutrition facts not attached")
	}
	if record.NutritionFacts.Calories != 389 || record.NutritionFacts.Protein != 16.9 {
		t.Errorf("nutrition = %+v", record.NutritionFacts)
	}
}

func TestComputeHealthScore(t *testing.T) {
	pct := func(n int) *int { return &n }

	cases := []struct {
		name        string
		level       string
		naturalPct  *int
		highConcern bool
		want        int
	}{
		{"minimally, no pct", "minimally", nil, false, 85},
		{"moderately, no pct", "moderately", nil, false, 60},
		{"highly, no pct", "highly", nil, false, 30},
		{"unknown level", "ultra", nil, false, 50},
		{"empty level", "", nil, false, 50},
		{"minimally with 90", "minimally", pct(90), false, 87},
		{"suffix tolerated", "minimally processed", pct(90), false, 87},
		{"truncates", "moderately", pct(75), false, 67},
		{"high concern penalty", "moderately", nil, true, 40},
		{"penalty floors at 10", "highly", pct(0), true, 10},
		{"extreme pct clamps high", "minimally", pct(1000), false, 100},
		{"negative pct clamps low", "highly", pct(-500), false, 0},
	}

	for _, tc := range cases {
		got := computeHealthScore(tc.level, tc.naturalPct, tc.highConcern)
		if got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("%s: score %d outside [0,100]", tc.name, got)
		}
	}
}
