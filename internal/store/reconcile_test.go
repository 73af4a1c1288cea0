package store

import (
	"testing"

	"github.com/foodlens/foodlensgo/internal/models"
)

func TestFillDefaultsFillsEveryGap(t *testing.T) {
	record := &models.ProductRecord{ID: "abc"}
	fillDefaults(record)

	if record.Name != "Unknown Product" {
		t.Errorf("name = %q", record.Name)
	}
	if record.Category != models.CategoryOther {
		t.Errorf("category = %q", record.Category)
	}
	if record.NutritionFacts == nil {
		t.Error("nutrition facts not filled")
	}
	if record.HealthScore == nil || *record.HealthScore != defaultHealthScore {
		t.Errorf("score = %v", record.HealthScore)
	}
	if len(record.Ingredients) != 1 || record.Ingredients[0].Name != placeholderIngredient {
		t.Errorf("ingredients = %+v", record.Ingredients)
	}
	if record.Allergens == nil || record.Images == nil {
		t.Error("collections must be non-nil")
	}
	if record.Notes != placeholderNotes {
		t.Errorf("notes = %q", record.Notes)
	}
}

func TestFillDefaultsNeverOverwrites(t *testing.T) {
	score := 91
	record := &models.ProductRecord{
		ID:          "abc",
		Name:        "Granola",
		Category:    models.CategoryBakery,
		HealthScore: &score,
		Notes:       "Summary: good stuff.",
		NutritionFacts: &models.NutritionFacts{
			Calories: 450,
		},
	}
	record.SetIngredients([]string{"Oats", "Honey"})

	fillDefaults(record)

	if record.Name != "Granola" || record.Category != models.CategoryBakery {
		t.Errorf("existing fields overwritten: %q/%q", record.Name, record.Category)
	}
	if *record.HealthScore != 91 {
		t.Errorf("score overwritten: %d", *record.HealthScore)
	}
	if record.NutritionFacts.Calories != 450 {
		t.Errorf("nutrition overwritten: %+v", record.NutritionFacts)
	}
	if len(record.Ingredients) != 2 {
		t.Errorf("ingredients overwritten: %v", record.IngredientNames())
	}
	if record.Notes != "Summary: good stuff." {
		t.Errorf("notes overwritten: %q", record.Notes)
	}
}

func TestFillDefaultsClampsOutOfRangeScore(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{0, 0},
		{100, 100},
		{250, 100},
	}
	for _, tc := range cases {
		score := tc.in
		record := &models.ProductRecord{ID: "abc", HealthScore: &score}
		fillDefaults(record)
		if *record.HealthScore != tc.want {
			t.Errorf("score %d clamped to %d, want %d", tc.in, *record.HealthScore, tc.want)
		}
	}
}
