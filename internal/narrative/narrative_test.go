package narrative

import (
	"strings"
	"testing"
)

func TestEncodeOmitsEmptySections(t *testing.T) {
	out := Encode(Fields{Summary: "A simple snack."})
	if out != "Summary: A simple snack." {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "Ingredient Details") || strings.Contains(out, "Detected Language") {
		t.Error("empty sections must be omitted entirely")
	}
}

func TestEncodeSectionOrder(t *testing.T) {
	pct := 72
	out := Encode(Fields{
		Summary:         "Moderately processed cereal.",
		ProcessingLevel: "moderately processed",
		NaturalPercent:  &pct,
		Ingredients: []IngredientDetail{
			{Name: "Oats", Explanation: "whole grain base"},
		},
		Additives: []AdditiveDetail{
			{Name: "BHT", Explanation: "synthetic preservative", ConcernLevel: "medium"},
		},
		Alternatives: []string{"Plain rolled oats"},
		Language:     "English",
	})

	order := []string{
		"Summary: Moderately processed cereal.",
		"Processing Level: Moderately Processed",
		"Approximately 72% natural ingredients",
		"Ingredient Details:",
		"Additives of Concern:",
		"BHT (CONCERN: MEDIUM): synthetic preservative",
		"Healthier Alternatives:",
		"Detected Language: English",
	}
	last := -1
	for _, want := range order {
		idx := strings.Index(out, want)
		if idx < 0 {
			t.Fatalf("missing section %q in:\n%s", want, out)
		}
		if idx < last {
			t.Errorf("section %q out of order", want)
		}
		last = idx
	}
}

func TestRoundTripIngredients(t *testing.T) {
	in := []IngredientDetail{
		{Name: "Whole Milk", Explanation: "primary dairy base", ConcernLevel: ""},
		{Name: "Sugar", Explanation: "added sweetener", ConcernLevel: "high", ConcernReason: "blood sugar spikes"},
		{Name: "Carrageenan", Explanation: "thickener from seaweed", ConcernLevel: "medium"},
		{Name: "Vitamin D3", Explanation: "fortification", ConcernLevel: "low"},
	}

	decoded := Decode(Encode(Fields{Ingredients: in}))

	if len(decoded.Ingredients) != len(in) {
		t.Fatalf("got %d ingredients, want %d", len(decoded.Ingredients), len(in))
	}
	for i, want := range in {
		got := decoded.Ingredients[i]
		if got.Name != want.Name {
			t.Errorf("item %d: name %q, want %q", i, got.Name, want.Name)
		}
		if got.Explanation != want.Explanation {
			t.Errorf("item %d: explanation %q, want %q", i, got.Explanation, want.Explanation)
		}
		if got.ConcernLevel != want.ConcernLevel {
			t.Errorf("item %d: concern %q, want %q", i, got.ConcernLevel, want.ConcernLevel)
		}
	}
	if decoded.Ingredients[1].ConcernReason != "blood sugar spikes" {
		t.Errorf("concern reason lost: %q", decoded.Ingredients[1].ConcernReason)
	}
}

func TestRoundTripFullFields(t *testing.T) {
	pct := 90
	in := Fields{
		Summary:         "Mostly natural yogurt drink.",
		ProcessingLevel: "minimally",
		NaturalPercent:  &pct,
		Additives: []AdditiveDetail{
			{Name: "Potassium Sorbate", Explanation: "mold inhibitor", ConcernLevel: "low"},
		},
		Alternatives: []string{"Plain yogurt with fruit", "Kefir"},
		Language:     "German",
	}

	got := Decode(Encode(in))

	if got.Summary != in.Summary {
		t.Errorf("summary: %q", got.Summary)
	}
	if got.ProcessingLevel != "minimally" {
		t.Errorf("processing level: %q", got.ProcessingLevel)
	}
	if got.NaturalPercent == nil || *got.NaturalPercent != 90 {
		t.Errorf("natural percent: %v", got.NaturalPercent)
	}
	if len(got.Additives) != 1 || got.Additives[0].Name != "Potassium Sorbate" {
		t.Errorf("additives: %+v", got.Additives)
	}
	if len(got.Alternatives) != 2 || got.Alternatives[1] != "Kefir" {
		t.Errorf("alternatives: %v", got.Alternatives)
	}
	if got.Language != "German" {
		t.Errorf("language: %q", got.Language)
	}
}

func TestDecodeSkipsMalformedItems(t *testing.T) {
	text := "Ingredient Details:\n" +
		"Oats: whole grain base\n\n" +
		"this line has no recognizable separator\n\n" +
		"Salt: flavoring"

	got := Decode(text)

	if len(got.Ingredients) != 2 {
		t.Fatalf("got %d ingredients, want 2 (malformed item skipped): %+v", len(got.Ingredients), got.Ingredients)
	}
	if got.Ingredients[0].Name != "Oats" || got.Ingredients[1].Name != "Salt" {
		t.Errorf("wrong items survived: %+v", got.Ingredients)
	}
}

func TestDecodeNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"random prose with no labels at all",
		"Approximately garbage% natural ingredients",
		"Additives of Concern:\nnot an additive line",
	}
	for _, in := range inputs {
		got := Decode(in)
		if got.Ingredients != nil && len(got.Ingredients) > 0 {
			t.Errorf("input %q: unexpected ingredients %+v", in, got.Ingredients)
		}
	}
}
