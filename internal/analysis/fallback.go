package analysis

import (
	"math/rand"
	"strings"
	"time"

	"github.com/foodlens/foodlensgo/internal/models"
	"github.com/foodlens/foodlensgo/internal/narrative"
	"github.com/google/uuid"
)

// Fixed vocabulary for synthetic ingredient lists. Clearly generic on
// purpose so a fallback record is never mistaken for a real analysis.
var fallbackIngredients = []string{
	"Water",
	"Sugar",
	"Salt",
	"Wheat Flour",
	"Vegetable Oil",
	"Natural Flavoring",
	"Citric Acid",
	"Preservatives",
	"Modified Starch",
	"Soy Lecithin",
}

const fallbackSummary = "Automatically generated entry. The label could not be " +
	"analyzed, so this record describes a generic processed product. Rescan " +
	"the label for a real analysis."

// GenerateFallback synthesizes a renderable placeholder record from raw label
// text. Used when the analysis service is unreachable, returns garbage, or
// the user is in offline mode. It has no external dependency and never fails.
func GenerateFallback(rawText string) *models.ProductRecord {
	score := 40 + rand.Intn(21) // mid-range, 40..60

	record := &models.ProductRecord{
		ID:          uuid.New().String(),
		Name:        inferName(rawText),
		ScanDate:    time.Now().UTC(),
		Category:    models.CategoryOther,
		HealthScore: &score,
		Notes: narrative.Encode(narrative.Fields{
			Summary:         fallbackSummary,
			ProcessingLevel: "moderately",
		}),
		NotesFormat: models.NotesFormatNarrative,
	}

	record.SetIngredients(pickIngredients())
	record.EnsureCollections()
	return record
}

// inferName takes the first few whitespace-delimited tokens as a best-guess
// product name.
func inferName(rawText string) string {
	tokens := strings.Fields(rawText)
	if len(tokens) > 4 {
		tokens = tokens[:4]
	}
	name := strings.Join(tokens, " ")
	if len(name) < 3 {
		return "Unknown Product"
	}
	return name
}

// pickIngredients draws a small random sample from the fixed vocabulary,
// preserving vocabulary order.
func pickIngredients() []string {
	count := 3 + rand.Intn(3)
	if count > len(fallbackIngredients) {
		count = len(fallbackIngredients)
	}

	picked := make([]string, 0, count)
	offset := rand.Intn(len(fallbackIngredients))
	for i := 0; i < count; i++ {
		picked = append(picked, fallbackIngredients[(offset+i)%len(fallbackIngredients)])
	}
	return picked
}
