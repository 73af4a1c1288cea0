package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foodlens/foodlensgo/internal/models"
	"github.com/foodlens/foodlensgo/internal/narrative"
	"github.com/foodlens/foodlensgo/internal/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ErrMalformed marks a response that could not be decoded against the
// analysis schema. Callers route it to the fallback generator.
var ErrMalformed = errors.New("malformed analysis response")

// ServiceError is returned when the service itself reports that analysis is
// impossible, e.g. the scanned text is not a food label. The message is safe
// to show to the user.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return "analysis service error: " + e.Message
}

// AnalyzedIngredient is one ingredient entry from the service response.
type AnalyzedIngredient struct {
	Name          string `json:"name"`
	Explanation   string `json:"explanation"`
	ConcernLevel  string `json:"concern_level"`
	ConcernReason string `json:"concern_reason"`
}

// AnalyzedAdditive is one concerning-additive entry.
type AnalyzedAdditive struct {
	Name         string `json:"name"`
	Explanation  string `json:"explanation"`
	ConcernLevel string `json:"concern_level"`
}

type nutritionPayload struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

type analysisResponse struct {
	ProductName           string               `json:"product_name"`
	Brand                 string               `json:"brand"`
	Category              string               `json:"category"`
	Ingredients           []AnalyzedIngredient `json:"ingredients"`
	Allergens             []string             `json:"allergens"`
	ConcerningAdditives   []AnalyzedAdditive   `json:"concerning_additives"`
	ProcessingLevel       string               `json:"processing_level"`
	NaturalPercentage     *int                 `json:"natural_percentage"`
	Nutrition             *nutritionPayload    `json:"nutrition"`
	Summary               string               `json:"summary"`
	HealthierAlternatives []string             `json:"healthier_alternatives"`
	DetectedLanguage      string               `json:"detected_language"`
}

// Decode turns the raw service answer into a validated ProductRecord.
// It tolerates markdown fencing and surrounding prose, short-circuits on an
// explicit error payload, applies the documented field defaults, computes the
// health score, and fills the notes field with the narrative encoding.
// It never persists anything; fallback policy belongs to the caller.
func Decode(raw string) (*models.ProductRecord, error) {
	candidate := utils.ExtractJSONObject(raw)

	// An explicit error payload wins over schema decoding.
	var errPayload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(candidate), &errPayload); err == nil && errPayload.Error != "" {
		return nil, &ServiceError{Message: errPayload.Error}
	}

	// Probe for required fields before committing to the typed decode.
	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &rawMap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, ok := rawMap["ingredients"]; !ok {
		return nil, fmt.Errorf("%w: missing ingredients field", ErrMalformed)
	}

	var resp analysisResponse
	if err := json.Unmarshal([]byte(candidate), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return buildRecord(&resp, candidate), nil
}

func buildRecord(resp *analysisResponse, rawJSON string) *models.ProductRecord {
	name := strings.TrimSpace(resp.ProductName)
	if name == "" {
		name = "Unknown Product"
	}

	score := computeHealthScore(resp.ProcessingLevel, resp.NaturalPercentage, hasHighConcern(resp.Ingredients))

	record := &models.ProductRecord{
		ID:          uuid.New().String(),
		Name:        name,
		Brand:       strings.TrimSpace(resp.Brand),
		ScanDate:    time.Now().UTC(),
		Category:    models.NormalizeCategory(resp.Category),
		HealthScore: &score,
		Notes:       encodeNotes(resp),
		NotesFormat: models.NotesFormatNarrative,
		RawAnalysis: datatypes.JSON(rawJSON),
	}

	names := make([]string, 0, len(resp.Ingredients))
	for _, ing := range resp.Ingredients {
		names = append(names, strings.TrimSpace(ing.Name))
	}
	record.SetIngredients(names)
	record.SetAllergens(resp.Allergens)
	record.EnsureCollections()

	if resp.Nutrition != nil {
		record.NutritionFacts = &models.NutritionFacts{
			Calories:    resp.Nutrition.Calories,
			Protein:     resp.Nutrition.Protein,
			Carbs:       resp.Nutrition.Carbs,
			Fat:         resp.Nutrition.Fat,
			Fiber:       resp.Nutrition.Fiber,
			Sugar:       resp.Nutrition.Sugar,
			Sodium:      resp.Nutrition.Sodium,
			ServingSize: "100g",
		}
	}

	return record
}

func encodeNotes(resp *analysisResponse) string {
	fields := narrative.Fields{
		Summary:         resp.Summary,
		ProcessingLevel: resp.ProcessingLevel,
		NaturalPercent:  resp.NaturalPercentage,
		Alternatives:    resp.HealthierAlternatives,
		Language:        resp.DetectedLanguage,
	}
	for _, ing := range resp.Ingredients {
		if ing.Explanation == "" {
			continue
		}
		fields.Ingredients = append(fields.Ingredients, narrative.IngredientDetail{
			Name:          ing.Name,
			Explanation:   ing.Explanation,
			ConcernLevel:  strings.ToLower(ing.ConcernLevel),
			ConcernReason: ing.ConcernReason,
		})
	}
	for _, add := range resp.ConcerningAdditives {
		fields.Additives = append(fields.Additives, narrative.AdditiveDetail{
			Name:         add.Name,
			Explanation:  add.Explanation,
			ConcernLevel: strings.ToLower(add.ConcernLevel),
		})
	}
	return narrative.Encode(fields)
}

// computeHealthScore derives the score from processing level, natural
// content, and ingredient concern. The formula is preserved from the legacy
// scoring behavior; see DESIGN.md before changing it.
func computeHealthScore(processingLevel string, naturalPct *int, highConcern bool) int {
	base := 50
	switch {
	case strings.HasPrefix(strings.ToLower(strings.TrimSpace(processingLevel)), "minimally"):
		base = 85
	case strings.HasPrefix(strings.ToLower(strings.TrimSpace(processingLevel)), "moderately"):
		base = 60
	case strings.HasPrefix(strings.ToLower(strings.TrimSpace(processingLevel)), "highly"):
		base = 30
	}

	score := base
	if naturalPct != nil {
		score = (base + *naturalPct) / 2
	}
	if highConcern {
		score -= 20
		if score < 10 {
			score = 10
		}
	}
	return models.ClampHealthScore(score)
}

func hasHighConcern(ingredients []AnalyzedIngredient) bool {
	for _, ing := range ingredients {
		if strings.EqualFold(strings.TrimSpace(ing.ConcernLevel), "high") {
			return true
		}
	}
	return false
}
