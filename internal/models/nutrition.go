package models

// NutritionFacts holds per-100g values for one product record.
// Exclusively owned by a single ProductRecord via NutritionFactsID; the row
// must exist before the owning record references it.
type NutritionFacts struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
	Sugar       float64 `json:"sugar"`
	Sodium      float64 `json:"sodium"`
	ServingSize string  `json:"servingSize,omitempty"`
}

func (NutritionFacts) TableName() string { return "nutrition_facts" }

// DefaultNutritionFacts returns a zero-valued sub-record for default filling.
func DefaultNutritionFacts() *NutritionFacts {
	return &NutritionFacts{ServingSize: "100g"}
}
