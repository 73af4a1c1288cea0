package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product categories form a closed set; anything else normalizes to Other.
const (
	CategoryBeverages  = "Beverages"
	CategoryDairy      = "Dairy"
	CategorySnacks     = "Snacks"
	CategoryBakery     = "Bakery"
	CategoryMeat       = "Meat & Seafood"
	CategoryProduce    = "Produce"
	CategoryFrozen     = "Frozen"
	CategoryCanned     = "Canned Goods"
	CategoryCondiments = "Condiments"
	CategoryOther      = "Other"
)

// Notes format tags. Records written before the structured pipeline existed
// carry narrative notes; newer records may carry the raw analysis JSON.
const (
	NotesFormatNarrative = "narrative"
	NotesFormatJSON      = "json"
)

var knownCategories = map[string]string{
	"beverages":      CategoryBeverages,
	"dairy":          CategoryDairy,
	"snacks":         CategorySnacks,
	"bakery":         CategoryBakery,
	"meat & seafood": CategoryMeat,
	"produce":        CategoryProduce,
	"frozen":         CategoryFrozen,
	"canned goods":   CategoryCanned,
	"condiments":     CategoryCondiments,
	"other":          CategoryOther,
}

// ProductRecord is the complete logical entity for one scanned product.
// Child collections are owned by the record and never meaningful on their own.
type ProductRecord struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Brand       string    `json:"brand,omitempty"`
	Barcode     string    `gorm:"index" json:"barcode,omitempty"`
	ImagePath   string    `json:"imagePath,omitempty"`
	ScanDate    time.Time `json:"scanDate"`
	Category    string    `gorm:"default:'Other';index" json:"category"`
	IsFavorite  bool      `gorm:"default:false;index" json:"isFavorite"`
	Notes       string    `json:"notes,omitempty"`
	NotesFormat string    `gorm:"default:'narrative'" json:"notesFormat"`

	// HealthScore stays nil until the decoder computes it; always in [0,100].
	HealthScore *int `json:"healthScore,omitempty"`

	NutritionFactsID *uint           `json:"-"`
	NutritionFacts   *NutritionFacts `gorm:"foreignKey:NutritionFactsID" json:"nutritionFacts,omitempty"`

	// RawAnalysis keeps the minimally-reformatted service JSON so a future
	// redecode is possible even though we prefer the structured fields.
	RawAnalysis datatypes.JSON `gorm:"type:jsonb" json:"-"`

	Ingredients []ProductIngredient `gorm:"foreignKey:RecordID;references:ID" json:"ingredients"`
	Allergens   []ProductAllergen   `gorm:"foreignKey:RecordID;references:ID" json:"allergens"`
	Images      []ProductImage      `gorm:"foreignKey:RecordID;references:ID" json:"images,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ProductRecord) TableName() string { return "product_records" }

// NormalizeCategory maps free-form category text onto the closed set.
func NormalizeCategory(raw string) string {
	if c, ok := knownCategories[normalizeKey(raw)]; ok {
		return c
	}
	return CategoryOther
}

func normalizeKey(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	start, end := 0, len(out)
	for start < end && out[start] == ' ' {
		start++
	}
	for end > start && out[end-1] == ' ' {
		end--
	}
	return string(out[start:end])
}

// ClampHealthScore forces a score into the valid [0,100] range.
func ClampHealthScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// EnsureCollections replaces nil child slices with empty ones so callers
// outside the core never observe a nil collection.
func (p *ProductRecord) EnsureCollections() {
	if p.Ingredients == nil {
		p.Ingredients = []ProductIngredient{}
	}
	if p.Allergens == nil {
		p.Allergens = []ProductAllergen{}
	}
	if p.Images == nil {
		p.Images = []ProductImage{}
	}
}

// IngredientNames returns the ordered ingredient list as plain strings.
func (p *ProductRecord) IngredientNames() []string {
	names := make([]string, 0, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		names = append(names, ing.Name)
	}
	return names
}

// AllergenNames returns the allergen set as plain strings.
func (p *ProductRecord) AllergenNames() []string {
	names := make([]string, 0, len(p.Allergens))
	for _, a := range p.Allergens {
		names = append(names, a.Name)
	}
	return names
}

// SetIngredients rebuilds the ingredient rows from an ordered name list,
// dropping duplicates while preserving first-seen order.
func (p *ProductRecord) SetIngredients(names []string) {
	seen := make(map[string]bool, len(names))
	rows := make([]ProductIngredient, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		rows = append(rows, ProductIngredient{
			RecordID: p.ID,
			Name:     name,
			Position: len(rows),
		})
	}
	p.Ingredients = rows
}

// SetAllergens rebuilds the allergen rows from a name set.
func (p *ProductRecord) SetAllergens(names []string) {
	seen := make(map[string]bool, len(names))
	rows := make([]ProductAllergen, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		rows = append(rows, ProductAllergen{RecordID: p.ID, Name: name})
	}
	p.Allergens = rows
}
