package store

import (
	"errors"
	"log"

	"github.com/foodlens/foodlensgo/internal/models"
	"gorm.io/gorm"
)

// Sentinel values used by the default-filling pass.
const (
	placeholderIngredient = "Ingredients unavailable"
	placeholderNotes      = "No analysis notes are available for this product."
	defaultHealthScore    = 50
)

// Reconcile guarantees a renderable record for a possibly partial or stale
// input. It walks an ordered list of recovery strategies — full relational
// reload, per-relation manual reload, the in-memory record as-is — and runs
// the winner through a default-filling pass. It cannot fail outward.
func (s *ProductStore) Reconcile(record *models.ProductRecord) *models.ProductRecord {
	if record == nil {
		record = &models.ProductRecord{}
	}

	strategies := []func(*models.ProductRecord) *models.ProductRecord{
		s.reloadComplete,
		s.reloadPerRelation,
	}
	result := record
	for _, strategy := range strategies {
		if got := strategy(record); got != nil {
			result = got
			break
		}
	}

	fillDefaults(result)
	return result
}

// reloadComplete tries the normal full load path.
func (s *ProductStore) reloadComplete(record *models.ProductRecord) *models.ProductRecord {
	if record.ID == "" {
		return nil
	}
	loaded, err := s.LoadComplete(record.ID)
	if err != nil {
		log.Printf("⚠️  Reconcile: full reload of %s failed: %v", record.ID, err)
		return nil
	}
	if loaded == nil {
		return nil
	}
	return loaded
}

// reloadPerRelation fetches the primary row alone, then re-queries each child
// relation independently. A single relation's failure is logged and degraded
// to an empty collection instead of discarding the whole record.
func (s *ProductStore) reloadPerRelation(record *models.ProductRecord) *models.ProductRecord {
	if record.ID == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var primary models.ProductRecord
	if err := s.db.First(&primary, "id = ?", record.ID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️  Reconcile: primary row fetch for %s failed: %v", record.ID, err)
		}
		return nil
	}

	if primary.NutritionFactsID != nil {
		var facts models.NutritionFacts
		if err := s.db.First(&facts, *primary.NutritionFactsID).Error; err != nil {
			log.Printf("⚠️  Reconcile: nutrition reload for %s failed: %v", record.ID, err)
		} else {
			primary.NutritionFacts = &facts
		}
	}

	if err := s.db.Where("record_id = ?", primary.ID).Order("position").Find(&primary.Ingredients).Error; err != nil {
		log.Printf("⚠️  Reconcile: ingredient reload for %s failed: %v", record.ID, err)
		primary.Ingredients = []models.ProductIngredient{}
	}
	if err := s.db.Where("record_id = ?", primary.ID).Find(&primary.Allergens).Error; err != nil {
		log.Printf("⚠️  Reconcile: allergen reload for %s failed: %v", record.ID, err)
		primary.Allergens = []models.ProductAllergen{}
	}
	if s.db.Migrator().HasTable(&models.ProductImage{}) {
		if err := s.db.Where("record_id = ?", primary.ID).Find(&primary.Images).Error; err != nil {
			log.Printf("⚠️  Reconcile: image reload for %s failed: %v", record.ID, err)
			primary.Images = []models.ProductImage{}
		}
	}

	return &primary
}

// fillDefaults closes every remaining gap without touching non-empty values.
func fillDefaults(record *models.ProductRecord) {
	if record.Name == "" {
		record.Name = "Unknown Product"
	}
	if record.Category == "" {
		record.Category = models.CategoryOther
	}
	if record.NutritionFacts == nil {
		record.NutritionFacts = models.DefaultNutritionFacts()
	}
	if record.HealthScore == nil {
		score := defaultHealthScore
		record.HealthScore = &score
	} else {
		clamped := models.ClampHealthScore(*record.HealthScore)
		record.HealthScore = &clamped
	}
	record.EnsureCollections()
	if len(record.Ingredients) == 0 {
		record.Ingredients = []models.ProductIngredient{{
			RecordID: record.ID,
			Name:     placeholderIngredient,
		}}
	}
	if record.Notes == "" {
		record.Notes = placeholderNotes
		if record.NotesFormat == "" {
			record.NotesFormat = models.NotesFormatNarrative
		}
	}
}
