// Package store persists ProductRecords across five related tables and
// guarantees that readers never observe a primary row without its owned
// nutrition row. Multi-table writes run inside a single transaction with
// the nutrition row written strictly before the primary row.
package store

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/foodlens/foodlensgo/internal/database"
	"github.com/foodlens/foodlensgo/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductStore is the single shared persistence handle for product records.
// Reads run in parallel; writes are serialized against reads and each other.
type ProductStore struct {
	db *database.DB
	mu sync.RWMutex
}

// NewProductStore creates a store over an open database handle.
func NewProductStore(db *database.DB) *ProductStore {
	return &ProductStore{db: db}
}

// Insert writes a new record with all owned and child rows.
func (s *ProductStore) Insert(record *models.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(record)
}

// Update fully replaces a stored record. Child relations use replace-not-diff
// semantics: every owned ingredient/allergen/image row is deleted and the
// current in-memory set reinserted.
func (s *ProductStore) Update(record *models.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(record)
}

// Save updates when a row with the same id exists, inserts otherwise.
func (s *ProductStore) Save(record *models.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing models.ProductRecord
	err := s.db.Select("id").First(&existing, "id = ?", record.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.insertLocked(record)
	case err != nil:
		return fmt.Errorf("save lookup failed: %w", err)
	default:
		return s.updateLocked(record)
	}
}

func (s *ProductStore) insertLocked(record *models.ProductRecord) error {
	prepareRecord(record)

	return s.db.Transaction(func(tx *gorm.DB) error {
		// The nutrition row must exist before the primary row references it.
		if err := persistNutrition(tx, record); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(record).Error; err != nil {
			return fmt.Errorf("failed to insert record %s: %w", record.ID, err)
		}

		return insertChildren(tx, record)
	})
}

func (s *ProductStore) updateLocked(record *models.ProductRecord) error {
	prepareRecord(record)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := persistNutrition(tx, record); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(record).Error; err != nil {
			return fmt.Errorf("failed to update record %s: %w", record.ID, err)
		}

		// Replace, don't diff. Simpler and correct at this record's scale.
		if err := deleteChildren(tx, record.ID); err != nil {
			return err
		}
		return insertChildren(tx, record)
	})
}

// prepareRecord enforces the pre-write invariants shared by insert and update.
func prepareRecord(record *models.ProductRecord) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.ScanDate.IsZero() {
		record.ScanDate = time.Now().UTC()
	}
	if record.HealthScore != nil {
		clamped := models.ClampHealthScore(*record.HealthScore)
		record.HealthScore = &clamped
	}
	record.EnsureCollections()
	for i := range record.Ingredients {
		record.Ingredients[i].RecordID = record.ID
	}
	for i := range record.Allergens {
		record.Allergens[i].RecordID = record.ID
	}
	for i := range record.Images {
		record.Images[i].RecordID = record.ID
	}
}

// persistNutrition inserts or updates the owned nutrition row and attaches
// its identifier to the record before the primary row is written.
func persistNutrition(tx *gorm.DB, record *models.ProductRecord) error {
	if record.NutritionFacts == nil {
		return nil
	}

	if record.NutritionFacts.ID == 0 {
		if err := tx.Create(record.NutritionFacts).Error; err != nil {
			return fmt.Errorf("failed to insert nutrition facts: %w", err)
		}
	} else {
		if err := tx.Save(record.NutritionFacts).Error; err != nil {
			return fmt.Errorf("failed to update nutrition facts: %w", err)
		}
	}

	record.NutritionFactsID = &record.NutritionFacts.ID
	return nil
}

func insertChildren(tx *gorm.DB, record *models.ProductRecord) error {
	if len(record.Ingredients) > 0 {
		if err := tx.Create(&record.Ingredients).Error; err != nil {
			return fmt.Errorf("failed to insert ingredients: %w", err)
		}
	}
	if len(record.Allergens) > 0 {
		if err := tx.Create(&record.Allergens).Error; err != nil {
			return fmt.Errorf("failed to insert allergens: %w", err)
		}
	}
	if len(record.Images) > 0 {
		// Image rows get fresh identifiers on every rewrite
		for i := range record.Images {
			record.Images[i].ID = 0
		}
		if err := tx.Create(&record.Images).Error; err != nil {
			return fmt.Errorf("failed to insert images: %w", err)
		}
	}
	return nil
}

func deleteChildren(tx *gorm.DB, recordID string) error {
	if err := tx.Where("record_id = ?", recordID).Delete(&models.ProductIngredient{}).Error; err != nil {
		return fmt.Errorf("failed to clear ingredients: %w", err)
	}
	if err := tx.Where("record_id = ?", recordID).Delete(&models.ProductAllergen{}).Error; err != nil {
		return fmt.Errorf("failed to clear allergens: %w", err)
	}
	if tx.Migrator().HasTable(&models.ProductImage{}) {
		if err := tx.Where("record_id = ?", recordID).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to clear images: %w", err)
		}
	}
	return nil
}

// LoadComplete loads a record with all owned and child rows. A missing
// primary row is reported as (nil, nil), not an error. A missing image table
// (databases predating it) degrades to an empty image list.
func (s *ProductStore) LoadComplete(id string) (*models.ProductRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadCompleteLocked(id)
}

func (s *ProductStore) loadCompleteLocked(id string) (*models.ProductRecord, error) {
	var record models.ProductRecord
	err := s.db.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", id, err)
	}

	if record.NutritionFactsID != nil {
		var facts models.NutritionFacts
		if err := s.db.First(&facts, *record.NutritionFactsID).Error; err == nil {
			record.NutritionFacts = &facts
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load nutrition facts for %s: %w", id, err)
		}
	}

	if err := s.db.Where("record_id = ?", id).Order("position").Find(&record.Ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to load ingredients for %s: %w", id, err)
	}
	if err := s.db.Where("record_id = ?", id).Find(&record.Allergens).Error; err != nil {
		return nil, fmt.Errorf("failed to load allergens for %s: %w", id, err)
	}

	if s.db.Migrator().HasTable(&models.ProductImage{}) {
		if err := s.db.Where("record_id = ?", id).Find(&record.Images).Error; err != nil {
			return nil, fmt.Errorf("failed to load images for %s: %w", id, err)
		}
	} else {
		log.Printf("⚠️  product_images table missing, returning zero images for %s", id)
	}

	record.EnsureCollections()
	return &record, nil
}

// DeleteAll irreversibly removes every row across all product tables.
func (s *ProductStore) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		targets := []interface{}{
			&models.ProductIngredient{},
			&models.ProductAllergen{},
			&models.ProductRecord{},
			&models.NutritionFacts{},
		}
		if tx.Migrator().HasTable(&models.ProductImage{}) {
			targets = append([]interface{}{&models.ProductImage{}}, targets...)
		}
		for _, model := range targets {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("clear all failed: %w", err)
			}
		}
		return nil
	})
}
