package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/foodlens/foodlensgo/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned by mutating queries against an unknown record id.
var ErrNotFound = errors.New("product record not found")

// Search returns records whose name or brand contains the query, unioned
// with records whose ingredient list contains it. Case-insensitive, results
// deduplicated by id, most recent scan first.
func (s *ProductStore) Search(query string) ([]models.ProductRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var nameIDs []string
	err := s.db.Model(&models.ProductRecord{}).
		Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", pattern, pattern).
		Pluck("id", &nameIDs).Error
	if err != nil {
		return nil, fmt.Errorf("name search failed: %w", err)
	}

	var ingredientIDs []string
	err = s.db.Model(&models.ProductIngredient{}).
		Where("LOWER(name) LIKE ?", pattern).
		Distinct("record_id").
		Pluck("record_id", &ingredientIDs).Error
	if err != nil {
		return nil, fmt.Errorf("ingredient search failed: %w", err)
	}

	seen := make(map[string]bool, len(nameIDs)+len(ingredientIDs))
	ids := make([]string, 0, len(nameIDs)+len(ingredientIDs))
	for _, id := range append(nameIDs, ingredientIDs...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []models.ProductRecord{}, nil
	}

	return s.findRecords(s.db.Where("id IN ?", ids))
}

// ByCategory lists records in one category, most recent scan first.
func (s *ProductStore) ByCategory(category string) ([]models.ProductRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findRecords(s.db.Where("category = ?", models.NormalizeCategory(category)))
}

// Recent lists the most recently scanned records, up to limit.
func (s *ProductStore) Recent(limit int) ([]models.ProductRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	return s.findRecords(s.db.Limit(limit))
}

// Favorites lists all records flagged as favorite.
func (s *ProductStore) Favorites() ([]models.ProductRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findRecords(s.db.Where("is_favorite = ?", true))
}

func (s *ProductStore) findRecords(tx *gorm.DB) ([]models.ProductRecord, error) {
	var records []models.ProductRecord
	tx = tx.Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Allergens").
		Preload("NutritionFacts").
		Order("scan_date DESC")
	if err := tx.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("record query failed: %w", err)
	}
	for i := range records {
		records[i].EnsureCollections()
	}
	return records, nil
}

// ToggleFavorite flips the favorite flag and returns the new state.
func (s *ProductStore) ToggleFavorite(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var record models.ProductRecord
	err := s.db.Select("id", "is_favorite").First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("favorite lookup failed: %w", err)
	}

	newState := !record.IsFavorite
	err = s.db.Model(&models.ProductRecord{}).Where("id = ?", id).
		Update("is_favorite", newState).Error
	if err != nil {
		return false, fmt.Errorf("favorite update failed: %w", err)
	}
	return newState, nil
}

// AddNote replaces the record's free-text notes. User-entered notes are
// tagged narrative so later readers pick the right decoder.
func (s *ProductStore) AddNote(id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.db.Model(&models.ProductRecord{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"notes":        text,
			"notes_format": models.NotesFormatNarrative,
		})
	if result.Error != nil {
		return fmt.Errorf("note update failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
