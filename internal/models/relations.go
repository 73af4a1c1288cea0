package models

// ProductIngredient is one ordered ingredient row owned by a product record.
// Uniqueness is per (record, name); the whole set is replaced on update.
type ProductIngredient struct {
	RecordID string `gorm:"primaryKey;type:uuid" json:"-"`
	Name     string `gorm:"primaryKey" json:"name"`
	Position int    `json:"position"`
}

func (ProductIngredient) TableName() string { return "product_ingredients" }

// ProductAllergen is one allergen row owned by a product record.
type ProductAllergen struct {
	RecordID string `gorm:"primaryKey;type:uuid" json:"-"`
	Name     string `gorm:"primaryKey" json:"name"`
}

func (ProductAllergen) TableName() string { return "product_allergens" }

// ProductImage stores one captured label image for a record. The table is a
// later schema addition; reads must tolerate databases that predate it.
type ProductImage struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RecordID string `gorm:"type:uuid;index" json:"-"`
	Data     []byte `gorm:"type:bytea" json:"data"`
}

func (ProductImage) TableName() string { return "product_images" }
