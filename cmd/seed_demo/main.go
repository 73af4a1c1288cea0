// Seeds the database with a handful of demo product records so the app
// has something to show on a fresh install. Safe to run repeatedly: the
// records use fixed IDs and are upserted.
package main

import (
	"log"
	"time"

	"github.com/foodlens/foodlensgo/internal/config"
	"github.com/foodlens/foodlensgo/internal/database"
	"github.com/foodlens/foodlensgo/internal/models"
	"github.com/foodlens/foodlensgo/internal/narrative"
	"github.com/foodlens/foodlensgo/internal/store"
)

func intPtr(v int) *int { return &v }

func demoRecords() []*models.ProductRecord {
	yogurt := &models.ProductRecord{
		ID:          "11111111-1111-4111-8111-111111111111",
		Name:        "Greek Yogurt",
		Brand:       "Alpine Dairy",
		Barcode:     "4006381333931",
		Category:    models.CategoryDairy,
		HealthScore: intPtr(82),
		NutritionFacts: &models.NutritionFacts{
			Calories: 97, Protein: 9, Carbs: 3.9, Fat: 5, ServingSize: "100g",
		},
	}
	yogurt.SetIngredients([]string{"Pasteurized Milk", "Live Cultures"})
	yogurt.SetAllergens([]string{"Milk"})
	yogurt.Notes = narrative.Encode(narrative.Fields{
		Summary:         "A minimally processed dairy product with a short ingredient list.",
		ProcessingLevel: "minimally",
		NaturalPercent:  intPtr(95),
		Language:        "English",
	})
	yogurt.NotesFormat = models.NotesFormatNarrative

	soda := &models.ProductRecord{
		ID:          "22222222-2222-4222-8222-222222222222",
		Name:        "Cherry Cola",
		Brand:       "FizzWorks",
		Category:    models.CategoryBeverages,
		HealthScore: intPtr(18),
		NutritionFacts: &models.NutritionFacts{
			Calories: 42, Carbs: 10.6, Sugar: 10.6, ServingSize: "100g",
		},
	}
	soda.SetIngredients([]string{"Carbonated Water", "High Fructose Corn Syrup", "Caramel Color", "Phosphoric Acid", "Natural Flavors"})
	soda.Notes = narrative.Encode(narrative.Fields{
		Summary:         "An ultra-processed soft drink dominated by added sugar.",
		ProcessingLevel: "highly",
		NaturalPercent:  intPtr(10),
		Language:        "English",
	})
	soda.NotesFormat = models.NotesFormatNarrative

	bar := &models.ProductRecord{
		ID:          "33333333-3333-4333-8333-333333333333",
		Name:        "Oat & Honey Bar",
		Brand:       "Trailhead",
		Category:    models.CategorySnacks,
		IsFavorite:  true,
		HealthScore: intPtr(61),
		NutritionFacts: &models.NutritionFacts{
			Calories: 471, Protein: 8.2, Carbs: 64, Sugar: 24, Fat: 19, Fiber: 6, ServingSize: "100g",
		},
	}
	bar.SetIngredients([]string{"Whole Grain Oats", "Honey", "Sunflower Oil", "Almonds", "Sea Salt"})
	bar.SetAllergens([]string{"Tree Nuts"})
	bar.Notes = narrative.Encode(narrative.Fields{
		Summary:         "A moderately processed snack bar sweetened mostly with honey.",
		ProcessingLevel: "moderately",
		NaturalPercent:  intPtr(80),
		Language:        "English",
	})
	bar.NotesFormat = models.NotesFormatNarrative

	for _, r := range []*models.ProductRecord{yogurt, soda, bar} {
		r.ScanDate = time.Now().UTC()
	}
	return []*models.ProductRecord{yogurt, soda, bar}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.NutritionFacts{},
		&models.ProductRecord{},
		&models.ProductIngredient{},
		&models.ProductAllergen{},
		&models.ProductImage{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	productStore := store.NewProductStore(db)

	for _, record := range demoRecords() {
		if err := productStore.Save(record); err != nil {
			log.Fatalf("❌ Failed to seed %q: %v", record.Name, err)
		}
		log.Printf("✅ Seeded %q (%s)", record.Name, record.ID)
	}

	log.Println("✅ Demo data ready")
}
