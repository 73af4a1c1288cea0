package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodlens/foodlensgo/internal/analysis"
	"github.com/foodlens/foodlensgo/internal/buildinfo"
	"github.com/foodlens/foodlensgo/internal/config"
	"github.com/foodlens/foodlensgo/internal/database"
	"github.com/foodlens/foodlensgo/internal/handlers"
	"github.com/foodlens/foodlensgo/internal/models"
	"github.com/foodlens/foodlensgo/internal/service"
	"github.com/foodlens/foodlensgo/internal/store"
	"github.com/foodlens/foodlensgo/internal/websocket"
)

func main() {
	log.Printf("🚀 FoodLens API starting (build %s, commit %s)", buildinfo.BuildTime, buildinfo.CommitHash)

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.NutritionFacts{},
		&models.ProductRecord{},
		&models.ProductIngredient{},
		&models.ProductAllergen{},
		&models.ProductImage{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Connect to the analysis service. A missing key is not fatal: the
	// scanner degrades to offline fallback records.
	var analyzer analysis.Analyzer
	if cfg.Gemini.APIKey != "" && !cfg.Offline {
		client, err := analysis.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
		if err != nil {
			log.Printf("⚠️ Analysis: failed to init Gemini client: %v (falling back to offline mode)", err)
		} else {
			analyzer = client
			log.Printf("✅ Analysis: Gemini client ready (model %s)", cfg.Gemini.Model)
		}
	} else {
		log.Println("📴 Analysis: running in offline mode, scans use generated fallbacks")
	}

	// 5. Wire the scan pipeline
	productStore := store.NewProductStore(db)

	hub := websocket.NewHub()
	go hub.Run()

	scanner := service.NewScanner(productStore, analyzer, hub, cfg.Offline)

	// 6. Set up HTTP router
	router := handlers.NewRouter(db, productStore, scanner, hub, cfg.JWTSecret)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Release the analysis client
	if analyzer != nil {
		analyzer.Close()
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
