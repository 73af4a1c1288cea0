package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/foodlens/foodlensgo/internal/database"
	"github.com/foodlens/foodlensgo/internal/middleware"
	"github.com/foodlens/foodlensgo/internal/models"
	"github.com/foodlens/foodlensgo/internal/service"
	ws "github.com/foodlens/foodlensgo/internal/websocket"
	"github.com/gorilla/mux"
)

// ScanService is the scan pipeline as seen by the HTTP layer.
type ScanService interface {
	SubmitScan(ctx context.Context, rawText string, prefs service.Preferences) (*models.ProductRecord, error)
}

// ProductStore is the persistence surface the handlers need.
type ProductStore interface {
	LoadComplete(id string) (*models.ProductRecord, error)
	Reconcile(record *models.ProductRecord) *models.ProductRecord
	Search(query string) ([]models.ProductRecord, error)
	ByCategory(category string) ([]models.ProductRecord, error)
	Recent(limit int) ([]models.ProductRecord, error)
	Favorites() ([]models.ProductRecord, error)
	ToggleFavorite(id string) (bool, error)
	AddNote(id, text string) error
	DeleteAll() error
}

// Router wraps the mux router and the application dependencies
type Router struct {
	*mux.Router
	db        *database.DB
	store     ProductStore
	scanner   ScanService
	hub       *ws.Hub
	jwtSecret string
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, store ProductStore, scanner ScanService, hub *ws.Hub, jwtSecret string) *Router {
	r := &Router{
		Router:    mux.NewRouter(),
		db:        db,
		store:     store,
		scanner:   scanner,
		hub:       hub,
		jwtSecret: jwtSecret,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/login", r.login).Methods("POST")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(jwtSecret))

	api.HandleFunc("/scan", r.handleScan).Methods("POST")

	api.HandleFunc("/products", r.clearAll).Methods("DELETE")
	api.HandleFunc("/products/recent", r.listRecent).Methods("GET")
	api.HandleFunc("/products/favorites", r.listFavorites).Methods("GET")
	api.HandleFunc("/products/search", r.searchProducts).Methods("GET")
	api.HandleFunc("/products/category/{category}", r.listByCategory).Methods("GET")
	api.HandleFunc("/products/{id}", r.getProduct).Methods("GET")
	api.HandleFunc("/products/{id}/favorite", r.toggleFavorite).Methods("POST")
	api.HandleFunc("/products/{id}/note", r.addNote).Methods("POST")
	api.HandleFunc("/products/{id}/card", r.exportCard).Methods("GET")

	// Scan event stream for connected app clients
	if hub != nil {
		r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
			ws.ServeWs(hub, w, req)
		})
	}

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
