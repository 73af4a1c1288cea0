package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/foodlens/foodlensgo/internal/analysis"
	"github.com/foodlens/foodlensgo/internal/export"
	"github.com/foodlens/foodlensgo/internal/service"
	"github.com/foodlens/foodlensgo/internal/store"
	"github.com/gorilla/mux"
)

// ScanRequest carries the OCR text of one photographed label
type ScanRequest struct {
	Text    string `json:"text"`
	Offline bool   `json:"offline"`
}

// ScanResponse returns the persisted record. Warning carries the analysis
// service's message when it rejected the label but a fallback was generated.
type ScanResponse struct {
	Record  interface{} `json:"record"`
	Warning string      `json:"warning,omitempty"`
}

// handleScan runs the full label-to-record pipeline for one scan
func (r *Router) handleScan(w http.ResponseWriter, req *http.Request) {
	var body ScanRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	text := strings.TrimSpace(body.Text)
	if text == "" {
		respondError(w, http.StatusBadRequest, "Empty scan text")
		return
	}

	record, err := r.scanner.SubmitScan(req.Context(), text, service.Preferences{Offline: body.Offline})
	if err != nil {
		var svcErr *analysis.ServiceError
		if errors.As(err, &svcErr) {
			// The label was rejected but the user still gets a usable record
			respondJSON(w, http.StatusOK, ScanResponse{Record: record, Warning: svcErr.Message})
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ScanResponse{Record: record})
}

func (r *Router) getProduct(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	record, err := r.store.LoadComplete(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

func (r *Router) searchProducts(w http.ResponseWriter, req *http.Request) {
	query := strings.TrimSpace(req.URL.Query().Get("q"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter q")
		return
	}

	records, err := r.store.Search(query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (r *Router) listByCategory(w http.ResponseWriter, req *http.Request) {
	records, err := r.store.ByCategory(mux.Vars(req)["category"])
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (r *Router) listRecent(w http.ResponseWriter, req *http.Request) {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	records, err := r.store.Recent(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (r *Router) listFavorites(w http.ResponseWriter, req *http.Request) {
	records, err := r.store.Favorites()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (r *Router) toggleFavorite(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	state, err := r.store.ToggleFavorite(id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"isFavorite": state})
}

// NoteRequest carries the user's free-text note
type NoteRequest struct {
	Text string `json:"text"`
}

func (r *Router) addNote(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var body NoteRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := r.store.AddNote(id, body.Text)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (r *Router) exportCard(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	record, err := r.store.LoadComplete(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	record = r.store.Reconcile(record)

	pdf, err := export.SummaryCard(record)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="product-card.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func (r *Router) clearAll(w http.ResponseWriter, req *http.Request) {
	if err := r.store.DeleteAll(); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
