package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealerdesk/dealerdesk/internal/domain/dealership"
)

// ListDealerships handles GET /dealerships.
func (h *Handlers) ListDealerships(w http.ResponseWriter, r *http.Request) {
	list, err := h.dealerships.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "dealerships not found")
		return
	}
	if list == nil {
		list = []dealership.Dealership{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetDealership handles GET /dealerships/{id}.
func (h *Handlers) GetDealership(w http.ResponseWriter, r *http.Request) {
	d, err := h.dealerships.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "dealership not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// CreateDealership handles POST /dealerships.
func (h *Handlers) CreateDealership(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[dealership.CreateRequest](w, r)
	if !ok {
		return
	}

	d, err := h.dealerships.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "dealership not found")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}
