package http

import (
	"net/http"

	"github.com/dealerdesk/dealerdesk/internal/domain/sale"
	"github.com/dealerdesk/dealerdesk/internal/middleware"
)

// ListVehicleSales handles GET /vehicles/{id}/sales.
func (h *Handlers) ListVehicleSales(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := idParam(r, "id")
	if err != nil {
		writeDomainError(w, err, "invalid vehicle id")
		return
	}
	params, err := listParams(r)
	if err != nil {
		writeDomainError(w, err, "invalid query")
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	rows, total, err := h.sales.ListForVehicle(r.Context(), tenant, vehicleID, params)
	if err != nil {
		writeDomainError(w, err, "sale records not found")
		return
	}
	writeList(w, rows, total)
}

// CreateSale handles POST /vehicles/{id}/sales.
func (h *Handlers) CreateSale(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := idParam(r, "id")
	if err != nil {
		writeDomainError(w, err, "invalid vehicle id")
		return
	}
	req, ok := readJSON[sale.CreateRequest](w, r)
	if !ok {
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	rec, err := h.sales.Create(r.Context(), tenant, vehicleID, req)
	if err != nil {
		writeDomainError(w, err, "vehicle not found")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// GetSale handles GET /sales/{id}.
func (h *Handlers) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeDomainError(w, err, "invalid sale record id")
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	rec, err := h.sales.Get(r.Context(), tenant, id)
	if err != nil {
		writeDomainError(w, err, "sale record not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// UpdateSale handles PUT /sales/{id}.
func (h *Handlers) UpdateSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeDomainError(w, err, "invalid sale record id")
		return
	}
	req, ok := readJSON[sale.UpdateRequest](w, r)
	if !ok {
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	rec, err := h.sales.Update(r.Context(), tenant, id, req)
	if err != nil {
		writeDomainError(w, err, "sale record not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
