package http

import (
	"net/http"

	"github.com/dealerdesk/dealerdesk/internal/domain/vehicle"
	"github.com/dealerdesk/dealerdesk/internal/middleware"
)

// ListVehicles handles GET /vehicles.
func (h *Handlers) ListVehicles(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		writeDomainError(w, err, "invalid query")
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	rows, total, err := h.vehicles.List(r.Context(), tenant, params)
	if err != nil {
		writeDomainError(w, err, "vehicles not found")
		return
	}
	writeList(w, rows, total)
}

// GetVehicle handles GET /vehicles/{id}.
func (h *Handlers) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeDomainError(w, err, "invalid vehicle id")
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	v, err := h.vehicles.Get(r.Context(), tenant, id)
	if err != nil {
		writeDomainError(w, err, "vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// CreateVehicle handles POST /vehicles.
func (h *Handlers) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[vehicle.CreateRequest](w, r)
	if !ok {
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	v, err := h.vehicles.Create(r.Context(), tenant, req)
	if err != nil {
		writeDomainError(w, err, "vehicle not found")
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// UpdateVehicle handles PUT /vehicles/{id}.
func (h *Handlers) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeDomainError(w, err, "invalid vehicle id")
		return
	}
	req, ok := readJSON[vehicle.UpdateRequest](w, r)
	if !ok {
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	v, err := h.vehicles.Update(r.Context(), tenant, id, req)
	if err != nil {
		writeDomainError(w, err, "vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVehicle handles DELETE /vehicles/{id}.
func (h *Handlers) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeDomainError(w, err, "invalid vehicle id")
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	if err := h.vehicles.Delete(r.Context(), tenant, id); err != nil {
		writeDomainError(w, err, "vehicle not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
