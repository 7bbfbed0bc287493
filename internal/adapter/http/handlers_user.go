package http

import (
	"net/http"

	"github.com/dealerdesk/dealerdesk/internal/domain/user"
	"github.com/dealerdesk/dealerdesk/internal/middleware"
)

// ListUsers handles GET /users.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantIDFromContext(r.Context())
	list, err := h.users.List(r.Context(), tenant)
	if err != nil {
		writeDomainError(w, err, "users not found")
		return
	}
	if list == nil {
		list = []user.User{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetUser handles GET /users/{id}.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeDomainError(w, err, "invalid user id")
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	u, err := h.users.Get(r.Context(), tenant, id)
	if err != nil {
		writeDomainError(w, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CreateUser handles POST /users.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.CreateRequest](w, r)
	if !ok {
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	u, err := h.users.Create(r.Context(), tenant, req)
	if err != nil {
		writeDomainError(w, err, "user not found")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}
