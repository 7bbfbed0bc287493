package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealerdesk/dealerdesk/internal/middleware"
)

// MountRoutes registers all API routes on the given chi router. Everything
// under /api/v1 except the dealership registry requires X-Tenant-ID.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Dealership registry: the one resource outside tenant scope.
		r.Get("/dealerships", h.ListDealerships)
		r.Post("/dealerships", h.CreateDealership)
		r.Get("/dealerships/{id}", h.GetDealership)

		r.Group(func(r chi.Router) {
			r.Use(middleware.TenantID)

			// Vehicles
			r.Get("/vehicles", h.ListVehicles)
			r.Post("/vehicles", h.CreateVehicle)
			r.Get("/vehicles/{id}", h.GetVehicle)
			r.Put("/vehicles/{id}", h.UpdateVehicle)
			r.Delete("/vehicles/{id}", h.DeleteVehicle)

			// Sale records (nested under vehicles)
			r.Get("/vehicles/{id}/sales", h.ListVehicleSales)
			r.Post("/vehicles/{id}/sales", h.CreateSale)

			// Sale records (direct access)
			r.Get("/sales/{id}", h.GetSale)
			r.Put("/sales/{id}", h.UpdateSale)

			// Users
			r.Get("/users", h.ListUsers)
			r.Post("/users", h.CreateUser)
			r.Get("/users/{id}", h.GetUser)

			// Marketing sync
			r.Post("/sync", h.EnqueueSync)
		})
	})
}
