package http

import (
	"github.com/dealerdesk/dealerdesk/internal/service"
)

// Handlers bundles the HTTP handlers and their service dependencies.
type Handlers struct {
	vehicles    *service.VehicleService
	sales       *service.SaleService
	dealerships *service.DealershipService
	users       *service.UserService
	exports     *service.ExportService
}

// NewHandlers creates the handler set.
func NewHandlers(
	vehicles *service.VehicleService,
	sales *service.SaleService,
	dealerships *service.DealershipService,
	users *service.UserService,
	exports *service.ExportService,
) *Handlers {
	return &Handlers{
		vehicles:    vehicles,
		sales:       sales,
		dealerships: dealerships,
		users:       users,
		exports:     exports,
	}
}
