// Package service implements the application logic between the HTTP
// handlers and the store, cache, and queue ports.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dealerdesk/dealerdesk/internal/domain"
	"github.com/dealerdesk/dealerdesk/internal/domain/vehicle"
	"github.com/dealerdesk/dealerdesk/internal/listcache"
	"github.com/dealerdesk/dealerdesk/internal/port/database"
	"github.com/dealerdesk/dealerdesk/internal/query"
)

// vehicleQueryConfig whitelists the fields a caller may sort vehicles by and
// the columns free-text search spans.
var vehicleQueryConfig = query.Config{
	Sortable: map[string]string{
		"year":      "year",
		"make":      "make",
		"model":     "model",
		"price":     "price",
		"status":    "status",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	Searchable: map[string]string{
		"vin":   "vin",
		"make":  "make",
		"model": "model",
	},
}

// VehicleService handles inventory reads and writes. List reads go through
// the list cache; every successful write purges the tenant's vehicle list
// namespace.
type VehicleService struct {
	store database.Store
	cache *listcache.ListCache[vehicle.Vehicle]
	inv   *listcache.Invalidator
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(store database.Store, cache *listcache.ListCache[vehicle.Vehicle], inv *listcache.Invalidator) *VehicleService {
	return &VehicleService{store: store, cache: cache, inv: inv}
}

// List returns one page of the tenant's vehicles plus the total match count,
// serving from cache when a fresh entry exists.
func (s *VehicleService) List(ctx context.Context, tenant string, p query.Params) ([]vehicle.Vehicle, int, error) {
	plan, err := query.Build(tenant, p, vehicleQueryConfig)
	if err != nil {
		return nil, 0, err
	}

	key := listcache.Key(listcache.EntityVehicles, tenant, p)
	if page, ok := s.cache.Get(ctx, key); ok {
		return page.Rows, page.Total, nil
	}

	rows, total, err := s.store.ListVehicles(ctx, plan)
	if err != nil {
		return nil, 0, err
	}

	s.cache.Set(ctx, key, listcache.Page[vehicle.Vehicle]{Rows: rows, Total: total})
	return rows, total, nil
}

// Get returns a vehicle by ID. Soft-deleted vehicles read as absent.
func (s *VehicleService) Get(ctx context.Context, tenant string, id int64) (*vehicle.Vehicle, error) {
	return s.store.GetVehicle(ctx, tenant, id, false)
}

// Create adds a vehicle to the tenant's inventory. The VIN must be unused
// within the dealership, including by soft-deleted vehicles.
func (s *VehicleService) Create(ctx context.Context, tenant string, req vehicle.CreateRequest) (*vehicle.Vehicle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.FindVehicleByVIN(ctx, tenant, req.VIN)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("vin %s is already in use: %w", req.VIN, domain.ErrConflict)
	}

	status := req.Status
	if status == "" {
		status = vehicle.StatusAvailable
	}

	v := &vehicle.Vehicle{
		DealershipID: tenant,
		VIN:          req.VIN,
		Year:         req.Year,
		Make:         req.Make,
		Model:        req.Model,
		Price:        req.Price,
		Status:       status,
		ImageURL:     req.ImageURL,
	}
	if err := s.store.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}

	s.inv.Purge(ctx, listcache.EntityVehicles, tenant)
	return v, nil
}

// Update modifies a vehicle. A request that changes nothing returns the
// current row without writing or purging.
func (s *VehicleService) Update(ctx context.Context, tenant string, id int64, req vehicle.UpdateRequest) (*vehicle.Vehicle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	v, err := s.store.GetVehicle(ctx, tenant, id, false)
	if err != nil {
		return nil, err
	}
	if !req.Apply(v) {
		return v, nil
	}

	if err := s.store.UpdateVehicle(ctx, v); err != nil {
		return nil, err
	}

	s.inv.Purge(ctx, listcache.EntityVehicles, tenant)
	return v, nil
}

// Delete tombstones a vehicle. The VIN stays reserved.
func (s *VehicleService) Delete(ctx context.Context, tenant string, id int64) error {
	if err := s.store.SoftDeleteVehicle(ctx, tenant, id); err != nil {
		return err
	}

	s.inv.Purge(ctx, listcache.EntityVehicles, tenant)
	return nil
}
