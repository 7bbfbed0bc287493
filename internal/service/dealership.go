package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dealerdesk/dealerdesk/internal/domain/dealership"
	"github.com/dealerdesk/dealerdesk/internal/port/database"
)

// DealershipService handles the dealership (tenant) registry. Dealerships
// are the one resource not scoped by X-Tenant-ID.
type DealershipService struct {
	store database.Store
}

// NewDealershipService creates a new DealershipService.
func NewDealershipService(store database.Store) *DealershipService {
	return &DealershipService{store: store}
}

// Create registers a dealership under a fresh UUID.
func (s *DealershipService) Create(ctx context.Context, req dealership.CreateRequest) (*dealership.Dealership, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d := &dealership.Dealership{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Address: req.Address,
	}
	if err := s.store.CreateDealership(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get returns a dealership by ID.
func (s *DealershipService) Get(ctx context.Context, id string) (*dealership.Dealership, error) {
	return s.store.GetDealership(ctx, id)
}

// List returns all dealerships.
func (s *DealershipService) List(ctx context.Context) ([]dealership.Dealership, error) {
	return s.store.ListDealerships(ctx)
}
