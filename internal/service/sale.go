package service

import (
	"context"
	"strconv"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/domain/sale"
	"github.com/dealerdesk/dealerdesk/internal/listcache"
	"github.com/dealerdesk/dealerdesk/internal/port/database"
	"github.com/dealerdesk/dealerdesk/internal/query"
)

var saleQueryConfig = query.Config{
	Sortable: map[string]string{
		"saleDate":   "sale_date",
		"finalPrice": "final_price",
		"status":     "status",
		"createdAt":  "created_at",
	},
	Searchable: map[string]string{
		"buyerName": "buyer_name",
	},
}

// SaleService handles sale records (bills of sale). Writes that move a
// record into SOLD consult the exclusivity guard first; the store's unique
// index backstops the guard under concurrent writers.
type SaleService struct {
	store database.Store
	cache *listcache.ListCache[sale.Record]
	inv   *listcache.Invalidator
	guard *ExclusivityGuard
}

// NewSaleService creates a new SaleService.
func NewSaleService(store database.Store, cache *listcache.ListCache[sale.Record], inv *listcache.Invalidator, guard *ExclusivityGuard) *SaleService {
	return &SaleService{store: store, cache: cache, inv: inv, guard: guard}
}

// ListForVehicle returns one page of a vehicle's sale records plus the total
// match count, serving from cache when a fresh entry exists.
func (s *SaleService) ListForVehicle(ctx context.Context, tenant string, vehicleID int64, p query.Params) ([]sale.Record, int, error) {
	plan, err := query.Build(tenant, p, saleQueryConfig, query.Eq("vehicle_id", vehicleID))
	if err != nil {
		return nil, 0, err
	}

	key := listcache.ScopedKey(listcache.EntitySaleRecords, tenant, strconv.FormatInt(vehicleID, 10), p)
	if page, ok := s.cache.Get(ctx, key); ok {
		return page.Rows, page.Total, nil
	}

	rows, total, err := s.store.ListSaleRecords(ctx, plan)
	if err != nil {
		return nil, 0, err
	}

	s.cache.Set(ctx, key, listcache.Page[sale.Record]{Rows: rows, Total: total})
	return rows, total, nil
}

// Get returns a sale record by ID.
func (s *SaleService) Get(ctx context.Context, tenant string, id int64) (*sale.Record, error) {
	return s.store.GetSaleRecord(ctx, tenant, id)
}

// Create writes a sale record for a vehicle. Status defaults to SOLD, and a
// SOLD record is only created when the vehicle has no other active sale.
func (s *SaleService) Create(ctx context.Context, tenant string, vehicleID int64, req sale.CreateRequest) (*sale.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The vehicle must exist, belong to this tenant, and not be tombstoned.
	if _, err := s.store.GetVehicle(ctx, tenant, vehicleID, false); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = sale.StatusSold
	}
	if status == sale.StatusSold {
		if err := s.guard.AssertSaleAllowed(ctx, tenant, vehicleID, 0); err != nil {
			return nil, err
		}
	}

	saleDate := time.Now().UTC()
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}

	rec := &sale.Record{
		DealershipID: tenant,
		VehicleID:    vehicleID,
		SaleDate:     saleDate,
		FinalPrice:   req.FinalPrice,
		BuyerName:    req.BuyerName,
		BuyerAddress: req.BuyerAddress,
		Status:       status,
	}
	if err := s.store.CreateSaleRecord(ctx, rec); err != nil {
		return nil, err
	}

	s.inv.Purge(ctx, listcache.EntitySaleRecords, tenant)
	return rec, nil
}

// Update modifies a sale record. The exclusivity guard runs only when the
// update moves the record into SOLD; a request that changes nothing returns
// the current row without writing or purging.
func (s *SaleService) Update(ctx context.Context, tenant string, id int64, req sale.UpdateRequest) (*sale.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.store.GetSaleRecord(ctx, tenant, id)
	if err != nil {
		return nil, err
	}

	if req.TransitionsToSold(rec.Status) {
		if err := s.guard.AssertSaleAllowed(ctx, tenant, rec.VehicleID, rec.ID); err != nil {
			return nil, err
		}
	}

	if !req.Apply(rec) {
		return rec, nil
	}

	if err := s.store.UpdateSaleRecord(ctx, rec); err != nil {
		return nil, err
	}

	s.inv.Purge(ctx, listcache.EntitySaleRecords, tenant)
	return rec, nil
}
