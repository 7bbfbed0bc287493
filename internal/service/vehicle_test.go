package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dealerdesk/dealerdesk/internal/domain"
	"github.com/dealerdesk/dealerdesk/internal/domain/vehicle"
	"github.com/dealerdesk/dealerdesk/internal/listcache"
	"github.com/dealerdesk/dealerdesk/internal/query"
	"github.com/dealerdesk/dealerdesk/internal/service"
)

func newVehicleService(store *mockStore) *service.VehicleService {
	tiers := newMemCache()
	cache := listcache.NewListCache[vehicle.Vehicle](tiers, 0, nil)
	inv := listcache.NewInvalidator(tiers, tiers, nil)
	return service.NewVehicleService(store, cache, inv)
}

func mustCreateVehicle(t *testing.T, svc *service.VehicleService, tenant, vin string) *vehicle.Vehicle {
	t.Helper()
	v, err := svc.Create(context.Background(), tenant, vehicle.CreateRequest{
		VIN: vin, Year: 2021, Make: "Honda", Model: "Civic", Price: 21000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return v
}

func TestVehicleService_ListServesSecondReadFromCache(t *testing.T) {
	store := newMockStore()
	svc := newVehicleService(store)
	ctx := context.Background()

	mustCreateVehicle(t, svc, "d-1", "VIN-1")
	before := store.listVehicleCalls

	rows, total, err := svc.List(ctx, "d-1", query.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected 1 vehicle, got rows=%d total=%d", len(rows), total)
	}

	rows2, total2, err := svc.List(ctx, "d-1", query.Params{})
	if err != nil {
		t.Fatalf("cached List: %v", err)
	}
	if store.listVehicleCalls != before+1 {
		t.Errorf("second identical read hit the store (%d calls)", store.listVehicleCalls-before)
	}
	if total2 != total || len(rows2) != len(rows) {
		t.Errorf("cached page differs: rows=%d total=%d", len(rows2), total2)
	}
}

func TestVehicleService_WritesPurgeListCache(t *testing.T) {
	store := newMockStore()
	svc := newVehicleService(store)
	ctx := context.Background()

	mustCreateVehicle(t, svc, "d-1", "VIN-1")
	if _, _, err := svc.List(ctx, "d-1", query.Params{}); err != nil {
		t.Fatalf("prime List: %v", err)
	}

	mustCreateVehicle(t, svc, "d-1", "VIN-2")

	rows, total, err := svc.List(ctx, "d-1", query.Params{})
	if err != nil {
		t.Fatalf("List after create: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Errorf("read after write is stale: rows=%d total=%d", len(rows), total)
	}
}

func TestVehicleService_CreateRejectsVINHeldByTombstone(t *testing.T) {
	store := newMockStore()
	svc := newVehicleService(store)
	ctx := context.Background()

	v := mustCreateVehicle(t, svc, "d-1", "VIN-1")
	if err := svc.Delete(ctx, "d-1", v.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := svc.Create(ctx, "d-1", vehicle.CreateRequest{
		VIN: "VIN-1", Year: 2022, Make: "Honda", Model: "Civic", Price: 22000,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for a VIN held by a soft-deleted vehicle, got %v", err)
	}

	// The same VIN is free for another dealership.
	if _, err := svc.Create(ctx, "d-2", vehicle.CreateRequest{
		VIN: "VIN-1", Year: 2022, Make: "Honda", Model: "Civic", Price: 22000,
	}); err != nil {
		t.Errorf("VIN uniqueness leaked across tenants: %v", err)
	}
}

func TestVehicleService_NoopUpdateSkipsWriteAndPurge(t *testing.T) {
	store := newMockStore()
	svc := newVehicleService(store)
	ctx := context.Background()

	v := mustCreateVehicle(t, svc, "d-1", "VIN-1")
	if _, _, err := svc.List(ctx, "d-1", query.Params{}); err != nil {
		t.Fatalf("prime List: %v", err)
	}
	listCalls := store.listVehicleCalls

	price := v.Price // unchanged value
	got, err := svc.Update(ctx, "d-1", v.ID, vehicle.UpdateRequest{Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Price != v.Price {
		t.Errorf("no-op update altered the row")
	}
	if store.updateVehicleCalls != 0 {
		t.Errorf("no-op update wrote to the store")
	}

	// Cache entry survived: the purge must not have run.
	if _, _, err := svc.List(ctx, "d-1", query.Params{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if store.listVehicleCalls != listCalls {
		t.Errorf("no-op update purged the list cache")
	}
}

func TestVehicleService_UpdateWritesAndPurges(t *testing.T) {
	store := newMockStore()
	svc := newVehicleService(store)
	ctx := context.Background()

	v := mustCreateVehicle(t, svc, "d-1", "VIN-1")
	if _, _, err := svc.List(ctx, "d-1", query.Params{}); err != nil {
		t.Fatalf("prime List: %v", err)
	}

	price := 19500.0
	got, err := svc.Update(ctx, "d-1", v.ID, vehicle.UpdateRequest{Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Price != price {
		t.Errorf("price = %v, want %v", got.Price, price)
	}

	rows, _, err := svc.List(ctx, "d-1", query.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].Price != price {
		t.Errorf("read after update is stale: %+v", rows)
	}
}

func TestVehicleService_TenantIsolation(t *testing.T) {
	store := newMockStore()
	svc := newVehicleService(store)
	ctx := context.Background()

	v := mustCreateVehicle(t, svc, "d-1", "VIN-1")

	if _, err := svc.Get(ctx, "d-2", v.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound reading another tenant's vehicle, got %v", err)
	}
	if _, total, err := svc.List(ctx, "d-2", query.Params{}); err != nil || total != 0 {
		t.Errorf("another tenant's list saw total=%d err=%v", total, err)
	}
	if err := svc.Delete(ctx, "d-2", v.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting another tenant's vehicle, got %v", err)
	}
}

func TestVehicleService_DeletedVehicleReadsAsAbsent(t *testing.T) {
	store := newMockStore()
	svc := newVehicleService(store)
	ctx := context.Background()

	v := mustCreateVehicle(t, svc, "d-1", "VIN-1")
	if err := svc.Delete(ctx, "d-1", v.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Get(ctx, "d-1", v.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a tombstoned vehicle, got %v", err)
	}
	if _, total, _ := svc.List(ctx, "d-1", query.Params{}); total != 0 {
		t.Errorf("tombstoned vehicle still listed, total=%d", total)
	}
	if _, total, _ := svc.List(ctx, "d-1", query.Params{IncludeDeleted: true}); total != 1 {
		t.Errorf("tombstoned vehicle missing from include-deleted list, total=%d", total)
	}
}

func TestVehicleService_ListRejectsUnknownSortField(t *testing.T) {
	svc := newVehicleService(newMockStore())

	_, _, err := svc.List(context.Background(), "d-1", query.Params{Sort: "vin:asc"})
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery for a non-sortable field, got %v", err)
	}
}
