// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/dealerdesk/dealerdesk/internal/domain/dealership"
	"github.com/dealerdesk/dealerdesk/internal/domain/sale"
	"github.com/dealerdesk/dealerdesk/internal/domain/user"
	"github.com/dealerdesk/dealerdesk/internal/domain/vehicle"
	"github.com/dealerdesk/dealerdesk/internal/query"
)

// Store is the port interface for persistence. Every read and write is
// scoped to a tenant; implementations must never return a row belonging to
// a different dealership than the one requested, and must report such rows
// as absent (domain.ErrNotFound).
type Store interface {
	// Dealerships
	CreateDealership(ctx context.Context, d *dealership.Dealership) error
	GetDealership(ctx context.Context, id string) (*dealership.Dealership, error)
	ListDealerships(ctx context.Context) ([]dealership.Dealership, error)

	// Vehicles
	ListVehicles(ctx context.Context, plan query.Plan) (rows []vehicle.Vehicle, total int, err error)
	GetVehicle(ctx context.Context, tenant string, id int64, includeDeleted bool) (*vehicle.Vehicle, error)
	// FindVehicleByVIN looks up the natural key including tombstoned rows,
	// for duplicate-VIN detection on create.
	FindVehicleByVIN(ctx context.Context, tenant, vin string) (*vehicle.Vehicle, error)
	CreateVehicle(ctx context.Context, v *vehicle.Vehicle) error
	UpdateVehicle(ctx context.Context, v *vehicle.Vehicle) error
	SoftDeleteVehicle(ctx context.Context, tenant string, id int64) error

	// Sale records
	ListSaleRecords(ctx context.Context, plan query.Plan) (rows []sale.Record, total int, err error)
	GetSaleRecord(ctx context.Context, tenant string, id int64) (*sale.Record, error)
	CreateSaleRecord(ctx context.Context, rec *sale.Record) error
	UpdateSaleRecord(ctx context.Context, rec *sale.Record) error
	// SoldRecordExists reports whether any sale record other than
	// excludeRecordID holds status SOLD for the given vehicle. Pass 0 to
	// exclude nothing.
	SoldRecordExists(ctx context.Context, tenant string, vehicleID, excludeRecordID int64) (bool, error)

	// Users
	ListUsers(ctx context.Context, tenant string) ([]user.User, error)
	GetUser(ctx context.Context, tenant string, id int64) (*user.User, error)
	CreateUser(ctx context.Context, u *user.User) error
}
