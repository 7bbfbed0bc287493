package service

import (
	"context"
	"fmt"

	"github.com/dealerdesk/dealerdesk/internal/domain"
	"github.com/dealerdesk/dealerdesk/internal/port/database"
)

// ExclusivityGuard enforces that a vehicle carries at most one SOLD sale
// record. The guard's read-then-decide check is not atomic with respect to
// concurrent writers; it exists to give a clean conflict error on the common
// path. The partial unique index on sale_records is what holds the invariant
// when two writers race past the check.
type ExclusivityGuard struct {
	store database.Store
}

// NewExclusivityGuard creates a guard over the given store.
func NewExclusivityGuard(store database.Store) *ExclusivityGuard {
	return &ExclusivityGuard{store: store}
}

// AssertSaleAllowed returns domain.ErrConflict when a sale record other than
// excludeRecordID already holds SOLD for the vehicle. Pass 0 to exclude
// nothing (creation path).
func (g *ExclusivityGuard) AssertSaleAllowed(ctx context.Context, tenant string, vehicleID, excludeRecordID int64) error {
	sold, err := g.store.SoldRecordExists(ctx, tenant, vehicleID, excludeRecordID)
	if err != nil {
		return fmt.Errorf("check active sale for vehicle %d: %w", vehicleID, err)
	}
	if sold {
		return fmt.Errorf("vehicle %d already has an active sale: %w", vehicleID, domain.ErrConflict)
	}
	return nil
}
