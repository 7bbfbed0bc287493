// Package sale defines the sale record (bill of sale) entity.
package sale

import (
	"fmt"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/domain"
)

// Status is the lifecycle state of a sale record.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSold      Status = "SOLD"
	StatusPending   Status = "PENDING"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a known sale status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSold, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// Record is a bill of sale tied to exactly one vehicle of the same
// dealership. At most one record per (dealership, vehicle) may be SOLD at
// any time.
type Record struct {
	ID           int64     `json:"id"`
	DealershipID string    `json:"dealership_id"`
	VehicleID    int64     `json:"vehicle_id"`
	SaleDate     time.Time `json:"sale_date"`
	FinalPrice   float64   `json:"final_price"`
	BuyerName    string    `json:"buyer_name"`
	BuyerAddress string    `json:"buyer_address"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest is the payload for creating a sale record. Status defaults
// to SOLD when empty.
type CreateRequest struct {
	FinalPrice   float64    `json:"final_price"`
	BuyerName    string     `json:"buyer_name"`
	BuyerAddress string     `json:"buyer_address"`
	SaleDate     *time.Time `json:"sale_date,omitempty"`
	Status       Status     `json:"status,omitempty"`
}

// Validate checks the request. Returns a domain.ErrValidation-wrapped error.
func (r *CreateRequest) Validate() error {
	if r.FinalPrice <= 0 {
		return fmt.Errorf("%w: final_price must be positive", domain.ErrValidation)
	}
	if r.BuyerName == "" {
		return fmt.Errorf("%w: buyer_name is required", domain.ErrValidation)
	}
	if r.BuyerAddress == "" {
		return fmt.Errorf("%w: buyer_address is required", domain.ErrValidation)
	}
	if r.Status != "" && !r.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, r.Status)
	}
	return nil
}

// UpdateRequest is the payload for modifying a sale record. Nil fields are
// left unchanged.
type UpdateRequest struct {
	FinalPrice   *float64 `json:"final_price,omitempty"`
	BuyerName    *string  `json:"buyer_name,omitempty"`
	BuyerAddress *string  `json:"buyer_address,omitempty"`
	Status       *Status  `json:"status,omitempty"`
}

// Validate checks the request. Returns a domain.ErrValidation-wrapped error.
func (r *UpdateRequest) Validate() error {
	if r.FinalPrice != nil && *r.FinalPrice <= 0 {
		return fmt.Errorf("%w: final_price must be positive", domain.ErrValidation)
	}
	if r.Status != nil && !r.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *r.Status)
	}
	return nil
}

// Apply copies the non-nil fields of r onto rec and reports whether any
// stored value actually changed. Callers use the report to skip no-op
// writes and the cache purge that would follow them.
func (r *UpdateRequest) Apply(rec *Record) bool {
	changed := false
	if r.FinalPrice != nil && *r.FinalPrice != rec.FinalPrice {
		rec.FinalPrice = *r.FinalPrice
		changed = true
	}
	if r.BuyerName != nil && *r.BuyerName != rec.BuyerName {
		rec.BuyerName = *r.BuyerName
		changed = true
	}
	if r.BuyerAddress != nil && *r.BuyerAddress != rec.BuyerAddress {
		rec.BuyerAddress = *r.BuyerAddress
		changed = true
	}
	if r.Status != nil && *r.Status != rec.Status {
		rec.Status = *r.Status
		changed = true
	}
	return changed
}

// TransitionsToSold reports whether applying r to a record with the given
// current status would move it into SOLD. Only that transition consults the
// exclusivity guard.
func (r *UpdateRequest) TransitionsToSold(current Status) bool {
	return r.Status != nil && *r.Status == StatusSold && current != StatusSold
}
