// Package vehicle defines the inventory vehicle entity and its requests.
package vehicle

import (
	"fmt"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/domain"
)

// Status is the inventory state of a vehicle.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusPending   Status = "PENDING"
	StatusSold      Status = "SOLD"
)

// Valid reports whether s is a known vehicle status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold:
		return true
	}
	return false
}

// Vehicle is an inventory item owned by exactly one dealership.
// (DealershipID, VIN) is unique while the row is not soft-deleted.
type Vehicle struct {
	ID           int64      `json:"id"`
	DealershipID string     `json:"dealership_id"`
	VIN          string     `json:"vin"`
	Year         int        `json:"year"`
	Make         string     `json:"make"`
	Model        string     `json:"model"`
	Price        float64    `json:"price"`
	Status       Status     `json:"status"`
	ImageURL     string     `json:"image_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the vehicle carries a tombstone.
func (v *Vehicle) Deleted() bool { return v.DeletedAt != nil }

// CreateRequest is the payload for adding a vehicle to inventory.
type CreateRequest struct {
	VIN      string  `json:"vin"`
	Year     int     `json:"year"`
	Make     string  `json:"make"`
	Model    string  `json:"model"`
	Price    float64 `json:"price"`
	Status   Status  `json:"status,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}

// Validate checks the request. Returns a domain.ErrValidation-wrapped error.
func (r *CreateRequest) Validate() error {
	if r.VIN == "" {
		return fmt.Errorf("%w: vin is required", domain.ErrValidation)
	}
	if r.Make == "" {
		return fmt.Errorf("%w: make is required", domain.ErrValidation)
	}
	if r.Model == "" {
		return fmt.Errorf("%w: model is required", domain.ErrValidation)
	}
	if r.Year < 1900 {
		return fmt.Errorf("%w: year must be 1900 or later", domain.ErrValidation)
	}
	if r.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if r.Status != "" && !r.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, r.Status)
	}
	return nil
}

// UpdateRequest is the payload for modifying a vehicle. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Year     *int     `json:"year,omitempty"`
	Make     *string  `json:"make,omitempty"`
	Model    *string  `json:"model,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Status   *Status  `json:"status,omitempty"`
	ImageURL *string  `json:"image_url,omitempty"`
}

// Validate checks the request. Returns a domain.ErrValidation-wrapped error.
func (r *UpdateRequest) Validate() error {
	if r.Status != nil && !r.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *r.Status)
	}
	if r.Price != nil && *r.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if r.Year != nil && *r.Year < 1900 {
		return fmt.Errorf("%w: year must be 1900 or later", domain.ErrValidation)
	}
	return nil
}

// Apply copies the non-nil fields of r onto v and reports whether any stored
// value actually changed.
func (r *UpdateRequest) Apply(v *Vehicle) bool {
	changed := false
	if r.Year != nil && *r.Year != v.Year {
		v.Year = *r.Year
		changed = true
	}
	if r.Make != nil && *r.Make != v.Make {
		v.Make = *r.Make
		changed = true
	}
	if r.Model != nil && *r.Model != v.Model {
		v.Model = *r.Model
		changed = true
	}
	if r.Price != nil && *r.Price != v.Price {
		v.Price = *r.Price
		changed = true
	}
	if r.Status != nil && *r.Status != v.Status {
		v.Status = *r.Status
		changed = true
	}
	if r.ImageURL != nil && *r.ImageURL != v.ImageURL {
		v.ImageURL = *r.ImageURL
		changed = true
	}
	return changed
}
