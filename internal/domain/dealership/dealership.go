// Package dealership defines the tenant entity. Every vehicle, sale record,
// user and cache key is scoped to exactly one dealership.
package dealership

import (
	"fmt"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/domain"
)

// Dealership is the tenant boundary of the system.
type Dealership struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the payload for registering a dealership.
type CreateRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Validate checks the request. Returns a domain.ErrValidation-wrapped error.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(r.Name) > 255 {
		return fmt.Errorf("%w: name exceeds 255 characters", domain.ErrValidation)
	}
	return nil
}
