// Package user defines dealership staff accounts. Credential handling and
// session management live outside this service.
package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/domain"
)

// Role controls what a user may do within their dealership.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleStaff }

// User belongs to exactly one dealership; email is unique per dealership.
type User struct {
	ID           int64     `json:"id"`
	DealershipID string    `json:"dealership_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest is the payload for adding a user to a dealership.
type CreateRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Validate checks the request. Returns a domain.ErrValidation-wrapped error.
func (r *CreateRequest) Validate() error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !r.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, r.Role)
	}
	return nil
}
