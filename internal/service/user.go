package service

import (
	"context"

	"github.com/dealerdesk/dealerdesk/internal/domain/user"
	"github.com/dealerdesk/dealerdesk/internal/port/database"
)

// UserService handles dealership staff accounts.
type UserService struct {
	store database.Store
}

// NewUserService creates a new UserService.
func NewUserService(store database.Store) *UserService {
	return &UserService{store: store}
}

// List returns all users of the tenant.
func (s *UserService) List(ctx context.Context, tenant string) ([]user.User, error) {
	return s.store.ListUsers(ctx, tenant)
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, tenant string, id int64) (*user.User, error) {
	return s.store.GetUser(ctx, tenant, id)
}

// Create adds a user to the tenant's dealership. Email must be unused within
// the dealership.
func (s *UserService) Create(ctx context.Context, tenant string, req user.CreateRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u := &user.User{
		DealershipID: tenant,
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
