package postgres

import (
	"context"
	"fmt"

	"github.com/dealerdesk/dealerdesk/internal/domain/dealership"
)

const dealershipColumns = `id, name, address, created_at, updated_at`

func (s *Store) CreateDealership(ctx context.Context, d *dealership.Dealership) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO dealerships (id, name, address)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		d.ID, d.Name, d.Address,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return conflictWrap(err, "create dealership %s", d.Name)
	}
	return nil
}

func (s *Store) GetDealership(ctx context.Context, id string) (*dealership.Dealership, error) {
	var d dealership.Dealership
	err := s.pool.QueryRow(ctx,
		`SELECT `+dealershipColumns+` FROM dealerships WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Address, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, notFoundWrap(err, "get dealership %s", id)
	}
	return &d, nil
}

func (s *Store) ListDealerships(ctx context.Context) ([]dealership.Dealership, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+dealershipColumns+` FROM dealerships ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list dealerships: %w", err)
	}
	defer rows.Close()

	var dealerships []dealership.Dealership
	for rows.Next() {
		var d dealership.Dealership
		if err := rows.Scan(&d.ID, &d.Name, &d.Address, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan dealership: %w", err)
		}
		dealerships = append(dealerships, d)
	}
	return dealerships, rows.Err()
}
