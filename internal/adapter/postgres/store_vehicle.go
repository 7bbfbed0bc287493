package postgres

import (
	"context"
	"fmt"

	"github.com/dealerdesk/dealerdesk/internal/domain"
	"github.com/dealerdesk/dealerdesk/internal/domain/vehicle"
	"github.com/dealerdesk/dealerdesk/internal/query"
)

const vehicleColumns = `id, dealership_id, vin, year, make, model, price, status, image_url, created_at, updated_at, deleted_at`

func (s *Store) ListVehicles(ctx context.Context, plan query.Plan) ([]vehicle.Vehicle, int, error) {
	listSQL, countSQL, args, err := buildListQuery("vehicles", vehicleColumns, plan, true)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vehicles: %w", err)
	}

	rows, err := s.pool.Query(ctx, listSQL, append(args, plan.Limit, plan.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []vehicle.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, total, rows.Err()
}

func (s *Store) GetVehicle(ctx context.Context, tenant string, id int64, includeDeleted bool) (*vehicle.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 AND dealership_id = $2`
	if !includeDeleted {
		q += ` AND deleted_at IS NULL`
	}

	v, err := scanVehicle(s.pool.QueryRow(ctx, q, id, tenant))
	if err != nil {
		return nil, notFoundWrap(err, "get vehicle %d", id)
	}
	return &v, nil
}

// FindVehicleByVIN searches tombstoned rows too. The VIN stays reserved by a
// soft-deleted vehicle until the row is purged.
func (s *Store) FindVehicleByVIN(ctx context.Context, tenant, vin string) (*vehicle.Vehicle, error) {
	v, err := scanVehicle(s.pool.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE dealership_id = $1 AND vin = $2`, tenant, vin))
	if err != nil {
		return nil, notFoundWrap(err, "find vehicle by vin %s", vin)
	}
	return &v, nil
}

func (s *Store) CreateVehicle(ctx context.Context, v *vehicle.Vehicle) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO vehicles (dealership_id, vin, year, make, model, price, status, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		v.DealershipID, v.VIN, v.Year, v.Make, v.Model, v.Price, string(v.Status), v.ImageURL,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return conflictWrap(err, "create vehicle %s", v.VIN)
	}
	return nil
}

func (s *Store) UpdateVehicle(ctx context.Context, v *vehicle.Vehicle) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE vehicles SET vin = $3, year = $4, make = $5, model = $6, price = $7, status = $8, image_url = $9, updated_at = now()
		 WHERE id = $1 AND dealership_id = $2 AND deleted_at IS NULL
		 RETURNING updated_at`,
		v.ID, v.DealershipID, v.VIN, v.Year, v.Make, v.Model, v.Price, string(v.Status), v.ImageURL,
	).Scan(&v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update vehicle %d: %w", v.ID, domain.ErrConflict)
		}
		return notFoundWrap(err, "update vehicle %d", v.ID)
	}
	return nil
}

func (s *Store) SoftDeleteVehicle(ctx context.Context, tenant string, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE vehicles SET deleted_at = now(), updated_at = now()
		 WHERE id = $1 AND dealership_id = $2 AND deleted_at IS NULL`, id, tenant)
	if err != nil {
		return fmt.Errorf("delete vehicle %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete vehicle %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanVehicle(row scannable) (vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := row.Scan(&v.ID, &v.DealershipID, &v.VIN, &v.Year, &v.Make, &v.Model,
		&v.Price, &v.Status, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt, &v.DeletedAt)
	return v, err
}
