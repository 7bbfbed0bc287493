package postgres

import (
	"context"
	"fmt"

	"github.com/dealerdesk/dealerdesk/internal/domain"
	"github.com/dealerdesk/dealerdesk/internal/domain/sale"
	"github.com/dealerdesk/dealerdesk/internal/query"
)

const saleColumns = `id, dealership_id, vehicle_id, sale_date, final_price, buyer_name, buyer_address, status, created_at, updated_at`

func (s *Store) ListSaleRecords(ctx context.Context, plan query.Plan) ([]sale.Record, int, error) {
	listSQL, countSQL, args, err := buildListQuery("sale_records", saleColumns, plan, false)
	if err != nil {
		return nil, 0, fmt.Errorf("list sale records: %w", err)
	}

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sale records: %w", err)
	}

	rows, err := s.pool.Query(ctx, listSQL, append(args, plan.Limit, plan.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sale records: %w", err)
	}
	defer rows.Close()

	var records []sale.Record
	for rows.Next() {
		rec, err := scanSaleRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale record: %w", err)
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

func (s *Store) GetSaleRecord(ctx context.Context, tenant string, id int64) (*sale.Record, error) {
	rec, err := scanSaleRecord(s.pool.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sale_records WHERE id = $1 AND dealership_id = $2`, id, tenant))
	if err != nil {
		return nil, notFoundWrap(err, "get sale record %d", id)
	}
	return &rec, nil
}

// CreateSaleRecord relies on the partial unique index over
// (dealership_id, vehicle_id) WHERE status = 'SOLD' to reject a second
// active sale for the same vehicle, even under concurrent writers.
func (s *Store) CreateSaleRecord(ctx context.Context, rec *sale.Record) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO sale_records (dealership_id, vehicle_id, sale_date, final_price, buyer_name, buyer_address, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		rec.DealershipID, rec.VehicleID, rec.SaleDate, rec.FinalPrice, rec.BuyerName, rec.BuyerAddress, string(rec.Status),
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return conflictWrap(err, "create sale record for vehicle %d", rec.VehicleID)
	}
	return nil
}

func (s *Store) UpdateSaleRecord(ctx context.Context, rec *sale.Record) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE sale_records SET sale_date = $3, final_price = $4, buyer_name = $5, buyer_address = $6, status = $7, updated_at = now()
		 WHERE id = $1 AND dealership_id = $2
		 RETURNING updated_at`,
		rec.ID, rec.DealershipID, rec.SaleDate, rec.FinalPrice, rec.BuyerName, rec.BuyerAddress, string(rec.Status),
	).Scan(&rec.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update sale record %d: %w", rec.ID, domain.ErrConflict)
		}
		return notFoundWrap(err, "update sale record %d", rec.ID)
	}
	return nil
}

func (s *Store) SoldRecordExists(ctx context.Context, tenant string, vehicleID, excludeRecordID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM sale_records
		   WHERE dealership_id = $1 AND vehicle_id = $2 AND status = $3 AND id <> $4
		 )`, tenant, vehicleID, string(sale.StatusSold), excludeRecordID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sold record for vehicle %d: %w", vehicleID, err)
	}
	return exists, nil
}

func scanSaleRecord(row scannable) (sale.Record, error) {
	var rec sale.Record
	err := row.Scan(&rec.ID, &rec.DealershipID, &rec.VehicleID, &rec.SaleDate,
		&rec.FinalPrice, &rec.BuyerName, &rec.BuyerAddress, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}
