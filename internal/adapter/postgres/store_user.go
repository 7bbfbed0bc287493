package postgres

import (
	"context"
	"fmt"

	"github.com/dealerdesk/dealerdesk/internal/domain/user"
)

const userColumns = `id, dealership_id, email, name, role, created_at, updated_at`

func (s *Store) ListUsers(ctx context.Context, tenant string) ([]user.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE dealership_id = $1 ORDER BY created_at DESC`, tenant)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) GetUser(ctx context.Context, tenant string, id int64) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND dealership_id = $2`, id, tenant))
	if err != nil {
		return nil, notFoundWrap(err, "get user %d", id)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (dealership_id, email, name, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.DealershipID, u.Email, u.Name, string(u.Role),
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return conflictWrap(err, "create user %s", u.Email)
	}
	return nil
}

func scanUser(row scannable) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.DealershipID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
