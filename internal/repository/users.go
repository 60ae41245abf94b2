package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"edustack/internal/model"
)

const userColumns = `id, username, password, email, full_name, role, institution_id`

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FullName, &u.Role, &u.InstitutionID)
	return u, err
}

// GetUser returns nil when no user has the id.
func (r *Repository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

// GetUserByUsername returns nil when the username is unknown.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// CreateUser stores u, whose PasswordHash must already be set.
func (r *Repository) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password, email, full_name, role, institution_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, u.Username, u.PasswordHash, u.Email, u.FullName, u.Role, u.InstitutionID)
	if err := row.Scan(&u.ID); err != nil {
		return model.User{}, translate("create user", err)
	}
	return u, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	res := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		res = append(res, u)
	}
	return res, rows.Err()
}
