package repository

import (
	"context"
	"fmt"

	"edustack/internal/model"
)

// ListInstitutions returns every institution, oldest first.
func (r *Repository) ListInstitutions(ctx context.Context) ([]model.Institution, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, address, phone, email, type
		FROM institutions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	defer rows.Close()

	res := []model.Institution{}
	for rows.Next() {
		var in model.Institution
		if err := rows.Scan(&in.ID, &in.Name, &in.Address, &in.Phone, &in.Email, &in.Type); err != nil {
			return nil, fmt.Errorf("scan institution: %w", err)
		}
		res = append(res, in)
	}
	return res, rows.Err()
}

// CreateInstitution inserts a row and returns it with its new id.
func (r *Repository) CreateInstitution(ctx context.Context, in model.Institution) (model.Institution, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO institutions (name, address, phone, email, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, in.Name, in.Address, in.Phone, in.Email, in.Type)
	if err := row.Scan(&in.ID); err != nil {
		return model.Institution{}, translate("create institution", err)
	}
	return in, nil
}
