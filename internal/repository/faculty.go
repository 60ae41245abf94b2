package repository

import (
	"context"
	"fmt"

	"edustack/internal/model"
)

func (r *Repository) ListFaculty(ctx context.Context) ([]model.Faculty, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, employee_id, email, department, designation, institution_id
		FROM faculty
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	defer rows.Close()

	res := []model.Faculty{}
	for rows.Next() {
		var f model.Faculty
		if err := rows.Scan(&f.ID, &f.FullName, &f.EmployeeID, &f.Email, &f.Department, &f.Designation, &f.InstitutionID); err != nil {
			return nil, fmt.Errorf("scan faculty: %w", err)
		}
		res = append(res, f)
	}
	return res, rows.Err()
}

func (r *Repository) CreateFaculty(ctx context.Context, f model.Faculty) (model.Faculty, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO faculty (full_name, employee_id, email, department, designation, institution_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, f.FullName, f.EmployeeID, f.Email, f.Department, f.Designation, f.InstitutionID)
	if err := row.Scan(&f.ID); err != nil {
		return model.Faculty{}, translate("create faculty", err)
	}
	return f, nil
}

func (r *Repository) DeleteFaculty(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, "faculty", id)
}
