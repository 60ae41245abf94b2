package repository

import (
	"context"
	"fmt"

	"edustack/internal/model"
)

func (r *Repository) ListClasses(ctx context.Context) ([]model.Class, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, subject, department, semester, institution_id
		FROM classes
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	res := []model.Class{}
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Subject, &c.Department, &c.Semester, &c.InstitutionID); err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *Repository) CreateClass(ctx context.Context, c model.Class) (model.Class, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO classes (name, subject, department, semester, institution_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, c.Name, c.Subject, c.Department, c.Semester, c.InstitutionID)
	if err := row.Scan(&c.ID); err != nil {
		return model.Class{}, translate("create class", err)
	}
	return c, nil
}

func (r *Repository) DeleteClass(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, "classes", id)
}
