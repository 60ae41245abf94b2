package repository

import (
	"context"
	"fmt"

	"edustack/internal/model"
)

func (r *Repository) ListStudents(ctx context.Context) ([]model.Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, enrollment_number, email, department, semester, institution_id
		FROM students
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	res := []model.Student{}
	for rows.Next() {
		var st model.Student
		if err := rows.Scan(&st.ID, &st.FullName, &st.EnrollmentNumber, &st.Email, &st.Department, &st.Semester, &st.InstitutionID); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		res = append(res, st)
	}
	return res, rows.Err()
}

// CreateStudent fails with a DuplicateError on a reused enrollment number.
func (r *Repository) CreateStudent(ctx context.Context, st model.Student) (model.Student, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO students (full_name, enrollment_number, email, department, semester, institution_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, st.FullName, st.EnrollmentNumber, st.Email, st.Department, st.Semester, st.InstitutionID)
	if err := row.Scan(&st.ID); err != nil {
		return model.Student{}, translate("create student", err)
	}
	return st, nil
}

// DeleteStudent leaves attendance rows that reference the student in place.
func (r *Repository) DeleteStudent(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, "students", id)
}
