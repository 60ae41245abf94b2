package repository

import (
	"context"
	"fmt"

	"edustack/internal/model"
)

const attendanceColumns = `id, student_id, class_id, date, status, marked_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttendance(row rowScanner) (model.Attendance, error) {
	var a model.Attendance
	err := row.Scan(&a.ID, &a.StudentID, &a.ClassID, &a.Date, &a.Status, &a.MarkedBy)
	return a, err
}

// ListAttendance returns every attendance record, oldest first.
func (r *Repository) ListAttendance(ctx context.Context) ([]model.Attendance, error) {
	return r.queryAttendance(ctx, "list attendance", `SELECT `+attendanceColumns+` FROM attendance ORDER BY id`)
}

// RecentAttendance returns the newest records, highest id first.
func (r *Repository) RecentAttendance(ctx context.Context, limit int) ([]model.Attendance, error) {
	if limit <= 0 {
		limit = model.RecentAttendanceLimit
	}
	return r.queryAttendance(ctx, "recent attendance",
		`SELECT `+attendanceColumns+` FROM attendance ORDER BY id DESC LIMIT $1`, limit)
}

func (r *Repository) queryAttendance(ctx context.Context, op, query string, args ...any) ([]model.Attendance, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	res := []model.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		res = append(res, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// CreateAttendance inserts a record. The same student, class and date may
// be recorded more than once.
func (r *Repository) CreateAttendance(ctx context.Context, a model.Attendance) (model.Attendance, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (student_id, class_id, date, status, marked_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, a.StudentID, a.ClassID, a.Date, a.Status, a.MarkedBy)
	if err := row.Scan(&a.ID); err != nil {
		return model.Attendance{}, translate("create attendance", err)
	}
	return a, nil
}
