package repository

import (
	"context"
	"fmt"

	"edustack/internal/model"
)

// ListTimetable returns every slot, oldest first. Overlapping slots are not
// detected.
func (r *Repository) ListTimetable(ctx context.Context) ([]model.Timetable, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, class_id, faculty_id, subject, day_of_week, start_time, end_time, room, institution_id
		FROM timetable
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	defer rows.Close()

	res := []model.Timetable{}
	for rows.Next() {
		var t model.Timetable
		if err := rows.Scan(&t.ID, &t.ClassID, &t.FacultyID, &t.Subject, &t.DayOfWeek, &t.StartTime, &t.EndTime, &t.Room, &t.InstitutionID); err != nil {
			return nil, fmt.Errorf("scan timetable: %w", err)
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *Repository) CreateTimetable(ctx context.Context, t model.Timetable) (model.Timetable, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO timetable (class_id, faculty_id, subject, day_of_week, start_time, end_time, room, institution_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, t.ClassID, t.FacultyID, t.Subject, t.DayOfWeek, t.StartTime, t.EndTime, t.Room, t.InstitutionID)
	if err := row.Scan(&t.ID); err != nil {
		return model.Timetable{}, translate("create timetable", err)
	}
	return t, nil
}

func (r *Repository) DeleteTimetable(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, "timetable", id)
}
