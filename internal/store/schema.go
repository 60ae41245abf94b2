package store

import (
	"context"
	"fmt"
	"strings"
)

// Unique constraint names. Postgres reports them on violation and the
// repository maps them back to JSON field names.
const (
	UsersUsernameKey            = "users_username_key"
	StudentsEnrollmentNumberKey = "students_enrollment_number_key"
	FacultyEmployeeIDKey        = "faculty_employee_id_key"
)

// tables lists every table with its columns. The id column is added per
// dialect. Integer columns are BIGINT to hold any int64 the API accepts;
// SQLite gives BIGINT integer affinity, which is already 64-bit.
var tables = []struct {
	name    string
	columns string
}{
	{"users", `
		username       TEXT NOT NULL,
		password       TEXT NOT NULL,
		email          TEXT NOT NULL,
		full_name      TEXT NOT NULL,
		role           TEXT NOT NULL DEFAULT 'user',
		institution_id BIGINT,
		CONSTRAINT ` + UsersUsernameKey + ` UNIQUE (username)`},
	{"institutions", `
		name    TEXT NOT NULL,
		address TEXT NOT NULL,
		phone   TEXT NOT NULL,
		email   TEXT NOT NULL,
		type    TEXT NOT NULL DEFAULT 'university'`},
	{"students", `
		full_name         TEXT NOT NULL,
		enrollment_number TEXT NOT NULL,
		email             TEXT NOT NULL,
		department        TEXT NOT NULL,
		semester          BIGINT NOT NULL,
		institution_id    BIGINT NOT NULL,
		CONSTRAINT ` + StudentsEnrollmentNumberKey + ` UNIQUE (enrollment_number)`},
	{"faculty", `
		full_name      TEXT NOT NULL,
		employee_id    TEXT NOT NULL,
		email          TEXT NOT NULL,
		department     TEXT NOT NULL,
		designation    TEXT NOT NULL,
		institution_id BIGINT NOT NULL,
		CONSTRAINT ` + FacultyEmployeeIDKey + ` UNIQUE (employee_id)`},
	{"classes", `
		name           TEXT NOT NULL,
		subject        TEXT NOT NULL,
		department     TEXT NOT NULL,
		semester       BIGINT NOT NULL,
		institution_id BIGINT NOT NULL`},
	{"attendance", `
		student_id BIGINT NOT NULL,
		class_id   BIGINT NOT NULL,
		date       TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'present',
		marked_by  BIGINT`},
	{"timetable", `
		class_id       BIGINT NOT NULL,
		faculty_id     BIGINT NOT NULL,
		subject        TEXT NOT NULL,
		day_of_week    TEXT NOT NULL,
		start_time     TEXT NOT NULL,
		end_time       TEXT NOT NULL,
		room           TEXT NOT NULL,
		institution_id BIGINT NOT NULL`},
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_attendance_student ON attendance(student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_class ON attendance(class_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timetable_class ON timetable(class_id)`,
}

// Migrate creates the schema if it does not exist yet. It is safe to run
// on every start.
func Migrate(ctx context.Context, db *DB) error {
	tx, err := db.Client.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range createStatements(db.Driver) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %s: %w", strings.Join(strings.Fields(stmt)[:6], " "), err)
		}
	}
	return tx.Commit()
}

func createStatements(driver string) []string {
	idColumn := "id BIGSERIAL PRIMARY KEY"
	if driver == DriverSQLite {
		// AUTOINCREMENT keeps deleted ids from being handed out again
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	stmts := make([]string, 0, len(tables)+len(indexes))
	for _, t := range tables {
		stmts = append(stmts, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t\t%s,%s\n\t)", t.name, idColumn, t.columns))
	}
	return append(stmts, indexes...)
}
