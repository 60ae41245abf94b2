// Package repository is the data-access layer: explicit SQL over
// database/sql, one file per record kind.
//
// Queries use $N placeholders in ascending order so the same text runs on
// pgx and on go-sqlite3, which binds positional arguments in order of
// appearance.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"edustack/internal/common"
	"edustack/internal/store"
)

// Repository persists education records.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// uniqueField maps a unique constraint (Postgres constraint name or SQLite
// "table.column") to the JSON field and the message shown to clients.
var uniqueField = map[string]struct{ field, message string }{
	store.UsersUsernameKey:            {"username", "Username already exists"},
	"users.username":                  {"username", "Username already exists"},
	store.StudentsEnrollmentNumberKey: {"enrollmentNumber", "Enrollment number already exists"},
	"students.enrollment_number":      {"enrollmentNumber", "Enrollment number already exists"},
	store.FacultyEmployeeIDKey:        {"employeeId", "Employee ID already exists"},
	"faculty.employee_id":             {"employeeId", "Employee ID already exists"},
}

// translate turns driver unique violations into *common.DuplicateError and
// wraps everything else with op.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if key, ok := uniqueViolation(err); ok {
		if f, known := uniqueField[key]; known {
			return &common.DuplicateError{Field: f.field, Message: f.message}
		}
		return &common.DuplicateError{Message: "Record already exists"}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		// "UNIQUE constraint failed: students.enrollment_number"
		msg := liteErr.Error()
		if i := strings.LastIndex(msg, ": "); i >= 0 {
			return strings.TrimSpace(msg[i+2:]), true
		}
		return "", true
	}
	return "", false
}

// deleteByID removes a row and reports whether one existed.
func (r *Repository) deleteByID(ctx context.Context, table string, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", table, id, err)
	}
	return n > 0, nil
}

func (r *Repository) count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
