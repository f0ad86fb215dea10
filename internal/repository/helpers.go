package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
)

const timeLayout = time.RFC3339Nano

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted UTC string.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(layout)
}

// nullable converts an optional value to a SQL argument, nil becoming NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableBoolToInt stores an optional bool as NULL, 0 or 1.
func nullableBoolToInt(b *bool) any {
	if b == nil {
		return nil
	}
	return boolToInt(*b)
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int64) bool {
	return i != 0
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}

func boolPtr(n sql.NullInt64) *bool {
	if !n.Valid {
		return nil
	}
	v := intToBool(n.Int64)
	return &v
}

// where accumulates AND-ed predicates and their arguments.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, arg any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, arg)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// mapConstraintErr turns SQLite constraint failures into domain errors so the
// services can report them without parsing driver messages.
func mapConstraintErr(err error, fk error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", domain.ErrDuplicateName, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", fk, err)
	default:
		return err
	}
}
