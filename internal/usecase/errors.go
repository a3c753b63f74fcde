package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConcurrencyConflict is returned when an edit was based on a version
	// of the row that has since been changed. It is never retried.
	ErrConcurrencyConflict = errors.New("record was modified by another request")
	ErrInvalidDate         = errors.New("invalid date, use YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339")
)

// ValidationError carries per-field messages for a form that has to be
// shown again with the submitted values.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// dateLayouts are tried in order; the first three come from HTML
// datetime-local inputs and API clients, the last from date-only inputs.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

const (
	msgPatientMissing = "patient does not exist"
	msgDoctorMissing  = "doctor does not exist"
)

// referenceError turns a foreign key violation raised by the store into the
// same field error the existence checks produce. It returns nil for any
// other error.
func referenceError(err error) error {
	switch {
	case isForeignKeyError(err, "patient"):
		return &ValidationError{Fields: map[string]string{"patient_id": msgPatientMissing}}
	case isForeignKeyError(err, "doctor"):
		return &ValidationError{Fields: map[string]string{"doctor_id": msgDoctorMissing}}
	}
	return nil
}
