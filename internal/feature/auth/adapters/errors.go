package adapters

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the postgres error code for a unique index violation.
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a postgres unique violation.
// gorm translates most driver errors, but raw pgconn errors can still
// escape when TranslateError is off.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
