package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// codeUniqueViolation SQLSTATE unique_violation.
const codeUniqueViolation = "23505"

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }
