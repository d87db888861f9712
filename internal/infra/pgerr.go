package infra

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// WrapPgErr classifies low-level postgres errors into repository kinds.
func WrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return WrapRepoErr(msg, err, KindDuplicateKey)
		case pgErrCodeForeignKeyViolation:
			return WrapRepoErr(msg, err, KindForeignKeyViolated)
		}
	}
	return WrapRepoErr(msg, err)
}
