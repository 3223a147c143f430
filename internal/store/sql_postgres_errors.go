package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver and maps it
// to a [Status].
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that are not
// PostgreSQL driver errors are reported as StatusIO.
func (c *PostgresErrorClassifier) Classify(err error) Status {
	if err == nil {
		return StatusSuccess
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return StatusIO
}

// ClassifyPgError maps a *pgconn.PgError to a [Status] based on the
// PostgreSQL error code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
//
//   - 23505 unique violation: StatusDuplicateItem
//   - Class 08 connection exceptions, 57P03 cannot connect now: StatusNotAvailable
//   - Class 22 data exceptions, 23502 not null violation: StatusParam
//   - 42501 insufficient privilege: StatusInteractionNotAllowed
//
// Any code not listed above is StatusIO.
func ClassifyPgError(pgErr *pgconn.PgError) Status {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return StatusDuplicateItem

	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.CannotConnectNow:
		return StatusNotAvailable

	case pgerrcode.DataException,
		pgerrcode.NullValueNotAllowedDataException,
		pgerrcode.NotNullViolation:
		return StatusParam

	case pgerrcode.InsufficientPrivilege:
		return StatusInteractionNotAllowed
	}

	return StatusIO
}
