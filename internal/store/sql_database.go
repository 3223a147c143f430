package store

import (
	"database/sql"

	"github.com/MKhiriev/go-keychain/internal/logger"
	"github.com/MKhiriev/go-keychain/migrations"
)

// Dialect names the SQL engine behind a [DB]. The values are the
// database/sql driver names.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Dialect returns the SQL engine of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}
