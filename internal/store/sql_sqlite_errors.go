//go:build cgo

package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite using
// the go-sqlite3 result codes.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *SQLiteErrorClassifier) Classify(err error) Status {
	if err == nil {
		return StatusSuccess
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return StatusIO
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return StatusDuplicateItem
	case sqlite3.ErrConstraintNotNull:
		return StatusParam
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return StatusInteractionNotAllowed
	case sqlite3.ErrCantOpen, sqlite3.ErrNotADB:
		return StatusNotAvailable
	case sqlite3.ErrPerm, sqlite3.ErrReadonly:
		return StatusInteractionNotAllowed
	}

	return StatusIO
}
