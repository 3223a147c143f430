//go:build !cgo

package store

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite. Without
// cgo the sqlite driver cannot run, so every error is StatusIO.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *SQLiteErrorClassifier) Classify(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	return StatusIO
}
