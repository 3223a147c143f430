package store

import (
	"errors"
	"fmt"
)

// Status is a native store status code. The values mirror the platform
// keychain's OSStatus codes so callers can compare them with codes
// reported by a native store.
type Status int32

const (
	StatusSuccess               Status = 0
	StatusUnimplemented         Status = -4
	StatusIO                    Status = -36
	StatusParam                 Status = -50
	StatusInternal              Status = -2070
	StatusNotAvailable          Status = -25291
	StatusDuplicateItem         Status = -25299
	StatusItemNotFound          Status = -25300
	StatusInteractionNotAllowed Status = -25308
	StatusDecode                Status = -26275
)

// String returns a short description of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnimplemented:
		return "function or operation not implemented"
	case StatusIO:
		return "I/O error"
	case StatusParam:
		return "one or more parameters passed to the function were not valid"
	case StatusInternal:
		return "internal component failure"
	case StatusNotAvailable:
		return "no keychain is available"
	case StatusDuplicateItem:
		return "the item already exists"
	case StatusItemNotFound:
		return "the item cannot be found"
	case StatusInteractionNotAllowed:
		return "user interaction is not allowed"
	case StatusDecode:
		return "unable to decode the provided data"
	}
	return "unknown status"
}

// Store operation names reported in [StoreError.Op].
const (
	OpInsert       = "insert"
	OpRemove       = "remove"
	OpFetch        = "fetch"
	OpAdd          = "add"
	OpDelete       = "delete"
	OpCopyMatching = "copy matching"
	OpOpen         = "open"
)

// ErrorDomain prefixes every [StoreError] message.
const ErrorDomain = "go.keychain.error"

// StoreError is a failure reported by the store. Status carries the native
// code; Err, when set, is the underlying cause.
type StoreError struct {
	Op     string
	Status Status
	Err    error
}

func newStoreError(op string, status Status, err error) *StoreError {
	return &StoreError{Op: op, Status: status, Err: err}
}

// Error implements error.
func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s: %s: status %d (%s)", ErrorDomain, e.Op, int32(e.Status), e.Status)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// StatusOf returns the status carried by err. A nil error is
// StatusSuccess; an error that is not a *StoreError is StatusInternal.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Status
	}
	return StatusInternal
}

// IsNotFound reports whether err is a store error with StatusItemNotFound.
func IsNotFound(err error) bool {
	return err != nil && StatusOf(err) == StatusItemNotFound
}

// Low-level storage errors wrapped into a StoreError by the SQL backend.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan keychain item row")
)

// Errors wrapped into a StoreError by the keyring backends.
var (
	// ErrMissingServiceOrAccount is returned by backends that address items
	// only by service and account when either is missing.
	ErrMissingServiceOrAccount = errors.New("service and account are required")

	// ErrCorruptedItem is returned when a stored item cannot be read back.
	ErrCorruptedItem = errors.New("stored item is corrupted")
)
