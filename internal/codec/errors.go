package codec

import "errors"

// Sentinel errors returned by the payload codec. Callers should match them
// with [errors.Is].
var (
	// ErrEncoding is returned when a payload contains a value the archive
	// format cannot represent (unsupported Go type, nil value, or nesting
	// deeper than the codec allows).
	ErrEncoding = errors.New("payload encoding failed")

	// ErrDecoding is returned when a blob is malformed or references a
	// type the caller did not allow.
	ErrDecoding = errors.New("payload decoding failed")

	// ErrTypeNotAllowed is joined with ErrDecoding when the blob contains
	// a value whose type is outside the allow-list.
	ErrTypeNotAllowed = errors.New("value type is not allowed")
)
