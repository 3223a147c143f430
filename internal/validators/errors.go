package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrEmptyAttributes      = errors.New("attributes are empty")
	ErrUnknownAttribute     = errors.New("unknown attribute")
	ErrMissingAttribute     = errors.New("required attribute is missing")
	ErrInvalidAttributeType = errors.New("attribute has invalid type")
	ErrInvalidClass         = errors.New("invalid item class")
	ErrInvalidAccessibility = errors.New("invalid accessibility mode")
)
