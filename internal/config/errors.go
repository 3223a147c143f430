package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrUnknownBackend indicates a store backend name that is not one of
	// memory, sqlite, postgres, system or vault.
	ErrUnknownBackend = errors.New("unknown store backend")
	// ErrInvalidStorageConfigs indicates incomplete backend settings (for
	// example, a postgres backend without a DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidItemConfigs indicates invalid item defaults (for example,
	// an unknown access mode).
	ErrInvalidItemConfigs = errors.New("invalid item configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
)
