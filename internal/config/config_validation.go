// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"

	"github.com/MKhiriev/go-keychain/models"
	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] is usable. Empty
// fields are accepted; they are filled by [Defaults] in
// [GetStructuredConfig].
func (cfg *StructuredConfig) validate() error {
	switch cfg.Store.Backend {
	case "", BackendMemory, BackendSystem:
	case BackendSQLite, BackendPostgres:
		if cfg.Store.DB.DSN == "" {
			return fmt.Errorf("%w: %s backend requires a DSN", ErrInvalidStorageConfigs, cfg.Store.Backend)
		}
	case BackendVault:
		if slices.Contains(cfg.Store.Keyring.Backends, "file") && cfg.Store.Keyring.FileDir == "" {
			return fmt.Errorf("%w: file keyring requires a directory", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Store.Backend)
	}

	if cfg.Store.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidStorageConfigs)
	}

	if mode := cfg.Item.AccessMode; mode != "" && !models.Accessibility(mode).Valid() {
		return fmt.Errorf("%w: access mode %q", ErrInvalidItemConfigs, mode)
	}

	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err)
		}
	}

	return nil
}
