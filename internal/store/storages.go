package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-keychain/internal/config"
	"github.com/MKhiriev/go-keychain/internal/logger"
)

// NewStore opens the backend selected by cfg and returns a [Keychain] on
// it. SQL backends are migrated before use. The caller closes the returned
// Keychain.
func NewStore(ctx context.Context, cfg config.Store, log *logger.Logger) (*Keychain, error) {
	log.Debug().Str("backend", cfg.Backend).Msg("creating store...")

	backend, err := newBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return NewKeychain(backend), nil
}

func newBackend(ctx context.Context, cfg config.Store, log *logger.Logger) (Backend, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemoryBackend(), nil

	case config.BackendSQLite, config.BackendPostgres:
		connect := NewConnectSQLite
		if cfg.Backend == config.BackendPostgres {
			connect = NewConnectPostgres
		}

		db, err := connect(ctx, cfg.DB, log)
		if err != nil {
			return nil, newStoreError(OpOpen, StatusNotAvailable, fmt.Errorf("%s connection error: %w", cfg.Backend, err))
		}

		if err = db.Migrate(); err != nil {
			db.Close()
			return nil, newStoreError(OpOpen, StatusIO, fmt.Errorf("migration failed: %w", err))
		}

		return NewSQLBackend(db), nil

	case config.BackendSystem:
		return NewSystemKeyringBackend(log), nil

	case config.BackendVault:
		vault, err := OpenVault(cfg.Keyring, log)
		if err != nil {
			return nil, err
		}
		return vault, nil
	}

	return nil, newStoreError(OpOpen, StatusUnimplemented, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend))
}
