//go:build cgo

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-keychain/internal/config"
	"github.com/MKhiriev/go-keychain/internal/logger"
	"github.com/MKhiriev/go-keychain/internal/store"
)

func init() {
	backendCases = append(backendCases, backendCase{
		name: "sqlite",
		open: func(t *testing.T) store.Backend {
			db, err := store.NewConnectSQLite(context.Background(), config.DB{DSN: ":memory:"}, logger.Nop())
			require.NoError(t, err)
			require.NoError(t, db.Migrate())
			return store.NewSQLBackend(db)
		},
	})
}
