package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected stringList
	}{
		{name: "single", input: "file", expected: stringList{"file"}},
		{name: "several", input: "file,keychain", expected: stringList{"file", "keychain"}},
		{name: "spaces and empties", input: " file , ,pass ", expected: stringList{"file", "pass"}},
		{name: "empty", input: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l stringList
			require.NoError(t, l.Set(tt.input))
			assert.Equal(t, tt.expected, l)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	args := []string{
		"-backend", "vault",
		"-d", "keychain.db",
		"-timeout", "3s",
		"-keyring-service", "kc",
		"-keyring-backends", "file,pass",
		"-keyring-dir", "/tmp/kr",
		"-keyring-password", "pw",
		"-default-service", "svc",
		"-access-mode", "ck",
		"-access-group", "team",
		"-log-level", "warn",
		"-config", "/etc/keychain.json",
		"fetch", "-account", "alice",
	}

	cfg, rest, err := ParseFlags(args)
	require.NoError(t, err)

	assert.Equal(t, "vault", cfg.Store.Backend)
	assert.Equal(t, "keychain.db", cfg.Store.DB.DSN)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "kc", cfg.Store.Keyring.ServiceName)
	assert.Equal(t, []string{"file", "pass"}, cfg.Store.Keyring.Backends)
	assert.Equal(t, "/tmp/kr", cfg.Store.Keyring.FileDir)
	assert.Equal(t, "pw", cfg.Store.Keyring.FilePassword)
	assert.Equal(t, "svc", cfg.Item.ServiceName)
	assert.Equal(t, "ck", cfg.Item.AccessMode)
	assert.Equal(t, "team", cfg.Item.AccessGroup)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/etc/keychain.json", cfg.JSONFilePath)

	assert.Equal(t, []string{"fetch", "-account", "alice"}, rest)
}

func TestParseFlags_NoFlags(t *testing.T) {
	cfg, rest, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
	assert.Empty(t, rest)
}

func TestParseFlags_ShortConfigFlag(t *testing.T) {
	cfg, _, err := ParseFlags([]string{"-c", "cfg.json"})
	require.NoError(t, err)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

func TestParseFlags_InvalidDuration(t *testing.T) {
	cfg, rest, err := ParseFlags([]string{"-timeout", "later"})
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Nil(t, rest)
}
