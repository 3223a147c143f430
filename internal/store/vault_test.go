package store

import (
	"context"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-keychain/internal/config"
	"github.com/MKhiriev/go-keychain/internal/logger"
	"github.com/MKhiriev/go-keychain/models"
)

func newTestVault(t *testing.T) (*VaultBackend, *keyring.ArrayKeyring) {
	t.Helper()
	ring := keyring.NewArrayKeyring(nil)
	return NewVaultBackend(ring, logger.Nop()), ring
}

func TestVaultKey_RoundTrip(t *testing.T) {
	pk := primaryKey{class: "genp", group: "", service: "https://example.com/a b", account: "al/ice"}

	key := vaultKey(pk)
	assert.Equal(t, "genp//https:%2F%2Fexample.com%2Fa%20b/al%2Fice", key)

	parsed, ok := parseVaultKey(key)
	require.True(t, ok)
	assert.Equal(t, pk, parsed)

	_, ok = parseVaultKey("not-an-item-key")
	assert.False(t, ok)
	_, ok = parseVaultKey("genp/%zz/svc/acct")
	assert.False(t, ok)
}

func TestVault_AddAndCopy(t *testing.T) {
	ctx := context.Background()
	v, ring := newTestVault(t)

	require.NoError(t, v.Add(ctx, genericItem("svc", "alice", []byte("secret"))))

	keys, err := ring.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"genp//svc/alice"}, keys)

	got, err := v.CopyMatching(ctx, fetchQuery("svc", "alice"))
	require.NoError(t, err)
	assert.Equal(t, genericItem("svc", "alice", []byte("secret")), got)
}

func TestVault_AddDuplicate(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVault(t)

	require.NoError(t, v.Add(ctx, genericItem("svc", "alice", []byte("a"))))
	err := v.Add(ctx, genericItem("svc", "alice", []byte("b")))
	assert.Equal(t, StatusDuplicateItem, StatusOf(err))

	grouped := genericItem("svc", "alice", []byte("g"))
	grouped[models.AttrAccessGroup] = "team"
	assert.NoError(t, v.Add(ctx, grouped))
}

func TestVault_PartialQueries(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVault(t)

	require.NoError(t, v.Add(ctx, genericItem("svc", "bob", []byte("b"))))
	require.NoError(t, v.Add(ctx, genericItem("svc", "alice", []byte("a"))))
	locked := genericItem("other", "carol", []byte("c"))
	locked[models.AttrAccessible] = string(models.AccessibleAfterFirstUnlock)
	require.NoError(t, v.Add(ctx, locked))

	// first match in key order
	query := models.AttributeMap{
		models.AttrClass:      "genp",
		models.AttrService:    "svc",
		models.AttrReturnData: true,
	}
	got, err := v.CopyMatching(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), got)

	// accessibility is read from the stored entry
	query = models.AttributeMap{
		models.AttrClass:            "genp",
		models.AttrAccessible:       "ck",
		models.AttrReturnAttributes: true,
	}
	got, err = v.CopyMatching(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "carol", got.(models.AttributeMap)[models.AttrAccount])

	// delete every item of a service
	require.NoError(t, v.Delete(ctx, models.AttributeMap{models.AttrClass: "genp", models.AttrService: "svc"}))
	_, err = v.CopyMatching(ctx, fetchQuery("svc", "alice"))
	assert.True(t, IsNotFound(err))
	_, err = v.CopyMatching(ctx, fetchQuery("other", "carol"))
	assert.NoError(t, err)
}

func TestVault_NotFound(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVault(t)

	_, err := v.CopyMatching(ctx, fetchQuery("svc", "nobody"))
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(v.Delete(ctx, identityQuery("svc", "nobody"))))
}

func TestVault_SkipsForeignKeys(t *testing.T) {
	ctx := context.Background()
	v, ring := newTestVault(t)
	require.NoError(t, ring.Set(keyring.Item{Key: "unrelated", Data: []byte("x")}))

	_, err := v.CopyMatching(ctx, models.AttributeMap{models.AttrClass: "genp", models.AttrReturnData: true})
	assert.True(t, IsNotFound(err))
}

func TestVault_CorruptedEntry(t *testing.T) {
	ctx := context.Background()
	v, ring := newTestVault(t)
	require.NoError(t, ring.Set(keyring.Item{Key: "genp//svc/alice", Data: []byte("garbage")}))

	_, err := v.CopyMatching(ctx, fetchQuery("svc", "alice"))
	assert.Equal(t, StatusDecode, StatusOf(err))
}

func TestVault_Keychain(t *testing.T) {
	ctx := context.Background()
	v, _ := newTestVault(t)
	k := NewKeychain(v)

	require.NoError(t, k.InsertOrUpdate(ctx, genericItem("svc", "alice", []byte("v1"))))
	require.NoError(t, k.InsertOrUpdate(ctx, genericItem("svc", "alice", []byte("v2"))))

	got, err := k.Fetch(ctx, fetchQuery("svc", "alice"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got[models.AttrValueData])

	require.NoError(t, k.Remove(ctx, identityQuery("svc", "alice")))
	require.NoError(t, k.Remove(ctx, identityQuery("svc", "alice")))
}

func TestOpenVault_FileBackend(t *testing.T) {
	ctx := context.Background()
	cfg := config.Keyring{
		ServiceName:  "go-keychain-test",
		Backends:     []string{string(keyring.FileBackend)},
		FileDir:      t.TempDir(),
		FilePassword: "test-password",
	}

	v, err := OpenVault(cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, v.Add(ctx, genericItem("svc", "alice", []byte("on disk"))))

	reopened, err := OpenVault(cfg, logger.Nop())
	require.NoError(t, err)
	got, err := reopened.CopyMatching(ctx, fetchQuery("svc", "alice"))
	require.NoError(t, err)
	assert.Equal(t, []byte("on disk"), got.(models.AttributeMap)[models.AttrValueData])
}

func TestOpenVault_NoBackend(t *testing.T) {
	_, err := OpenVault(config.Keyring{ServiceName: "x", Backends: []string{"no-such-backend"}}, logger.Nop())
	assert.Equal(t, StatusNotAvailable, StatusOf(err))
}

func TestVault_KeychainWithBuiltAttributes(t *testing.T) {
	ctx := context.Background()
	v, ring := newTestVault(t)
	k := NewKeychain(v)

	identity := models.GenericPassword{ServiceName: "svc", AccountName: "alice", AccessMode: models.AccessibleAfterFirstUnlock}
	req := buildRequests(t, identity.Descriptor(models.Payload{"token": "123456"}))

	require.NoError(t, k.InsertOrUpdate(ctx, req.save))

	got, err := k.Fetch(ctx, req.fetch)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, req.save[models.AttrValueData], got[models.AttrValueData])
	assert.Equal(t, "ck", got[models.AttrAccessible])

	// another mode does not match the stored entry
	other := buildRequests(t, models.GenericPassword{ServiceName: "svc", AccountName: "alice"}.Descriptor(nil))
	got, err = k.Fetch(ctx, other.fetch)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, k.Remove(ctx, req.remove))
	keys, err := ring.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}
