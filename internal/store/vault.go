package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/99designs/keyring"

	"github.com/MKhiriev/go-keychain/internal/config"
	"github.com/MKhiriev/go-keychain/internal/logger"
	"github.com/MKhiriev/go-keychain/models"
)

const vaultKeyParts = 4

// VaultBackend is a [Backend] on a 99designs keyring: an encrypted file,
// the macOS Keychain, Secret Service, KWallet, pass or the Windows
// credential manager.
//
// Each item is one keyring entry keyed by its escaped primary key
// "class/group/service/account". Queries without a full primary key are
// answered by scanning the keys in sorted order.
type VaultBackend struct {
	ring   keyring.Keyring
	logger *logger.Logger
}

// NewVaultBackend returns a backend storing items in ring.
func NewVaultBackend(ring keyring.Keyring, log *logger.Logger) *VaultBackend {
	return &VaultBackend{ring: ring, logger: log}
}

// OpenVault opens the keyring described by cfg.
func OpenVault(cfg config.Keyring, log *logger.Logger) (*VaultBackend, error) {
	allowed := make([]keyring.BackendType, 0, len(cfg.Backends))
	for _, name := range cfg.Backends {
		allowed = append(allowed, keyring.BackendType(name))
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName:              cfg.ServiceName,
		AllowedBackends:          allowed,
		FileDir:                  cfg.FileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(cfg.FilePassword),
		KeychainName:             cfg.ServiceName,
		KeychainTrustApplication: true,
		LibSecretCollectionName:  cfg.ServiceName,
		KWalletAppID:             cfg.ServiceName,
		KWalletFolder:            cfg.ServiceName,
	})
	if err != nil {
		log.Err(err).Str("func", "OpenVault").Strs("backends", cfg.Backends).Msg("error opening keyring")
		return nil, newStoreError(OpOpen, StatusNotAvailable, err)
	}

	return NewVaultBackend(ring, log), nil
}

// Add implements [Backend].
func (v *VaultBackend) Add(ctx context.Context, attributes models.AttributeMap) error {
	if err := ctx.Err(); err != nil {
		return newStoreError(OpAdd, StatusInteractionNotAllowed, err)
	}

	key := vaultKey(primaryKeyOf(attributes))

	_, err := v.ring.Get(key)
	switch {
	case err == nil:
		return newStoreError(OpAdd, StatusDuplicateItem, nil)
	case !errors.Is(err, keyring.ErrKeyNotFound):
		return newStoreError(OpAdd, StatusNotAvailable, err)
	}

	data, err := sealEnvelope(attributes)
	if err != nil {
		return newStoreError(OpAdd, StatusInternal, err)
	}

	err = v.ring.Set(keyring.Item{
		Key:   key,
		Data:  data,
		Label: attributes.String(models.AttrService),
		Description: fmt.Sprintf("%s item for %s",
			attributes.String(models.AttrClass), attributes.String(models.AttrAccount)),
		KeychainNotSynchronizable: strings.HasSuffix(attributes.String(models.AttrAccessible), "u"),
	})
	if err != nil {
		v.logger.Debug().Err(err).Str("func", "VaultBackend.Add").Msg("keyring set failed")
		return newStoreError(OpAdd, StatusNotAvailable, err)
	}

	return nil
}

// Delete implements [Backend].
func (v *VaultBackend) Delete(ctx context.Context, query models.AttributeMap) error {
	found, err := v.matching(ctx, OpDelete, query, false)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return newStoreError(OpDelete, StatusItemNotFound, nil)
	}

	for _, key := range found {
		if err = v.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
			return newStoreError(OpDelete, StatusNotAvailable, err)
		}
	}

	v.logger.Debug().Str("func", "VaultBackend.Delete").Int("deleted", len(found)).Msg("items deleted")
	return nil
}

// CopyMatching implements [Backend].
func (v *VaultBackend) CopyMatching(ctx context.Context, query models.AttributeMap) (any, error) {
	found, err := v.matching(ctx, OpCopyMatching, query, true)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, newStoreError(OpCopyMatching, StatusItemNotFound, nil)
	}

	stored, err := v.read(OpCopyMatching, found[0])
	if err != nil {
		return nil, err
	}

	return shapeResult(stored, query), nil
}

// matching returns the keys of the items matching query in sorted order,
// stopping at the first one when first is set.
func (v *VaultBackend) matching(ctx context.Context, op string, query models.AttributeMap, first bool) ([]string, error) {
	keys, err := v.ring.Keys()
	if err != nil {
		return nil, newStoreError(op, StatusNotAvailable, err)
	}
	slices.Sort(keys)

	var found []string
	for _, key := range keys {
		if err = ctx.Err(); err != nil {
			return nil, newStoreError(op, StatusInteractionNotAllowed, err)
		}

		// the key carries the primary key only; accessibility is read
		// from the stored entry
		pk, ok := parseVaultKey(key)
		if !ok || !matchesOn(primaryKeyAttributes, pk.attributes(), query) {
			continue
		}

		if _, ok = query[models.AttrAccessible]; ok {
			stored, err := v.read(op, key)
			if err != nil {
				return nil, err
			}
			if !matches(stored, query) {
				continue
			}
		}

		found = append(found, key)
		if first {
			break
		}
	}

	return found, nil
}

func (v *VaultBackend) read(op, key string) (models.AttributeMap, error) {
	item, err := v.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, newStoreError(op, StatusItemNotFound, nil)
	}
	if err != nil {
		return nil, newStoreError(op, StatusNotAvailable, err)
	}

	stored, err := openEnvelope(item.Data)
	if err != nil {
		return nil, newStoreError(op, StatusDecode, err)
	}
	return stored, nil
}

func vaultKey(pk primaryKey) string {
	return strings.Join([]string{
		url.PathEscape(pk.class),
		url.PathEscape(pk.group),
		url.PathEscape(pk.service),
		url.PathEscape(pk.account),
	}, "/")
}

func parseVaultKey(key string) (primaryKey, bool) {
	parts := strings.Split(key, "/")
	if len(parts) != vaultKeyParts {
		return primaryKey{}, false
	}

	for i, part := range parts {
		unescaped, err := url.PathUnescape(part)
		if err != nil {
			return primaryKey{}, false
		}
		parts[i] = unescaped
	}

	return primaryKey{class: parts[0], group: parts[1], service: parts[2], account: parts[3]}, true
}

// attributes returns the primary key as an attribute map; empty parts are
// left out, the way they are absent from a stored item.
func (pk primaryKey) attributes() models.AttributeMap {
	attributes := models.AttributeMap{models.AttrClass: pk.class}
	for key, value := range map[string]string{
		models.AttrService:     pk.service,
		models.AttrAccount:     pk.account,
		models.AttrAccessGroup: pk.group,
	} {
		if value != "" {
			attributes[key] = value
		}
	}
	return attributes
}
