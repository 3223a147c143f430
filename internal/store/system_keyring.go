package store

import (
	"context"
	"errors"

	"github.com/zalando/go-keyring"

	"github.com/MKhiriev/go-keychain/internal/logger"
	"github.com/MKhiriev/go-keychain/models"
)

// SystemKeyringBackend is a [Backend] on the operating system credential
// store (macOS Keychain, Secret Service, Windows Credential Manager).
//
// The credential store holds one secret per service and account, so every
// query must name both; the rest of the item travels in a JSON envelope.
// An existing entry for the same service and account is a duplicate even
// when its class or access group differ.
type SystemKeyringBackend struct {
	logger *logger.Logger
}

func NewSystemKeyringBackend(log *logger.Logger) *SystemKeyringBackend {
	return &SystemKeyringBackend{logger: log}
}

// Add implements [Backend].
func (b *SystemKeyringBackend) Add(ctx context.Context, attributes models.AttributeMap) error {
	service, account, err := serviceAndAccount(OpAdd, attributes)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return newStoreError(OpAdd, StatusInteractionNotAllowed, err)
	}

	_, err = keyring.Get(service, account)
	switch {
	case err == nil:
		return newStoreError(OpAdd, StatusDuplicateItem, nil)
	case !errors.Is(err, keyring.ErrNotFound):
		return newStoreError(OpAdd, keyringStatus(err), err)
	}

	secret, err := sealEnvelope(attributes)
	if err != nil {
		return newStoreError(OpAdd, StatusInternal, err)
	}

	if err = keyring.Set(service, account, string(secret)); err != nil {
		b.logger.Debug().Err(err).
			Str("func", "SystemKeyringBackend.Add").
			Str("service", service).
			Msg("keyring set failed")
		return newStoreError(OpAdd, keyringStatus(err), err)
	}

	return nil
}

// Delete implements [Backend].
func (b *SystemKeyringBackend) Delete(ctx context.Context, query models.AttributeMap) error {
	service, account, err := serviceAndAccount(OpDelete, query)
	if err != nil {
		return err
	}

	if _, err = b.lookup(ctx, OpDelete, service, account, query); err != nil {
		return err
	}

	if err = keyring.Delete(service, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return newStoreError(OpDelete, StatusItemNotFound, nil)
		}
		return newStoreError(OpDelete, keyringStatus(err), err)
	}

	return nil
}

// CopyMatching implements [Backend].
func (b *SystemKeyringBackend) CopyMatching(ctx context.Context, query models.AttributeMap) (any, error) {
	service, account, err := serviceAndAccount(OpCopyMatching, query)
	if err != nil {
		return nil, err
	}

	stored, err := b.lookup(ctx, OpCopyMatching, service, account, query)
	if err != nil {
		return nil, err
	}

	return shapeResult(stored, query), nil
}

// lookup reads the entry for service and account and checks it against the
// remaining query attributes.
func (b *SystemKeyringBackend) lookup(ctx context.Context, op, service, account string, query models.AttributeMap) (models.AttributeMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, newStoreError(op, StatusInteractionNotAllowed, err)
	}

	secret, err := keyring.Get(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, newStoreError(op, StatusItemNotFound, nil)
	}
	if err != nil {
		return nil, newStoreError(op, keyringStatus(err), err)
	}

	stored, err := openEnvelope([]byte(secret))
	if err != nil {
		b.logger.Debug().Err(err).
			Str("func", "SystemKeyringBackend.lookup").
			Str("service", service).
			Msg("unreadable keyring entry")
		return nil, newStoreError(op, StatusDecode, err)
	}

	if !matches(stored, query) {
		return nil, newStoreError(op, StatusItemNotFound, nil)
	}

	return stored, nil
}

func serviceAndAccount(op string, attributes models.AttributeMap) (string, string, error) {
	service := attributes.String(models.AttrService)
	account := attributes.String(models.AttrAccount)
	if service == "" || account == "" {
		return "", "", newStoreError(op, StatusParam, ErrMissingServiceOrAccount)
	}
	return service, account, nil
}

func keyringStatus(err error) Status {
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return StatusItemNotFound
	case errors.Is(err, keyring.ErrSetDataTooBig):
		return StatusParam
	}
	return StatusNotAvailable
}
