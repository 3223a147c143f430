// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-keychain/internal/validators"
	"github.com/MKhiriev/go-keychain/models"
)

// Keychain implements [Store] on top of a [Backend].
//
// Attribute maps are validated before they reach the backend; an invalid
// map fails with StatusParam. Keychain keeps no state of its own, so it
// is safe for concurrent use whenever its backend is.
type Keychain struct {
	backend   Backend
	validator validators.Validator
}

// NewKeychain returns a Keychain driving backend.
func NewKeychain(backend Backend) *Keychain {
	return &Keychain{
		backend:   backend,
		validator: validators.NewAttributesValidator(),
	}
}

// InsertOrUpdate implements [Store]. When the backend reports a duplicate
// item, the existing item is deleted and the insert is retried once.
func (k *Keychain) InsertOrUpdate(ctx context.Context, attributes models.AttributeMap) error {
	if err := k.validator.Validate(ctx, attributes); err != nil {
		return newStoreError(OpInsert, StatusParam, err)
	}

	err := k.backend.Add(ctx, attributes)
	if StatusOf(err) != StatusDuplicateItem {
		return err
	}

	if err = k.backend.Delete(ctx, primaryKeyQuery(attributes)); err != nil && !IsNotFound(err) {
		return err
	}

	return k.backend.Add(ctx, attributes)
}

// Remove implements [Store]. Matching no item is not an error.
func (k *Keychain) Remove(ctx context.Context, attributes models.AttributeMap) error {
	if err := k.validator.Validate(ctx, attributes); err != nil {
		return newStoreError(OpRemove, StatusParam, err)
	}

	if err := k.backend.Delete(ctx, attributes); err != nil && !IsNotFound(err) {
		return err
	}

	return nil
}

// Fetch implements [Store]. It returns nil, nil when no item matches or
// when the backend result is not an attribute map (e.g. the request did
// not ask for attributes).
func (k *Keychain) Fetch(ctx context.Context, attributes models.AttributeMap) (models.AttributeMap, error) {
	if err := k.validator.Validate(ctx, attributes); err != nil {
		return nil, newStoreError(OpFetch, StatusParam, err)
	}

	result, err := k.backend.CopyMatching(ctx, attributes)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if item, ok := result.(models.AttributeMap); ok {
		return item, nil
	}

	return nil, nil
}

// Close releases the backend if it holds resources.
func (k *Keychain) Close() error {
	if closer, ok := k.backend.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
