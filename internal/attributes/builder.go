// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package attributes derives the attribute maps sent to the secure item
// store from an item descriptor.
//
// The builder is pure: it never touches the store and never mutates the
// descriptor it is given. Every returned map is a fresh copy.
package attributes

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-keychain/models"
)

// ErrSerialization is returned by [Builder.BuildSave] when the payload
// cannot be encoded. The encoder's own error is wrapped alongside it.
var ErrSerialization = errors.New("payload serialization failed")

// Encoder turns a payload into the blob stored under the value-data key.
type Encoder interface {
	Encode(payload models.Payload) ([]byte, error)
}

// Builder composes store attributes for save, fetch and remove.
type Builder struct {
	encoder Encoder
}

// NewBuilder returns a Builder that serializes payloads with encoder.
func NewBuilder(encoder Encoder) *Builder {
	return &Builder{encoder: encoder}
}

// BuildSave returns the identity attributes of d plus the serialized
// payload under the value-data key and the access group, if any.
func (b *Builder) BuildSave(d models.ItemDescriptor) (models.AttributeMap, error) {
	data, err := b.encoder.Encode(d.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	attrs := identity(d)
	attrs[models.AttrValueData] = data

	return attrs, nil
}

// BuildFetchRequest returns the identity attributes of d plus both return
// flags and the access group, if any.
func (b *Builder) BuildFetchRequest(d models.ItemDescriptor) models.AttributeMap {
	attrs := identity(d)
	attrs[models.AttrReturnData] = true
	attrs[models.AttrReturnAttributes] = true

	return attrs
}

// BuildRemove returns the identity attributes of d plus the access group,
// if any.
func (b *Builder) BuildRemove(d models.ItemDescriptor) models.AttributeMap {
	return identity(d)
}

// identity copies the descriptor's identity attributes and adds the access
// group and, unless the attributes already carry one, the descriptor's
// access mode. Request-only keys (value data, return flags) are not
// identity and are dropped.
func identity(d models.ItemDescriptor) models.AttributeMap {
	attrs := make(models.AttributeMap, len(d.Attributes)+3)
	for k, v := range d.Attributes {
		switch k {
		case models.AttrValueData, models.AttrReturnData, models.AttrReturnAttributes:
			continue
		}
		attrs[k] = v
	}

	if _, ok := attrs[models.AttrAccessible]; !ok {
		attrs[models.AttrAccessible] = string(d.AccessModeOrDefault())
	}
	if d.AccessGroup != "" {
		attrs[models.AttrAccessGroup] = d.AccessGroup
	}

	return attrs
}
