// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-keychain/models"
)

// attributeKinds maps every attribute key of the store vocabulary to the
// Go type its value must have.
var attributeKinds = map[string]string{
	models.AttrClass:            "string",
	models.AttrAccessible:       "string",
	models.AttrService:          "string",
	models.AttrAccount:          "string",
	models.AttrAccessGroup:      "string",
	models.AttrReturnData:       "bool",
	models.AttrReturnAttributes: "bool",
	models.AttrValueData:        "bytes",
}

// AttributesValidator checks attribute maps before they reach a store
// backend. A map is valid when it has a known item class, uses only keys of
// the store vocabulary and every value has the type its key requires.
type AttributesValidator struct {
}

// NewAttributesValidator returns a [Validator] for [models.AttributeMap].
func NewAttributesValidator() Validator {
	return &AttributesValidator{}
}

// Validate implements [Validator]. fields lists attribute keys that must be
// present besides the class, e.g. [models.AttrValueData] for an insert.
func (v *AttributesValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AttributeMap:
		return v.validateAttributes(value, fields...)
	case map[string]any:
		return v.validateAttributes(value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *AttributesValidator) validateAttributes(attrs models.AttributeMap, fields ...string) error {
	if len(attrs) == 0 {
		return ErrEmptyAttributes
	}

	// sorted so the first reported problem is stable
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		kind, ok := attributeKinds[key]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAttribute, key)
		}
		if !hasKind(attrs[key], kind) {
			return fmt.Errorf("%w: %q must be %s, got %T", ErrInvalidAttributeType, key, kind, attrs[key])
		}
	}

	class, ok := attrs[models.AttrClass].(string)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingAttribute, models.AttrClass)
	}
	if !models.ItemClass(class).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidClass, class)
	}

	if mode, ok := attrs[models.AttrAccessible].(string); ok && !models.Accessibility(mode).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccessibility, mode)
	}

	for _, field := range fields {
		if _, ok := attrs[field]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingAttribute, field)
		}
	}

	return nil
}

func hasKind(value any, kind string) bool {
	switch kind {
	case "string":
		_, ok := value.(string)
		return ok
	case "bool":
		_, ok := value.(bool)
		return ok
	case "bytes":
		_, ok := value.([]byte)
		return ok
	}
	return false
}
