// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DefaultServiceName is the service name used by GenericPassword when none
// is set.
const DefaultServiceName = "go.keychain.service"

// ItemDescriptor describes a single keychain item for one call.
//
// Attributes holds the identity attributes (class plus service/account or
// equivalent) that address the item in the store. Payload is the secret
// content; it is serialized into the value data on save and recovered on
// fetch. AllowedTypes lists the non-intrinsic value types the payload
// decoder may reconstruct for this item.
type ItemDescriptor struct {
	// AccessMode is the accessibility mode of the item. Zero means
	// DefaultAccessMode.
	AccessMode Accessibility

	// AccessGroup is the optional sharing group. Empty means no group key
	// is emitted.
	AccessGroup string

	Attributes   AttributeMap
	Payload      Payload
	AllowedTypes []TypeTag
}

// AccessModeOrDefault returns the descriptor's accessibility mode, falling
// back to DefaultAccessMode.
func (d ItemDescriptor) AccessModeOrDefault() Accessibility {
	if d.AccessMode == "" {
		return DefaultAccessMode
	}
	return d.AccessMode
}

// Clone returns a deep copy of the descriptor.
func (d ItemDescriptor) Clone() ItemDescriptor {
	out := d
	out.Attributes = d.Attributes.Clone()
	out.Payload = d.Payload.Clone()
	if d.AllowedTypes != nil {
		out.AllowedTypes = append([]TypeTag(nil), d.AllowedTypes...)
	}
	return out
}

// GenericPassword is the identity of a generic password item.
type GenericPassword struct {
	ServiceName string
	AccountName string
	AccessMode  Accessibility
	AccessGroup string
}

// Service returns the service name, falling back to DefaultServiceName.
func (g GenericPassword) Service() string {
	if g.ServiceName == "" {
		return DefaultServiceName
	}
	return g.ServiceName
}

// Attributes returns the identity attributes of the item: class, access
// mode, service and account.
func (g GenericPassword) Attributes() AttributeMap {
	mode := g.AccessMode
	if mode == "" {
		mode = DefaultAccessMode
	}

	return AttributeMap{
		AttrClass:      string(ClassGenericPassword),
		AttrAccessible: string(mode),
		AttrService:    g.Service(),
		AttrAccount:    g.AccountName,
	}
}

// Descriptor builds an ItemDescriptor for this identity carrying payload.
func (g GenericPassword) Descriptor(payload Payload, allowed ...TypeTag) ItemDescriptor {
	return ItemDescriptor{
		AccessMode:   g.AccessMode,
		AccessGroup:  g.AccessGroup,
		Attributes:   g.Attributes(),
		Payload:      payload,
		AllowedTypes: allowed,
	}
}
