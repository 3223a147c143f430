// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AttributeMap is the generic attribute dictionary exchanged with the
// secure item store. Keys come from the fixed vocabulary below; values are
// strings, booleans or byte blobs.
type AttributeMap map[string]any

// Attribute keys understood by the store. The string values match the
// ones used by the platform keychain so that attribute maps can be passed
// through to a native store without translation.
const (
	// AttrClass is the item class (see ItemClass).
	AttrClass = "class"

	// AttrAccessible is the accessibility mode (see Accessibility).
	AttrAccessible = "pdmn"

	// AttrService is the service name of a password item.
	AttrService = "svce"

	// AttrAccount is the account name of a password item.
	AttrAccount = "acct"

	// AttrAccessGroup is the optional sharing group of an item.
	AttrAccessGroup = "agrp"

	// AttrReturnData asks a fetch to return the item's value data.
	AttrReturnData = "r_Data"

	// AttrReturnAttributes asks a fetch to return the item's attributes.
	AttrReturnAttributes = "r_Attributes"

	// AttrValueData holds the serialized payload blob.
	AttrValueData = "v_Data"
)

// IdentityKeys lists the attribute keys that address an item in the store.
var IdentityKeys = []string{AttrClass, AttrService, AttrAccount, AttrAccessGroup}

// ItemClass is the kind of item stored under AttrClass.
type ItemClass string

const (
	// ClassGenericPassword is a generic password item.
	ClassGenericPassword ItemClass = "genp"

	// ClassInternetPassword is an internet password item.
	ClassInternetPassword ItemClass = "inet"
)

// Valid reports whether c is a known item class.
func (c ItemClass) Valid() bool {
	return c == ClassGenericPassword || c == ClassInternetPassword
}

// Accessibility controls when the store makes an item readable.
type Accessibility string

const (
	AccessibleWhenUnlocked                   Accessibility = "ak"
	AccessibleAfterFirstUnlock               Accessibility = "ck"
	AccessibleWhenUnlockedThisDeviceOnly     Accessibility = "aku"
	AccessibleAfterFirstUnlockThisDeviceOnly Accessibility = "cku"
	AccessibleWhenPasscodeSetThisDeviceOnly  Accessibility = "akpu"
)

// DefaultAccessMode is used when an item does not choose its own mode.
const DefaultAccessMode = AccessibleWhenUnlocked

// Valid reports whether a is a known accessibility mode.
func (a Accessibility) Valid() bool {
	switch a {
	case AccessibleWhenUnlocked,
		AccessibleAfterFirstUnlock,
		AccessibleWhenUnlockedThisDeviceOnly,
		AccessibleAfterFirstUnlockThisDeviceOnly,
		AccessibleWhenPasscodeSetThisDeviceOnly:
		return true
	}
	return false
}

// Clone returns a shallow copy of the map. Byte slices are copied so the
// result shares no mutable state with m.
func (m AttributeMap) Clone() AttributeMap {
	if m == nil {
		return nil
	}

	out := make(AttributeMap, len(m))
	for k, v := range m {
		if b, ok := v.([]byte); ok {
			v = append([]byte(nil), b...)
		}
		out[k] = v
	}
	return out
}

// String returns the string value stored under key, or "" when the key is
// missing or holds another type.
func (m AttributeMap) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Bool returns the boolean value stored under key.
func (m AttributeMap) Bool(key string) bool {
	b, _ := m[key].(bool)
	return b
}

// Bytes returns the byte blob stored under key and whether it was present
// with that type.
func (m AttributeMap) Bytes(key string) ([]byte, bool) {
	b, ok := m[key].([]byte)
	return b, ok
}
