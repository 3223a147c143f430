// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Payload is the logical secret content of an item: a flat string-keyed
// mapping whose values are strings, booleans, integers, floats, byte
// slices, time.Time, nested map[string]any or []any. Recovered payloads
// hold integers as int64, floats as float64 and nested mappings as
// map[string]any.
//
// Payload is serialized into the opaque blob stored under AttrValueData.
type Payload map[string]any

// Clone returns a copy of p. Nested containers are copied as well so the
// result can be modified without touching p.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}

	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge returns a copy of p with every field of other written over it.
func (p Payload) Merge(other Payload) Payload {
	out := p.Clone()
	if out == nil {
		out = make(Payload, len(other))
	}
	for k, v := range other {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case []byte:
		return append([]byte(nil), value...)
	case Payload:
		return value.Clone()
	case map[string]any:
		return map[string]any(Payload(value).Clone())
	case []any:
		list := make([]any, len(value))
		for i, e := range value {
			list[i] = cloneValue(e)
		}
		return list
	default:
		return v
	}
}

// TypeTag names a value type the payload codec can represent.
type TypeTag string

const (
	// TypeMapping is a string-keyed container. It is always decodable.
	TypeMapping TypeTag = "mapping"

	TypeString TypeTag = "string"
	TypeBool   TypeTag = "bool"
	TypeInt    TypeTag = "int"
	TypeFloat  TypeTag = "float"

	// The tags below must be allow-listed by the item before a blob
	// containing them can be decoded.
	TypeBytes     TypeTag = "bytes"
	TypeTimestamp TypeTag = "timestamp"
	TypeList      TypeTag = "list"
)

// Intrinsic reports whether values of this type are decodable without
// being allow-listed.
func (t TypeTag) Intrinsic() bool {
	switch t {
	case TypeMapping, TypeString, TypeBool, TypeInt, TypeFloat:
		return true
	}
	return false
}

// Known reports whether t is one of the tags defined above.
func (t TypeTag) Known() bool {
	switch t {
	case TypeBytes, TypeTimestamp, TypeList:
		return true
	}
	return t.Intrinsic()
}
