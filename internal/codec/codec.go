// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec converts an item payload to and from the opaque blob kept
// under the value-data attribute of a keychain item.
//
// The blob is a msgpack archive in which every value carries its type tag.
// Decoding is restricted to an allow-list of type tags: the mapping
// container and the intrinsic primitives (string, bool, int, float) are
// always accepted, anything else has to be allowed by the caller. The
// allow-list is checked over the whole archive before any value is
// materialized, so a rejected blob never yields partial data.
package codec

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/MKhiriev/go-keychain/models"
)

const (
	// archiveVersion is written into every blob and checked on decode.
	archiveVersion = 1

	// maxDepth bounds container nesting on both encode and decode.
	maxDepth = 32
)

// archive is the top-level record of a blob.
type archive struct {
	Version int   `msgpack:"v"`
	Root    *node `msgpack:"r"`
}

// node is a single typed value. Exactly one value field is meaningful,
// selected by Type.
type node struct {
	Type  models.TypeTag `msgpack:"t"`
	Str   string         `msgpack:"s,omitempty"`
	Bool  bool           `msgpack:"b,omitempty"`
	Int   int64          `msgpack:"i,omitempty"`
	Float float64        `msgpack:"f,omitempty"`
	Bytes []byte         `msgpack:"d,omitempty"`
	Time  time.Time      `msgpack:"ts,omitempty"`
	Map   []entry        `msgpack:"m,omitempty"`
	List  []*node        `msgpack:"l,omitempty"`
}

// entry is one field of a mapping node. Mapping fields are written in key
// order so equal payloads always encode to equal blobs.
type entry struct {
	Key string `msgpack:"k"`
	Val *node  `msgpack:"n"`
}

// Codec is the payload codec. The zero value is ready to use.
type Codec struct{}

// New returns a payload codec.
func New() *Codec {
	return &Codec{}
}

// Encode serializes payload into a blob. Equal payloads encode to equal
// bytes. A nil payload is encoded as an empty mapping and so decodes to an
// empty Payload.
//
// Supported value types are string, bool, every signed and unsigned
// integer type (stored as int64), float32 and float64 (stored as float64),
// []byte, time.Time (stored in UTC), models.Payload, map[string]any and
// []any. Decoding yields int64 and float64 for numbers and map[string]any
// for every nested mapping, nested models.Payload included. An unsigned
// value above math.MaxInt64 or any other value type, nil included, fails
// with ErrEncoding.
func (c *Codec) Encode(payload models.Payload) ([]byte, error) {
	root, err := encodeMap(payload, "", 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	if err = enc.Encode(archive{Version: archiveVersion, Root: root}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	return buf.Bytes(), nil
}

// Decode deserializes a blob produced by Encode.
//
// An empty blob, or one whose root value is not a mapping, yields a nil
// payload and a nil error. A malformed blob, or one containing a value
// whose type is neither intrinsic nor listed in allowed, fails with
// ErrDecoding.
func (c *Codec) Decode(data []byte, allowed []models.TypeTag) (models.Payload, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r := bytes.NewReader(data)
	dec := msgpack.NewDecoder(r)
	dec.DisallowUnknownFields(true)

	var a archive
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after archive", ErrDecoding, r.Len())
	}
	if a.Version != archiveVersion {
		return nil, fmt.Errorf("%w: unsupported archive version %d", ErrDecoding, a.Version)
	}
	if a.Root == nil {
		return nil, fmt.Errorf("%w: archive has no root value", ErrDecoding)
	}

	allow := make(map[models.TypeTag]struct{}, len(allowed))
	for _, tag := range allowed {
		allow[tag] = struct{}{}
	}

	if err := validate(a.Root, allow, "", 0); err != nil {
		return nil, err
	}

	if a.Root.Type != models.TypeMapping {
		return nil, nil
	}

	return models.Payload(materializeMap(a.Root)), nil
}

// ExtractPayload recovers the payload stored in a fetched item. It returns
// a nil payload when the item has no value data.
func (c *Codec) ExtractPayload(item models.AttributeMap, allowed []models.TypeTag) (models.Payload, error) {
	data, ok := item.Bytes(models.AttrValueData)
	if !ok {
		return nil, nil
	}

	return c.Decode(data, allowed)
}

func encodeMap(m map[string]any, path string, depth int) (*node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: %s: nesting deeper than %d", ErrEncoding, pathOrRoot(path), maxDepth)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := &node{Type: models.TypeMapping, Map: make([]entry, 0, len(m))}
	for _, k := range keys {
		child, err := encodeValue(m[k], joinPath(path, k), depth+1)
		if err != nil {
			return nil, err
		}
		n.Map = append(n.Map, entry{Key: k, Val: child})
	}
	return n, nil
}

func encodeValue(v any, path string, depth int) (*node, error) {
	switch value := v.(type) {
	case string:
		return &node{Type: models.TypeString, Str: value}, nil
	case bool:
		return &node{Type: models.TypeBool, Bool: value}, nil
	case int:
		return intNode(int64(value)), nil
	case int8:
		return intNode(int64(value)), nil
	case int16:
		return intNode(int64(value)), nil
	case int32:
		return intNode(int64(value)), nil
	case int64:
		return intNode(value), nil
	case uint:
		return uintNode(uint64(value), path)
	case uint8:
		return uintNode(uint64(value), path)
	case uint16:
		return uintNode(uint64(value), path)
	case uint32:
		return uintNode(uint64(value), path)
	case uint64:
		return uintNode(value, path)
	case float32:
		return &node{Type: models.TypeFloat, Float: float64(value)}, nil
	case float64:
		return &node{Type: models.TypeFloat, Float: value}, nil
	case []byte:
		return &node{Type: models.TypeBytes, Bytes: append([]byte(nil), value...)}, nil
	case time.Time:
		return &node{Type: models.TypeTimestamp, Time: value.UTC()}, nil
	case models.Payload:
		return encodeMap(value, path, depth)
	case map[string]any:
		return encodeMap(value, path, depth)
	case []any:
		if depth > maxDepth {
			return nil, fmt.Errorf("%w: %s: nesting deeper than %d", ErrEncoding, path, maxDepth)
		}
		n := &node{Type: models.TypeList, List: make([]*node, len(value))}
		for i, e := range value {
			child, err := encodeValue(e, fmt.Sprintf("%s[%d]", path, i), depth+1)
			if err != nil {
				return nil, err
			}
			n.List[i] = child
		}
		return n, nil
	case nil:
		return nil, fmt.Errorf("%w: %s: nil value", ErrEncoding, path)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported value type %T", ErrEncoding, path, v)
	}
}

func intNode(v int64) *node {
	return &node{Type: models.TypeInt, Int: v}
}

func uintNode(v uint64, path string) (*node, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %s: unsigned value %d overflows int64", ErrEncoding, path, v)
	}
	return intNode(int64(v)), nil
}

// validate walks the archive and rejects unknown or disallowed type tags
// and structurally broken nodes.
func validate(n *node, allow map[models.TypeTag]struct{}, path string, depth int) error {
	if n == nil {
		return fmt.Errorf("%w: %s: empty value", ErrDecoding, pathOrRoot(path))
	}
	if depth > maxDepth {
		return fmt.Errorf("%w: %s: nesting deeper than %d", ErrDecoding, pathOrRoot(path), maxDepth)
	}
	if !n.Type.Known() {
		return fmt.Errorf("%w: %s: unknown type tag %q", ErrDecoding, pathOrRoot(path), n.Type)
	}
	if !n.Type.Intrinsic() {
		if _, ok := allow[n.Type]; !ok {
			return fmt.Errorf("%w: %w: %s: %q", ErrDecoding, ErrTypeNotAllowed, pathOrRoot(path), n.Type)
		}
	}

	switch n.Type {
	case models.TypeMapping:
		seen := make(map[string]struct{}, len(n.Map))
		for _, e := range n.Map {
			field := joinPath(path, e.Key)
			if _, dup := seen[e.Key]; dup {
				return fmt.Errorf("%w: %s: duplicate key", ErrDecoding, field)
			}
			seen[e.Key] = struct{}{}

			if err := validate(e.Val, allow, field, depth+1); err != nil {
				return err
			}
		}
	case models.TypeList:
		for i, e := range n.List {
			if err := validate(e, allow, fmt.Sprintf("%s[%d]", path, i), depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

func materialize(n *node) any {
	switch n.Type {
	case models.TypeString:
		return n.Str
	case models.TypeBool:
		return n.Bool
	case models.TypeInt:
		return n.Int
	case models.TypeFloat:
		return n.Float
	case models.TypeBytes:
		if n.Bytes == nil {
			return []byte{}
		}
		return n.Bytes
	case models.TypeTimestamp:
		return n.Time.UTC()
	case models.TypeMapping:
		return materializeMap(n)
	case models.TypeList:
		list := make([]any, len(n.List))
		for i, e := range n.List {
			list[i] = materialize(e)
		}
		return list
	}
	return nil
}

func materializeMap(n *node) map[string]any {
	m := make(map[string]any, len(n.Map))
	for _, e := range n.Map {
		m[e.Key] = materialize(e.Val)
	}
	return m
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func pathOrRoot(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}
