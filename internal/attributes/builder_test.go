// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package attributes

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-keychain/internal/codec"
	"github.com/MKhiriev/go-keychain/models"
)

type encoderFunc func(models.Payload) ([]byte, error)

func (f encoderFunc) Encode(p models.Payload) ([]byte, error) { return f(p) }

func simpleItem() models.ItemDescriptor {
	return models.ItemDescriptor{
		Attributes: models.AttributeMap{models.AttrClass: string(models.ClassGenericPassword)},
		Payload:    models.Payload{"token": "123456"},
	}
}

func datedItem() models.ItemDescriptor {
	return models.GenericPassword{AccountName: "John"}.Descriptor(
		models.Payload{"token": "123456", "date": time.Unix(123456, 0).UTC()},
		models.TypeTimestamp,
	)
}

func TestBuildSave_ContainsClassAndValueData(t *testing.T) {
	c := codec.New()
	b := NewBuilder(c)
	item := simpleItem()

	expected, err := c.Encode(models.Payload{"token": "123456"})
	require.NoError(t, err)

	attrs, err := b.BuildSave(item)
	require.NoError(t, err)

	assert.Equal(t, string(models.ClassGenericPassword), attrs.String(models.AttrClass))
	data, ok := attrs.Bytes(models.AttrValueData)
	require.True(t, ok)
	assert.Equal(t, expected, data)
	assert.NotContains(t, attrs, models.AttrAccessGroup)
	assert.NotContains(t, attrs, models.AttrReturnData)
}

func TestBuildSave_RoundTrip(t *testing.T) {
	c := codec.New()
	b := NewBuilder(c)

	for _, item := range []models.ItemDescriptor{simpleItem(), datedItem()} {
		attrs, err := b.BuildSave(item)
		require.NoError(t, err)

		payload, err := c.ExtractPayload(attrs, item.AllowedTypes)
		require.NoError(t, err)
		assert.Equal(t, item.Payload, payload)
	}
}

func TestBuildSave_KeepsIdentity(t *testing.T) {
	b := NewBuilder(codec.New())
	item := datedItem()
	item.Payload[models.AttrAccount] = "payload cannot rename the account"

	attrs, err := b.BuildSave(item)
	require.NoError(t, err)

	assert.Equal(t, "John", attrs.String(models.AttrAccount))
	assert.Equal(t, models.DefaultServiceName, attrs.String(models.AttrService))
	assert.Equal(t, string(models.AccessibleWhenUnlocked), attrs.String(models.AttrAccessible))
	assert.Len(t, attrs, 5)
}

func TestBuildSave_EncodeErrorPropagates(t *testing.T) {
	encodeErr := errors.New("boom")
	b := NewBuilder(encoderFunc(func(models.Payload) ([]byte, error) { return nil, encodeErr }))

	attrs, err := b.BuildSave(simpleItem())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialization)
	assert.ErrorIs(t, err, encodeErr)
	assert.Nil(t, attrs)
}

func TestBuildSave_UnsupportedValue(t *testing.T) {
	b := NewBuilder(codec.New())
	item := simpleItem()
	item.Payload["bad"] = struct{}{}

	_, err := b.BuildSave(item)
	assert.ErrorIs(t, err, ErrSerialization)
	assert.ErrorIs(t, err, codec.ErrEncoding)
}

func TestBuildSave_AccessGroup(t *testing.T) {
	b := NewBuilder(codec.New())
	item := simpleItem()
	item.AccessGroup = "team.shared"

	attrs, err := b.BuildSave(item)
	require.NoError(t, err)
	assert.Equal(t, "team.shared", attrs.String(models.AttrAccessGroup))
}

func TestBuildFetchRequest(t *testing.T) {
	b := NewBuilder(codec.New())

	tests := []struct {
		name  string
		item  models.ItemDescriptor
		group string
	}{
		{name: "simple", item: simpleItem()},
		{name: "generic password", item: datedItem()},
		{name: "with group", item: func() models.ItemDescriptor {
			d := datedItem()
			d.AccessGroup = "group"
			return d
		}(), group: "group"},
		{name: "descriptor carrying request keys", item: func() models.ItemDescriptor {
			d := simpleItem()
			d.Attributes[models.AttrValueData] = []byte("stale")
			d.Attributes[models.AttrReturnData] = false
			return d
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := b.BuildFetchRequest(tt.item)

			assert.Equal(t, true, attrs[models.AttrReturnData])
			assert.Equal(t, true, attrs[models.AttrReturnAttributes])
			assert.NotContains(t, attrs, models.AttrValueData)
			assert.Equal(t, tt.item.Attributes.String(models.AttrClass), attrs.String(models.AttrClass))
			if tt.group != "" {
				assert.Equal(t, tt.group, attrs.String(models.AttrAccessGroup))
			} else {
				assert.NotContains(t, attrs, models.AttrAccessGroup)
			}
		})
	}
}

func TestBuildRemove(t *testing.T) {
	b := NewBuilder(codec.New())
	item := datedItem()
	item.AccessGroup = "group"

	attrs := b.BuildRemove(item)

	assert.Equal(t, models.AttributeMap{
		models.AttrClass:       string(models.ClassGenericPassword),
		models.AttrAccessible:  string(models.AccessibleWhenUnlocked),
		models.AttrService:     models.DefaultServiceName,
		models.AttrAccount:     "John",
		models.AttrAccessGroup: "group",
	}, attrs)
}

func TestBuilder_DoesNotMutateDescriptor(t *testing.T) {
	b := NewBuilder(codec.New())
	item := simpleItem()
	item.AccessGroup = "group"
	before := item.Clone()

	_, err := b.BuildSave(item)
	require.NoError(t, err)
	b.BuildFetchRequest(item)
	attrs := b.BuildRemove(item)
	attrs[models.AttrAccount] = "changed"

	assert.Equal(t, before, item)
}

func TestBuild_AccessModeDefaults(t *testing.T) {
	b := NewBuilder(codec.New())

	tests := []struct {
		name string
		mode models.Accessibility
		want models.Accessibility
	}{
		{name: "unset mode falls back to when unlocked", want: models.AccessibleWhenUnlocked},
		{name: "descriptor mode applied", mode: models.AccessibleAfterFirstUnlock, want: models.AccessibleAfterFirstUnlock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := simpleItem()
			item.AccessMode = tt.mode

			saved, err := b.BuildSave(item)
			require.NoError(t, err)

			assert.Equal(t, string(tt.want), saved.String(models.AttrAccessible))
			assert.Equal(t, string(tt.want), b.BuildFetchRequest(item).String(models.AttrAccessible))
			assert.Equal(t, string(tt.want), b.BuildRemove(item).String(models.AttrAccessible))
		})
	}
}

func TestBuild_ExplicitAccessibleAttributeWins(t *testing.T) {
	b := NewBuilder(codec.New())
	item := simpleItem()
	item.Attributes[models.AttrAccessible] = string(models.AccessibleWhenUnlockedThisDeviceOnly)
	item.AccessMode = models.AccessibleAfterFirstUnlock

	assert.Equal(t, string(models.AccessibleWhenUnlockedThisDeviceOnly), b.BuildRemove(item).String(models.AttrAccessible))
}
