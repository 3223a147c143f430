package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-keychain/models"
)

func TestMatches(t *testing.T) {
	stored := genericItem("svc", "alice", []byte("x"))

	tests := []struct {
		name  string
		query models.AttributeMap
		want  bool
	}{
		{name: "identity", query: identityQuery("svc", "alice"), want: true},
		{name: "class only", query: models.AttributeMap{models.AttrClass: "genp"}, want: true},
		{name: "other account", query: identityQuery("svc", "bob"), want: false},
		{name: "other class", query: models.AttributeMap{models.AttrClass: "inet"}, want: false},
		{name: "empty group matches absent group", query: primaryKeyQuery(stored), want: true},
		{name: "group filter", query: models.AttributeMap{models.AttrClass: "genp", models.AttrAccessGroup: "team"}, want: false},
		{name: "accessibility filter", query: models.AttributeMap{models.AttrClass: "genp", models.AttrAccessible: "ak"}, want: true},
		{name: "other accessibility", query: models.AttributeMap{models.AttrClass: "genp", models.AttrAccessible: "ck"}, want: false},
		{name: "return flags ignored", query: fetchQuery("svc", "alice"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matches(stored, tt.query))
		})
	}
}

func TestMatchesOn_PrimaryKeyIgnoresAccessibility(t *testing.T) {
	key := primaryKey{class: "genp", service: "svc", account: "alice"}.attributes()
	query := fetchQuery("svc", "alice")
	query[models.AttrAccessible] = "ak"

	assert.False(t, matches(key, query), "a bare key has no accessibility")
	assert.True(t, matchesOn(primaryKeyAttributes, key, query))

	query[models.AttrAccount] = "bob"
	assert.False(t, matchesOn(primaryKeyAttributes, key, query))
}

func TestPrimaryKeyQuery(t *testing.T) {
	attrs := genericItem("svc", "alice", []byte("x"))
	attrs[models.AttrReturnData] = true

	assert.Equal(t, models.AttributeMap{
		models.AttrClass:       "genp",
		models.AttrService:     "svc",
		models.AttrAccount:     "alice",
		models.AttrAccessGroup: "",
	}, primaryKeyQuery(attrs))
}

func TestStoredAttributes(t *testing.T) {
	attrs := fetchQuery("svc", "alice")
	stored := storedAttributes(attrs)

	assert.NotContains(t, stored, models.AttrReturnData)
	assert.NotContains(t, stored, models.AttrReturnAttributes)
	assert.Contains(t, attrs, models.AttrReturnData, "input must not be modified")
}

func TestShapeResult(t *testing.T) {
	stored := genericItem("svc", "alice", []byte("secret"))
	withAttrs := func(data, attrs bool) models.AttributeMap {
		query := identityQuery("svc", "alice")
		query[models.AttrReturnData] = data
		query[models.AttrReturnAttributes] = attrs
		return query
	}

	t.Run("data and attributes", func(t *testing.T) {
		got := shapeResult(stored, withAttrs(true, true))
		assert.Equal(t, stored, got)
	})

	t.Run("data only", func(t *testing.T) {
		got := shapeResult(stored, withAttrs(true, false))
		assert.Equal(t, []byte("secret"), got)
	})

	t.Run("attributes only", func(t *testing.T) {
		got, ok := shapeResult(stored, withAttrs(false, true)).(models.AttributeMap)
		assert.True(t, ok)
		assert.NotContains(t, got, models.AttrValueData)
		assert.Equal(t, "alice", got[models.AttrAccount])
	})

	t.Run("no flags", func(t *testing.T) {
		assert.Nil(t, shapeResult(stored, identityQuery("svc", "alice")))
	})

	t.Run("result does not alias stored item", func(t *testing.T) {
		got := shapeResult(stored, withAttrs(true, true)).(models.AttributeMap)
		got[models.AttrValueData].([]byte)[0] = 'X'
		assert.Equal(t, []byte("secret"), stored[models.AttrValueData])
	})
}
