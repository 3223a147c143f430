package store

import (
	"github.com/MKhiriev/go-keychain/models"
)

// matchKeys are the attributes compared when matching a query against a
// stored item. A key absent from the query matches anything.
var matchKeys = []string{
	models.AttrClass,
	models.AttrService,
	models.AttrAccount,
	models.AttrAccessGroup,
	models.AttrAccessible,
}

// primaryKeyAttributes are the match keys making up a primary key.
var primaryKeyAttributes = []string{
	models.AttrClass,
	models.AttrService,
	models.AttrAccount,
	models.AttrAccessGroup,
}

// primaryKey identifies an item uniquely within a backend.
type primaryKey struct {
	class   string
	service string
	account string
	group   string
}

func primaryKeyOf(attrs models.AttributeMap) primaryKey {
	return primaryKey{
		class:   attrs.String(models.AttrClass),
		service: attrs.String(models.AttrService),
		account: attrs.String(models.AttrAccount),
		group:   attrs.String(models.AttrAccessGroup),
	}
}

// primaryKeyQuery returns a query matching exactly the item with the
// primary key of attrs. Missing key parts match only empty values.
func primaryKeyQuery(attrs models.AttributeMap) models.AttributeMap {
	pk := primaryKeyOf(attrs)
	return models.AttributeMap{
		models.AttrClass:       pk.class,
		models.AttrService:     pk.service,
		models.AttrAccount:     pk.account,
		models.AttrAccessGroup: pk.group,
	}
}

func matches(stored, query models.AttributeMap) bool {
	return matchesOn(matchKeys, stored, query)
}

// matchesOn compares only the given keys of query against stored.
func matchesOn(keys []string, stored, query models.AttributeMap) bool {
	for _, key := range keys {
		want, ok := query[key]
		if !ok {
			continue
		}
		if s, _ := want.(string); s != stored.String(key) {
			return false
		}
	}
	return true
}

// storedAttributes strips request-only keys so only item attributes are
// kept by a backend.
func storedAttributes(attrs models.AttributeMap) models.AttributeMap {
	stored := attrs.Clone()
	delete(stored, models.AttrReturnData)
	delete(stored, models.AttrReturnAttributes)
	return stored
}

// shapeResult builds the CopyMatching result for stored according to the
// return flags of query.
func shapeResult(stored, query models.AttributeMap) any {
	returnData := query.Bool(models.AttrReturnData)
	returnAttributes := query.Bool(models.AttrReturnAttributes)

	switch {
	case returnData && returnAttributes:
		return stored.Clone()
	case returnData:
		data, _ := stored.Bytes(models.AttrValueData)
		return append([]byte(nil), data...)
	case returnAttributes:
		item := stored.Clone()
		delete(item, models.AttrValueData)
		return item
	default:
		return nil
	}
}
