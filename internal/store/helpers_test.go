package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-keychain/internal/attributes"
	"github.com/MKhiriev/go-keychain/internal/codec"
	"github.com/MKhiriev/go-keychain/models"
)

func genericItem(service, account string, data []byte) models.AttributeMap {
	return models.AttributeMap{
		models.AttrClass:      string(models.ClassGenericPassword),
		models.AttrAccessible: string(models.DefaultAccessMode),
		models.AttrService:    service,
		models.AttrAccount:    account,
		models.AttrValueData:  data,
	}
}

func identityQuery(service, account string) models.AttributeMap {
	return models.AttributeMap{
		models.AttrClass:   string(models.ClassGenericPassword),
		models.AttrService: service,
		models.AttrAccount: account,
	}
}

func fetchQuery(service, account string) models.AttributeMap {
	query := identityQuery(service, account)
	query[models.AttrReturnData] = true
	query[models.AttrReturnAttributes] = true
	return query
}

// builtRequests are the store attributes the item builder produces for one
// item.
type builtRequests struct {
	save   models.AttributeMap
	fetch  models.AttributeMap
	remove models.AttributeMap
}

func buildRequests(t *testing.T, item models.ItemDescriptor) builtRequests {
	t.Helper()
	b := attributes.NewBuilder(codec.New())

	save, err := b.BuildSave(item)
	require.NoError(t, err)

	return builtRequests{
		save:   save,
		fetch:  b.BuildFetchRequest(item),
		remove: b.BuildRemove(item),
	}
}
