package store

import (
	"context"

	"github.com/MKhiriev/go-keychain/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Store is the secure item store: the three operations the item facade
// drives.
type Store interface {
	// InsertOrUpdate stores an item. An item with the same identity is
	// replaced.
	InsertOrUpdate(ctx context.Context, attributes models.AttributeMap) error

	// Remove deletes the items matching attributes. Matching nothing is
	// not an error.
	Remove(ctx context.Context, attributes models.AttributeMap) error

	// Fetch looks up one item. It returns a nil map and a nil error when
	// nothing matches.
	Fetch(ctx context.Context, attributes models.AttributeMap) (models.AttributeMap, error)
}

// Backend is the raw item storage a [Keychain] runs on. Its methods follow
// the native keychain primitives: failures are reported as *StoreError
// carrying a Status, item-not-found included.
type Backend interface {
	// Add stores a new item. It fails with StatusDuplicateItem when an item
	// with the same primary key (class, service, account, access group)
	// already exists.
	Add(ctx context.Context, attributes models.AttributeMap) error

	// Delete removes every item matching query. It fails with
	// StatusItemNotFound when nothing matched.
	Delete(ctx context.Context, query models.AttributeMap) error

	// CopyMatching returns the first item matching query, shaped by the
	// query's return flags: both flags yield a models.AttributeMap with
	// the value data, the data flag alone yields the []byte value data,
	// the attributes flag alone yields a models.AttributeMap without value
	// data, no flag yields nil. It fails with StatusItemNotFound when
	// nothing matched.
	CopyMatching(ctx context.Context, query models.AttributeMap) (any, error)
}
