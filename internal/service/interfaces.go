package service

import (
	"context"

	"github.com/MKhiriev/go-keychain/models"
)

// ItemService saves, removes and fetches keychain items described by a
// [models.ItemDescriptor].
type ItemService interface {
	Save(ctx context.Context, item models.ItemDescriptor) error
	Remove(ctx context.Context, item models.ItemDescriptor) error

	// Fetch returns item with the stored payload fields merged over its
	// Payload. When nothing is stored for item it is returned unchanged.
	Fetch(ctx context.Context, item models.ItemDescriptor) (models.ItemDescriptor, error)
}

// ItemServiceWrapper defines middleware composition for ItemService.
// Implementations wrap an existing ItemService to add behavior such as
// logging.
type ItemServiceWrapper interface {
	Wrap(ItemService) ItemService // returns a decorated ItemService applying additional behavior
}

// AttributeBuilder composes the store attributes of an item.
type AttributeBuilder interface {
	BuildSave(item models.ItemDescriptor) (models.AttributeMap, error)
	BuildFetchRequest(item models.ItemDescriptor) models.AttributeMap
	BuildRemove(item models.ItemDescriptor) models.AttributeMap
}

// PayloadDecoder recovers a payload from a fetched item.
type PayloadDecoder interface {
	ExtractPayload(item models.AttributeMap, allowed []models.TypeTag) (models.Payload, error)
}
