package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-keychain/internal/logger"
	"github.com/MKhiriev/go-keychain/internal/store"
	"github.com/MKhiriev/go-keychain/models"
)

// ItemLoggingService traces every call of the wrapped [ItemService] at
// debug level. Payload contents are never logged.
type ItemLoggingService struct {
	inner  ItemService
	logger *logger.Logger
}

func NewItemLoggingService(logger *logger.Logger) ItemServiceWrapper {
	return &ItemLoggingService{logger: logger}
}

func (l *ItemLoggingService) Save(ctx context.Context, item models.ItemDescriptor) error {
	start := time.Now()
	err := l.inner.Save(ctx, item)
	l.trace("Save", item, start, err)
	return err
}

func (l *ItemLoggingService) Remove(ctx context.Context, item models.ItemDescriptor) error {
	start := time.Now()
	err := l.inner.Remove(ctx, item)
	l.trace("Remove", item, start, err)
	return err
}

func (l *ItemLoggingService) Fetch(ctx context.Context, item models.ItemDescriptor) (models.ItemDescriptor, error) {
	start := time.Now()
	fetched, err := l.inner.Fetch(ctx, item)
	l.trace("Fetch", item, start, err)
	return fetched, err
}

// Wrap returns a new logging service around inner. l itself is left as is,
// so one wrapper may decorate several services.
func (l *ItemLoggingService) Wrap(inner ItemService) ItemService {
	return &ItemLoggingService{inner: inner, logger: l.logger}
}

func (l *ItemLoggingService) trace(op string, item models.ItemDescriptor, start time.Time, err error) {
	event := l.logger.Debug()
	if err != nil {
		event = l.logger.Warn().Err(err).Str("status", store.StatusOf(err).String())
	}

	event.
		Str("func", "ItemService."+op).
		Str("class", item.Attributes.String(models.AttrClass)).
		Str("service", item.Attributes.String(models.AttrService)).
		Str("account", item.Attributes.String(models.AttrAccount)).
		Dur("elapsed", time.Since(start)).
		Msg("item operation")
}
