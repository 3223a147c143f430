// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-keychain/internal/attributes"
	"github.com/MKhiriev/go-keychain/internal/codec"
	"github.com/MKhiriev/go-keychain/internal/logger"
	"github.com/MKhiriev/go-keychain/internal/store"
	"github.com/MKhiriev/go-keychain/models"
)

type itemService struct {
	store   store.Store
	builder AttributeBuilder
	decoder PayloadDecoder

	logger *logger.Logger
}

// NewItemService returns an [ItemService] on itemStore using the msgpack
// payload codec.
func NewItemService(itemStore store.Store, logger *logger.Logger) ItemService {
	c := codec.New()
	return NewItemServiceWith(itemStore, attributes.NewBuilder(c), c, logger)
}

// NewItemServiceWith returns an [ItemService] built from explicit
// collaborators.
func NewItemServiceWith(itemStore store.Store, builder AttributeBuilder, decoder PayloadDecoder, logger *logger.Logger) ItemService {
	return &itemService{
		store:   itemStore,
		builder: builder,
		decoder: decoder,
		logger:  logger,
	}
}

func (s *itemService) Save(ctx context.Context, item models.ItemDescriptor) error {
	if s.store == nil {
		return fmt.Errorf("save item: %w", ErrNoStore)
	}

	attrs, err := s.builder.BuildSave(item)
	if err != nil {
		return fmt.Errorf("build attributes for save: %w", err)
	}

	if err = s.store.InsertOrUpdate(ctx, attrs); err != nil {
		return fmt.Errorf("save item: %w", err)
	}

	return nil
}

func (s *itemService) Remove(ctx context.Context, item models.ItemDescriptor) error {
	if s.store == nil {
		return fmt.Errorf("remove item: %w", ErrNoStore)
	}

	if err := s.store.Remove(ctx, s.builder.BuildRemove(item)); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}

	return nil
}

// Fetch implements [ItemService]. On error item is returned as given.
func (s *itemService) Fetch(ctx context.Context, item models.ItemDescriptor) (models.ItemDescriptor, error) {
	if s.store == nil {
		return item, fmt.Errorf("fetch item: %w", ErrNoStore)
	}

	found, err := s.store.Fetch(ctx, s.builder.BuildFetchRequest(item))
	if err != nil {
		return item, fmt.Errorf("fetch item: %w", err)
	}
	if found == nil {
		s.logger.Debug().Str("func", "itemService.Fetch").Msg("item not found")
		return item, nil
	}

	payload, err := s.decoder.ExtractPayload(found, item.AllowedTypes)
	if err != nil {
		return item, fmt.Errorf("decode fetched payload: %w", err)
	}
	if payload == nil {
		s.logger.Debug().Str("func", "itemService.Fetch").Msg("item has no payload")
		return item, nil
	}

	fetched := item
	fetched.Payload = item.Payload.Merge(payload)

	return fetched, nil
}
