// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"strings"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/cache"
	"github.com/taibuivan/mangacal/internal/platform/constants"
)

// # Service Layer

// Service exposes publishers and types to the pages and the JSON API.
//
// Lists are cached under the series namespace: they change only when the
// editors add a publisher, which also invalidates the series cards.
type Service struct {
	repo  Repository
	store cache.Store
}

// NewService constructs a new reference [Service]. A nil store disables caching.
func NewService(repo Repository, store cache.Store) *Service {
	return &Service{repo: repo, store: store}
}

// # Publisher Methods

/*
ListPublishers returns every publisher.

Parameters:
  - context: context.Context

Returns:
  - []*Publisher
  - error: Retrieval failures
*/
func (service *Service) ListPublishers(context context.Context) ([]*Publisher, error) {
	key := cache.Key(constants.CachePrefixSeries, "publishers")
	return cache.Remember(context, service.store, key, constants.LicenseRevalidate, service.repo.ListPublishers)
}

/*
GetPublisher retrieves a publisher by identifier.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Publisher
  - error: 404 when unknown
*/
func (service *Service) GetPublisher(context context.Context, id string) (*Publisher, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.NotFound("Publisher")
	}
	return service.repo.GetPublisher(context, id)
}

// # Type Methods

// ListTypes returns every book type.
func (service *Service) ListTypes(context context.Context) ([]*Type, error) {
	key := cache.Key(constants.CachePrefixSeries, "types")
	return cache.Remember(context, service.store, key, constants.LicenseRevalidate, service.repo.ListTypes)
}

// GetType retrieves a book type by identifier.
func (service *Service) GetType(context context.Context, id string) (*Type, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.NotFound("Type")
	}
	return service.repo.GetType(context, id)
}
