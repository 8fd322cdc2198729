// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"context"
	"strconv"
	"strings"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/cache"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/validate"
	"github.com/taibuivan/mangacal/pkg/slice"
)

// # Service Layer

// Service answers licensing queries for the license pages and the JSON API.
// Results are cached for the license revalidation interval.
type Service struct {
	repo  Repository
	store cache.Store
}

// NewService constructs a new series [Service]. A nil store disables caching.
func NewService(repo Repository, store cache.Store) *Service {
	return &Service{repo: repo, store: store}
}

/*
List returns the series matching filter.

Parameters:
  - ctx: context.Context
  - filter: Filter (statuses must be known values)

Returns:
  - []*Series: never contains a status outside filter.Statuses
  - error: 400 for unknown statuses, or retrieval failures
*/
func (service *Service) List(ctx context.Context, filter Filter) ([]*Series, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}

	list, err := cache.Remember(ctx, service.store, listKey(filter), constants.LicenseRevalidate,
		func(ctx context.Context) ([]*Series, error) {
			return service.repo.List(ctx, filter)
		})
	if err != nil {
		return nil, err
	}

	// The query already filters; re-checking guards against a stale or foreign cache entry.
	return slice.Filter(list, filter.Matches), nil
}

/*
Get returns the detail of one series.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - *Detail
  - error: 404 when missing
*/
func (service *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	if id <= 0 {
		return nil, apperr.NotFound("Series")
	}

	key := cache.Key(constants.CachePrefixSeries, "detail", strconv.FormatInt(id, 10))
	return cache.Remember(ctx, service.store, key, constants.LicenseRevalidate,
		func(ctx context.Context) (*Detail, error) {
			return service.repo.Get(ctx, id)
		})
}

// IDs returns the id and name of every series.
func (service *Service) IDs(ctx context.Context) ([]Ref, error) {
	key := cache.Key(constants.CachePrefixSeries, "ids")
	return cache.Remember(ctx, service.store, key, constants.LicenseRevalidate, service.repo.IDs)
}

// ValidateFilter rejects statuses outside the enum and malformed ids.
func ValidateFilter(filter Filter) error {
	statuses := make([]string, len(filter.Statuses))
	for i, status := range filter.Statuses {
		statuses[i] = string(status)
	}

	v := &validate.Validator{}
	v.EachOneOf("status", statuses, StatusNames()...)
	for _, publisher := range filter.Publishers {
		v.Slug("publisher", publisher)
	}
	for _, bookType := range filter.Types {
		v.Slug("type", bookType)
	}
	return v.Err()
}

// listKey encodes the filter into a cache key.
func listKey(filter Filter) string {
	statuses := make([]string, len(filter.Statuses))
	for i, status := range filter.Statuses {
		statuses[i] = string(status)
	}
	return cache.Key(constants.CachePrefixSeries, "list",
		strings.Join(filter.Publishers, ","),
		strings.Join(filter.Types, ","),
		strings.Join(statuses, ","),
	)
}
