// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package license

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/cache"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/google"
)

// Service reads the legacy sheet.
type Service struct {
	sheets  google.ValuesReader
	sheetID string
	store   cache.Store
}

// NewService constructs a new license [Service].
func NewService(sheets google.ValuesReader, sheetID string, store cache.Store) *Service {
	return &Service{sheets: sheets, sheetID: sheetID, store: store}
}

/*
List returns both tabs of the sheet.

Returns:
  - *Sheet
  - error: 502 when the spreadsheet cannot be read
*/
func (service *Service) List(ctx context.Context) (*Sheet, error) {
	key := cache.Key(constants.CachePrefixLicense, "sheet")
	return cache.Remember(ctx, service.store, key, constants.LicenseRevalidate, service.load)
}

func (service *Service) load(ctx context.Context) (*Sheet, error) {
	var licensed, unknown [][]string

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		licensed, err = service.sheets.Values(groupCtx, service.sheetID, LicensedRange)
		return err
	})
	group.Go(func() (err error) {
		unknown, err = service.sheets.Values(groupCtx, service.sheetID, UnknownRange)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, apperr.Upstream("Google Sheets", err)
	}

	return &Sheet{Licensed: parseRows(licensed), Unknown: parseRows(unknown)}, nil
}
