// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package announcement reads the editable banner shown above the calendar.
package announcement

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/cache"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/google"
)

// Cells of the info tab.
const (
	UpdateRange = "info!B2"
	InfoRange   = "info!B3"
)

// Banner holds the two free-text cells maintained by editors.
type Banner struct {
	Update string `json:"update"`
	Info   string `json:"info"`
}

// IsEmpty reports whether there is nothing to show.
func (banner *Banner) IsEmpty() bool {
	return banner.Update == "" && banner.Info == ""
}

// Service reads the banner from the spreadsheet.
type Service struct {
	sheets  google.ValuesReader
	sheetID string
	store   cache.Store
}

// NewService constructs a new announcement [Service].
func NewService(sheets google.ValuesReader, sheetID string, store cache.Store) *Service {
	return &Service{sheets: sheets, sheetID: sheetID, store: store}
}

/*
Banner returns the current banner.

Missing cells yield empty strings. Both cells are read concurrently.

Returns:
  - *Banner
  - error: 502 when the spreadsheet cannot be read
*/
func (service *Service) Banner(ctx context.Context) (*Banner, error) {
	key := cache.Key(constants.CachePrefixSheet, "banner")
	return cache.Remember(ctx, service.store, key, constants.CalendarRevalidate, service.load)
}

func (service *Service) load(ctx context.Context) (*Banner, error) {
	banner := &Banner{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		banner.Update, err = service.cell(groupCtx, UpdateRange)
		return err
	})
	group.Go(func() (err error) {
		banner.Info, err = service.cell(groupCtx, InfoRange)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, apperr.Upstream("Google Sheets", err)
	}

	return banner, nil
}

// cell returns the first value of a single-cell range, or "".
func (service *Service) cell(ctx context.Context, rng string) (string, error) {
	rows, err := service.sheets.Values(ctx, service.sheetID, rng)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return "", nil
	}
	return strings.TrimSpace(rows[0][0]), nil
}
