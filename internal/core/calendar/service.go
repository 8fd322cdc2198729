// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package calendar

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/cache"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/ctxutil"
	"github.com/taibuivan/mangacal/internal/platform/google"
)

// Service builds month views from the publisher calendars.
type Service struct {
	events  google.EventsReader
	catalog *Catalog
	store   cache.Store
}

// NewService constructs a new calendar [Service]. A nil store disables caching.
func NewService(events google.EventsReader, catalog *Catalog, store cache.Store) *Service {
	return &Service{events: events, catalog: catalog, store: store}
}

// Catalog returns the publisher calendars known to the service.
func (service *Service) Catalog() *Catalog {
	return service.catalog
}

/*
Month builds the view of one month for the selected publishers.

Description: Every selected calendar is read concurrently. The first failure
cancels the others and fails the whole view, so a page never shows a
partial calendar as if it were complete.

Parameters:
  - ctx: context.Context
  - month: any instant inside the month
  - selected: publisher ids; empty selects all

Returns:
  - *MonthView
  - error: 502 when a calendar cannot be read
*/
func (service *Service) Month(ctx context.Context, month time.Time, selected []string) (*MonthView, error) {
	month = FirstOfMonth(month)
	sources := service.catalog.Select(selected)
	ids := make([]string, len(sources))
	for i, source := range sources {
		ids[i] = source.ID
	}

	key := cache.Key(constants.CachePrefixCalendar, "month", month.Format(constants.MonthLayout), strings.Join(ids, ","))
	return cache.Remember(ctx, service.store, key, constants.CalendarRevalidate,
		func(ctx context.Context) (*MonthView, error) {
			events, err := service.fetch(ctx, month, sources)
			if err != nil {
				return nil, err
			}
			return buildView(month, ids, events), nil
		})
}

// fetch reads the grid range of every source and merges the results.
func (service *Service) fetch(ctx context.Context, month time.Time, sources []Source) ([]*Event, error) {
	from, to := gridBounds(month)
	results := make([][]*Event, len(sources))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, source := range sources {
		group.Go(func() error {
			items, err := service.events.Events(groupCtx, source.CalendarID, from, to)
			if err != nil {
				ctxutil.GetLogger(ctx).ErrorContext(ctx, "calendar_fetch_failed",
					slog.String("publisher", source.ID),
					slog.Any("error", err),
				)
				return apperr.Upstream("Google Calendar", err)
			}
			results[i] = convert(source, items)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := slices.Concat(results...)
	slices.SortStableFunc(merged, func(a, b *Event) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.Title, b.Title))
	})
	return merged, nil
}

// convert maps Google events of one source, skipping cancelled or undated ones.
func convert(source Source, items []*gcal.Event) []*Event {
	events := make([]*Event, 0, len(items))
	for _, item := range items {
		if item == nil || item.Status == "cancelled" {
			continue
		}
		date, ok := eventDate(item.Start)
		if !ok {
			continue
		}
		title := strings.TrimSpace(item.Summary)
		events = append(events, &Event{
			ID:          item.Id,
			Title:       title,
			Date:        date,
			Description: item.Description,
			Publisher:   source.Name,
			Class:       source.Class,
			Color:       source.Color,
			CoverID:     coverID(item.HtmlLink),
			Links:       StoreLinks(title),
		})
	}
	return events
}

// eventDate returns the site-time date of an all-day or timed start.
func eventDate(start *gcal.EventDateTime) (string, bool) {
	if start == nil {
		return "", false
	}
	if start.Date != "" {
		return start.Date, true
	}
	if start.DateTime == "" {
		return "", false
	}
	parsed, err := time.Parse(time.RFC3339, start.DateTime)
	if err != nil {
		return "", false
	}
	return parsed.In(constants.SiteZone).Format(constants.DateLayout), true
}
