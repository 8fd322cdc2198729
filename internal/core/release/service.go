// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/mangacal/internal/core/reference"
	"github.com/taibuivan/mangacal/internal/platform/cache"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/ical"
	"github.com/taibuivan/mangacal/pkg/pointer"
)

// Feed window around "now": one month of history, three months ahead.
const (
	feedMonthsBack  = 1
	feedMonthsAhead = 3
)

// PublisherLookup resolves the publisher a feed is named after.
type PublisherLookup interface {
	GetPublisher(context context.Context, id string) (*reference.Publisher, error)
}

// # Service Layer

// Service answers release queries for the calendar page, the JSON API and
// the ICS feeds.
type Service struct {
	repo       Repository
	publishers PublisherLookup
	store      cache.Store
	siteURL    string
}

// NewService constructs a new release [Service].
//
// siteURL is the canonical origin used in feed UIDs and links.
func NewService(repo Repository, publishers PublisherLookup, store cache.Store, siteURL string) *Service {
	return &Service{repo: repo, publishers: publishers, store: store, siteURL: strings.TrimRight(siteURL, "/")}
}

/*
Entries returns publications matching query.

Parameters:
  - context: context.Context
  - query: Query (a zero Range means the current month)

Returns:
  - []*Publication
  - error: Database retrieval failures
*/
func (service *Service) Entries(ctx context.Context, query Query) ([]*Publication, error) {
	if query.Range.Start.IsZero() && query.Range.End.IsZero() {
		query.Range = MonthOf(time.Now())
	}

	return cache.Remember(ctx, service.store, entriesKey(query), constants.CalendarRevalidate,
		func(ctx context.Context) ([]*Publication, error) {
			return service.repo.ListEntries(ctx, query)
		})
}

/*
EntriesByGroup returns the entries of query bucketed by release date.

Returns:
  - []DateGroup: groups in order of first appearance
  - error: Database retrieval failures
*/
func (service *Service) EntriesByGroup(context context.Context, query Query) ([]DateGroup, error) {
	entries, err := service.Entries(context, query)
	if err != nil {
		return nil, err
	}
	return GroupByDate(entries), nil
}

/*
Feed renders the ICS subscription of one publisher.

Description: The window spans from the first day of last month to the last
day of the third month ahead. Every release becomes an all-day event.

Parameters:
  - context: context.Context
  - publisherID: string
  - now: time.Time (DTSTAMP and window anchor)

Returns:
  - string: text/calendar body
  - *reference.Publisher: the feed's publisher (used for the file name)
  - error: 404 for unknown publishers, or retrieval failures
*/
func (service *Service) Feed(context context.Context, publisherID string, now time.Time) (string, *reference.Publisher, error) {
	publisher, err := service.publishers.GetPublisher(context, publisherID)
	if err != nil {
		return "", nil, err
	}

	current := MonthOf(now)
	window := Range{
		Start: current.Start.AddDate(0, -feedMonthsBack, 0),
		End:   current.Start.AddDate(0, feedMonthsAhead+1, -1),
	}

	entries, err := service.Entries(context, Query{
		Range:     window,
		Filter:    Filter{Publishers: []string{publisher.ID}},
		Ascending: true,
	})
	if err != nil {
		return "", nil, err
	}

	host := strings.TrimPrefix(strings.TrimPrefix(service.siteURL, "https://"), "http://")
	events := make([]ical.Event, 0, len(entries))
	for _, entry := range entries {
		day := entry.Day()
		if day.IsZero() {
			continue
		}
		events = append(events, ical.Event{
			UID:         fmt.Sprintf("%s@%s", entry.ID, host),
			Summary:     summary(entry),
			Description: pointer.Val(entry.Description),
			URL:         fmt.Sprintf("%s/?month=%s", service.siteURL, day.Format(constants.MonthLayout)),
			Start:       day,
			AllDay:      true,
			Categories:  []string{publisher.Name},
		})
	}

	body := ical.Format(ical.Calendar{
		ProductID:   ical.ProductID(constants.AppName),
		Name:        "Lịch phát hành " + publisher.Name,
		Description: "Lịch phát hành manga và light novel của " + publisher.Name,
		TimeZone:    "Asia/Ho_Chi_Minh",
		Events:      events,
	}, now)

	return body, publisher, nil
}

// summary is the event title: name, then edition in brackets when present.
func summary(entry *Publication) string {
	if entry.Edition != nil && *entry.Edition != "" {
		return fmt.Sprintf("%s (%s)", entry.Name, *entry.Edition)
	}
	return entry.Name
}

// entriesKey encodes every query parameter so two different filters never share a slot.
func entriesKey(query Query) string {
	digital := "any"
	if query.Filter.Digital != nil {
		digital = strconv.FormatBool(*query.Filter.Digital)
	}
	return cache.Key(constants.CachePrefixSeries, "entries",
		query.Range.Start.Format(constants.DateLayout),
		query.Range.End.Format(constants.DateLayout),
		strings.Join(query.Filter.Publishers, ","),
		digital,
		strconv.FormatBool(query.Ascending),
	)
}
