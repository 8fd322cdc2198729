// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package google

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/taibuivan/mangacal/internal/platform/otel"
)

// pageSize is the maxResults hint per events.list page.
const pageSize = 250

// EventsReader lists the expanded events of one public calendar.
type EventsReader interface {
	Events(ctx context.Context, calendarID string, from, to time.Time) ([]*calendar.Event, error)
}

// CalendarReader implements [EventsReader] over calendar/v3.
type CalendarReader struct {
	service *calendar.Service
}

// NewCalendarReader builds a Calendar client authenticated with an API key.
func NewCalendarReader(ctx context.Context, apiKey string, extra ...option.ClientOption) (*CalendarReader, error) {
	options := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
	service, err := calendar.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("google: calendar client: %w", err)
	}
	return &CalendarReader{service: service}, nil
}

/*
Events returns every event of calendarID starting in [from, to).

Recurring events are expanded into single instances and ordered by start
time. All pages are fetched before returning.
*/
func (reader *CalendarReader) Events(ctx context.Context, calendarID string, from, to time.Time) (events []*calendar.Event, err error) {
	ctx, span := otel.Start(ctx, "google.calendar.events", attribute.String("calendar_id", calendarID))
	defer otel.End(span, &err)

	call := reader.service.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(pageSize)

	err = call.Pages(ctx, func(page *calendar.Events) error {
		events = append(events, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("google: list events of %s: %w", calendarID, err)
	}

	span.SetAttributes(attribute.Int("events", len(events)))
	return events, nil
}
