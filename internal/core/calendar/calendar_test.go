// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package calendar_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/taibuivan/mangacal/internal/core/calendar"
	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/cache"
	"github.com/taibuivan/mangacal/internal/platform/constants"
)

type fakeEvents struct {
	mu     sync.Mutex
	byID   map[string][]*gcal.Event
	failOn string
	calls  []string
	ranges [][2]time.Time
}

func (reader *fakeEvents) Events(_ context.Context, calendarID string, from, to time.Time) ([]*gcal.Event, error) {
	reader.mu.Lock()
	defer reader.mu.Unlock()
	reader.calls = append(reader.calls, calendarID)
	reader.ranges = append(reader.ranges, [2]time.Time{from, to})
	if calendarID == reader.failOn {
		return nil, errors.New("quota exceeded")
	}
	return reader.byID[calendarID], nil
}

const testCatalog = `
publishers:
  - id: kim
    name: NXB Kim Đồng
    color: "#e00024"
    calendar_id: kim@group
  - id: tre
    name: NXB Trẻ
    class: tre
    color: "#00aeef"
    calendar_id: tre@group
`

func allDay(id, date, title string) *gcal.Event {
	return &gcal.Event{
		Id:       id,
		Summary:  title,
		Start:    &gcal.EventDateTime{Date: date},
		HtmlLink: "https://www.google.com/calendar/event?eid=" + id + "Cover",
	}
}

func newService(t *testing.T, reader *fakeEvents, store cache.Store) *calendar.Service {
	t.Helper()
	catalog, err := calendar.ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)
	return calendar.NewService(reader, catalog, store)
}

/*
TestLoadCatalog verifies the embedded default and validation.
*/
func TestLoadCatalog(t *testing.T) {
	catalog, err := calendar.LoadCatalog("")
	require.NoError(t, err)
	assert.Len(t, catalog.Publishers, 10)
	assert.Equal(t, "kim", catalog.IDs()[0])

	kim, ok := catalog.Find("kim")
	require.True(t, ok)
	assert.Equal(t, "NXB Kim Đồng", kim.Name)
	assert.NotEmpty(t, kim.ICSURL)

	_, ok = catalog.Find("nope")
	assert.False(t, ok)

	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "publishers: []"},
		{"missing_calendar", "publishers:\n  - id: kim\n"},
		{"duplicate", "publishers:\n  - {id: kim, calendar_id: a}\n  - {id: kim, calendar_id: b}\n"},
		{"malformed", "publishers: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calendar.ParseCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

/*
TestCatalog_Select verifies ordering and fallbacks of publisher selection.
*/
func TestCatalog_Select(t *testing.T) {
	catalog, err := calendar.ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	ids := func(sources []calendar.Source) []string {
		out := make([]string, len(sources))
		for i, source := range sources {
			out[i] = source.ID
		}
		return out
	}

	assert.Equal(t, []string{"kim", "tre"}, ids(catalog.Select(nil)))
	assert.Equal(t, []string{"kim", "tre"}, ids(catalog.Select([]string{"tre", "kim"})))
	assert.Equal(t, []string{"tre"}, ids(catalog.Select([]string{"tre", "ghost"})))
	assert.Equal(t, []string{"kim", "tre"}, ids(catalog.Select([]string{"ghost"})))

	// Class defaults to the id.
	assert.Equal(t, "kim", catalog.Publishers[0].Class)
}

/*
TestParseMonth covers the month selector.
*/
func TestParseMonth(t *testing.T) {
	now := time.Date(2026, 10, 31, 20, 0, 0, 0, time.UTC)

	month, err := calendar.ParseMonth("", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-11", month.Format(constants.MonthLayout))

	month, err = calendar.ParseMonth("2027-02", now)
	require.NoError(t, err)
	assert.Equal(t, "Tháng 2/2027", calendar.Title(month))

	_, err = calendar.ParseMonth("02/2027", now)
	assert.Error(t, err)
}

/*
TestService_Month verifies grid layout, list view and event mapping.
*/
func TestService_Month(t *testing.T) {
	reader := &fakeEvents{byID: map[string][]*gcal.Event{
		"kim@group": {
			allDay("k1", "2026-10-05", "Doraemon - Tập 12"),
			allDay("k0", "2026-09-29", "Conan - Tập 100"),
			{Id: "gone", Summary: "Cancelled", Status: "cancelled", Start: &gcal.EventDateTime{Date: "2026-10-05"}},
		},
		"tre@group": {
			// 2026-10-04T20:00Z is already October 5th in Vietnam.
			{Id: "t1", Summary: "Blue Period 5", Start: &gcal.EventDateTime{DateTime: "2026-10-04T20:00:00Z"}},
		},
	}}
	service := newService(t, reader, nil)

	view, err := service.Month(context.Background(), time.Date(2026, 10, 17, 0, 0, 0, 0, constants.SiteZone), nil)
	require.NoError(t, err)

	assert.Equal(t, "2026-10", view.Month)
	assert.Equal(t, "Tháng 10/2026", view.Title)
	assert.Equal(t, "2026-09", view.Prev)
	assert.Equal(t, "2026-11", view.Next)
	assert.Equal(t, "Thứ Hai", view.Weekdays[0])
	assert.Equal(t, []string{"kim", "tre"}, view.Selected)

	// October 2026 starts on a Thursday and ends on a Saturday.
	require.Len(t, view.Weeks, 5)
	assert.Equal(t, "2026-09-28", view.Weeks[0][0].Date)
	assert.False(t, view.Weeks[0][0].InMonth)
	assert.Equal(t, "2026-11-01", view.Weeks[4][6].Date)
	for _, week := range view.Weeks {
		assert.Len(t, week, 7)
	}

	// The grid shows the leading September release, the list view does not.
	assert.Len(t, view.Weeks[0][1].Events, 1)
	require.Len(t, view.Days, 1)
	assert.Equal(t, "2026-10-05", view.Days[0].Date)
	require.Len(t, view.Days[0].Events, 2)
	assert.Equal(t, "Blue Period 5", view.Days[0].Events[0].Title)
	assert.Equal(t, "tre", view.Days[0].Events[0].Class)

	doraemon := view.Days[0].Events[1]
	assert.Equal(t, "k1Cover", doraemon.CoverID)
	assert.Equal(t, "NXB Kim Đồng", doraemon.Publisher)
	require.Len(t, doraemon.Links, 3)
	assert.Equal(t, "https://tiki.vn/search?q=Doraemon+-+T%E1%BA%ADp+12&category=1084", doraemon.Links[1].URL)

	// Both calendars were read over the full grid range.
	require.Len(t, reader.ranges, 2)
	assert.Equal(t, "2026-09-28", reader.ranges[0][0].Format(constants.DateLayout))
	assert.Equal(t, "2026-11-02", reader.ranges[0][1].Format(constants.DateLayout))
}

/*
TestService_MonthFailure verifies that one failing calendar fails the view.
*/
func TestService_MonthFailure(t *testing.T) {
	reader := &fakeEvents{failOn: "tre@group"}
	service := newService(t, reader, cache.NewMemoryStore())

	_, err := service.Month(context.Background(), time.Date(2026, 10, 1, 0, 0, 0, 0, constants.SiteZone), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperr.Status(err))
}

/*
TestService_MonthCached verifies caching per month and selection.
*/
func TestService_MonthCached(t *testing.T) {
	reader := &fakeEvents{}
	service := newService(t, reader, cache.NewMemoryStore())
	ctx := context.Background()
	october := time.Date(2026, 10, 1, 0, 0, 0, 0, constants.SiteZone)

	for range 2 {
		_, err := service.Month(ctx, october, []string{"kim"})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"kim@group"}, reader.calls)

	_, err := service.Month(ctx, october, nil)
	require.NoError(t, err)
	assert.Len(t, reader.calls, 3)
}
