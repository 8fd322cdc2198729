// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package calendar builds the monthly release calendar from the public
// Google Calendars of each publisher.
package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/mangacal/internal/platform/constants"
)

// Weekdays are the Monday-first column headers of the month grid.
var Weekdays = []string{"Thứ Hai", "Thứ Ba", "Thứ Tư", "Thứ Năm", "Thứ Sáu", "Thứ Bảy", "Chủ Nhật"}

// StoreLink is a search link on a book store.
type StoreLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Event is one release shown on the calendar.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Date        string      `json:"date"`
	Description string      `json:"description,omitempty"`
	Publisher   string      `json:"publisher"`
	Class       string      `json:"class"`
	Color       string      `json:"color"`
	CoverID     string      `json:"cover_id,omitempty"`
	Links       []StoreLink `json:"links"`
}

// Day is one cell of the grid, or one heading of the list view.
type Day struct {
	Date    string   `json:"date"`
	Number  int      `json:"number"`
	InMonth bool     `json:"in_month"`
	Events  []*Event `json:"events"`
}

// MonthView is everything the calendar page renders for one month.
type MonthView struct {
	Month    string   `json:"month"`
	Title    string   `json:"title"`
	Weekdays []string `json:"weekdays"`
	Weeks    [][]Day  `json:"weeks"`
	// Days holds only in-month days that have events, ascending.
	Days     []Day    `json:"days"`
	Prev     string   `json:"prev"`
	Next     string   `json:"next"`
	Selected []string `json:"selected"`
}

// # Month Arithmetic

// FirstOfMonth returns midnight of the first day of t's month in site time.
func FirstOfMonth(t time.Time) time.Time {
	t = t.In(constants.SiteZone)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, constants.SiteZone)
}

/*
ParseMonth reads a YYYY-MM selector.

Parameters:
  - value: raw query value; empty selects the month of now
  - now: current time

Returns:
  - time.Time: first day of the month in site time
  - error: when value is not YYYY-MM
*/
func ParseMonth(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return FirstOfMonth(now), nil
	}
	parsed, err := time.ParseInLocation(constants.MonthLayout, value, constants.SiteZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: month %q is not YYYY-MM", value)
	}
	return parsed, nil
}

// Title returns the Vietnamese heading of a month, e.g. "Tháng 10/2026".
func Title(month time.Time) string {
	return fmt.Sprintf("Tháng %d/%d", int(month.Month()), month.Year())
}

// gridBounds returns the Monday before (or on) the first of the month and
// the day after the Sunday ending the last week.
func gridBounds(month time.Time) (start, end time.Time) {
	first := FirstOfMonth(month)
	lead := (int(first.Weekday()) + 6) % 7
	start = first.AddDate(0, 0, -lead)

	last := first.AddDate(0, 1, -1)
	trail := (7 - int(last.Weekday())) % 7
	end = last.AddDate(0, 0, trail+1)
	return start, end
}

// buildView lays events out on the grid and the list. events must be sorted.
func buildView(month time.Time, selected []string, events []*Event) *MonthView {
	month = FirstOfMonth(month)
	start, end := gridBounds(month)

	byDate := map[string][]*Event{}
	for _, event := range events {
		byDate[event.Date] = append(byDate[event.Date], event)
	}

	view := &MonthView{
		Month:    month.Format(constants.MonthLayout),
		Title:    Title(month),
		Weekdays: Weekdays,
		Prev:     month.AddDate(0, -1, 0).Format(constants.MonthLayout),
		Next:     month.AddDate(0, 1, 0).Format(constants.MonthLayout),
		Selected: selected,
	}

	var week []Day
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(constants.DateLayout)
		cell := Day{
			Date:    key,
			Number:  day.Day(),
			InMonth: day.Month() == month.Month(),
			Events:  byDate[key],
		}
		week = append(week, cell)
		if len(week) == len(Weekdays) {
			view.Weeks = append(view.Weeks, week)
			week = nil
		}
		if cell.InMonth && len(cell.Events) > 0 {
			view.Days = append(view.Days, cell)
		}
	}

	return view
}

// # Store Links

// StoreLinks returns FAHASA, Tiki and Shopee searches for a title.
func StoreLinks(title string) []StoreLink {
	query := url.QueryEscape(title)
	return []StoreLink{
		{Name: "FAHASA", URL: "https://www.fahasa.com/catalogsearch/result/?q=" + query},
		{Name: "Tiki", URL: "https://tiki.vn/search?q=" + query + "&category=1084"},
		{Name: "Shopee", URL: "https://shopee.vn/search?keyword=" + query},
	}
}

// coverID extracts the event id that names the cover image from an event link.
func coverID(link string) string {
	index := strings.Index(link, "eid=")
	if index < 0 {
		return ""
	}
	id := link[index+len("eid="):]
	if end := strings.IndexAny(id, "&#"); end >= 0 {
		id = id[:end]
	}
	return id
}
