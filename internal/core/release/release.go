// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package release serves dated publications: the volumes publishers put on sale.

# Core Responsibility

  - Entries: publications inside a date range, optionally narrowed by
    publisher and digital flag.
  - Groups: the same entries bucketed by release date for the list view.
  - Feed: an ICS subscription of one publisher's upcoming releases.

Publications are written by the editors' tooling; this package only reads.
*/
package release

import (
	"time"

	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/pkg/slice"
)

// # Publication Domain

// PublisherRef is the embedded publisher of a publication.
type PublisherRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Publication is one dated release of a volume.
type Publication struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Date        string       `json:"date"`
	Publisher   PublisherRef `json:"publisher"`
	Price       int          `json:"price"`
	Description *string      `json:"description"`
	Edition     *string      `json:"edition"`
	Digital     bool         `json:"digital"`
	SeriesID    *int64       `json:"serie"`
	Volume      *int         `json:"volume"`

	// ImageURL is the CDN path of the first cover ("covers/{file}"), or nil.
	ImageURL *string `json:"image_url"`
}

// Day parses Date in the site zone. A malformed date yields the zero time.
func (publication Publication) Day() time.Time {
	day, err := time.ParseInLocation(constants.DateLayout, publication.Date, constants.SiteZone)
	if err != nil {
		return time.Time{}
	}
	return day
}

// Released reports whether the publication is already on sale at now.
func (publication Publication) Released(now time.Time) bool {
	day := publication.Day()
	return !day.IsZero() && day.Before(now)
}

// # Query Domain

// Range is an inclusive window of release dates.
type Range struct {
	Start time.Time
	End   time.Time
}

// MonthOf returns the calendar month containing t, in the site zone.
func MonthOf(t time.Time) Range {
	local := t.In(constants.SiteZone)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, constants.SiteZone)
	return Range{Start: start, End: start.AddDate(0, 1, -1)}
}

// Filter narrows a range query. Zero values mean "no restriction".
type Filter struct {
	Publishers []string
	Digital    *bool
}

// Query is the full set of parameters of an entries lookup.
type Query struct {
	Range     Range
	Filter    Filter
	Ascending bool
}

// DateGroup is the list of publications released on Date.
type DateGroup struct {
	Date    string         `json:"date"`
	Entries []*Publication `json:"entries"`
}

// GroupByDate buckets entries by release date.
//
// Groups follow the order in which each date first appears, so a date-sorted
// input yields date-sorted groups. Every entry appears in exactly one group.
func GroupByDate(entries []*Publication) []DateGroup {
	groups := slice.GroupBy(entries, func(p *Publication) string { return p.Date })
	return slice.Map(groups, func(group slice.Group[string, *Publication]) DateGroup {
		return DateGroup{Date: group.Key, Entries: group.Items}
	})
}
