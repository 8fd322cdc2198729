// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package license reads the legacy licensing spreadsheet that predates the
// licensing database.
package license

import (
	"strings"

	"github.com/taibuivan/mangacal/pkg/slice"
	"github.com/taibuivan/mangacal/pkg/slug"
)

// Tabs of the legacy spreadsheet.
const (
	LicensedRange = "licensed!A2:F1000"
	UnknownRange  = "unknown!A2:F1000"
)

// columns is the width of a sheet row: title, source, anilist, image, publisher, type.
const columns = 6

// typeColors maps a type key to its badge color.
var typeColors = map[string]string{
	"manga":        "#29b6f6",
	"manhwa":       "#29b6f6",
	"manhua":       "#29b6f6",
	"artbook":      "#ef5350",
	"light-novel":  "#ffca28",
	"fanbook":      "#ff7043",
	"encyclopedia": "#66bb6a",
}

// TypeKeys are the filterable types in display order.
var TypeKeys = []string{"manga", "manhwa", "manhua", "light-novel", "artbook", "fanbook", "encyclopedia"}

// Entry is one row of the sheet.
type Entry struct {
	Title     string `json:"title"`
	Source    string `json:"source"`
	Anilist   string `json:"anilist"`
	Image     string `json:"image"`
	Publisher string `json:"publisher"`
	Type      string `json:"type"`
}

// Sheet holds both tabs.
type Sheet struct {
	Licensed []Entry `json:"licensed"`
	Unknown  []Entry `json:"unknown"`
}

// TypeKey returns the slugged lowercase type, e.g. "Light Novel" -> "light-novel".
func (entry Entry) TypeKey() string {
	return slug.From(entry.Type)
}

// PublisherKey returns the lowercase publisher used by filters.
func (entry Entry) PublisherKey() string {
	return strings.ToLower(strings.TrimSpace(entry.Publisher))
}

// TypeColor returns the badge color of the entry type, or "" when unknown.
func (entry Entry) TypeColor() string {
	return typeColors[entry.TypeKey()]
}

// parseRows maps raw rows to entries, padding short rows and skipping untitled ones.
func parseRows(rows [][]string) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, columns)
		for i := 0; i < columns && i < len(row); i++ {
			cells[i] = strings.TrimSpace(row[i])
		}
		if cells[0] == "" {
			continue
		}
		entries = append(entries, Entry{
			Title:     cells[0],
			Source:    cells[1],
			Anilist:   cells[2],
			Image:     cells[3],
			Publisher: cells[4],
			Type:      cells[5],
		})
	}
	return entries
}

// # Filtering

// Filter narrows the licensed tab. An empty set admits everything.
type Filter struct {
	Types      []string
	Publishers []string
}

// Apply returns the entries passing every non-empty set.
// Types and publishers are compared case-insensitively.
func (filter Filter) Apply(entries []Entry) []Entry {
	if len(filter.Types) == 0 && len(filter.Publishers) == 0 {
		return entries
	}

	types := slice.Set(slice.Map(filter.Types, slug.From))
	publishers := slice.Set(slice.Map(filter.Publishers, func(p string) string {
		return strings.ToLower(strings.TrimSpace(p))
	}))

	return slice.Filter(entries, func(entry Entry) bool {
		if len(types) > 0 {
			if _, ok := types[entry.TypeKey()]; !ok {
				return false
			}
		}
		if len(publishers) > 0 {
			if _, ok := publishers[entry.PublisherKey()]; !ok {
				return false
			}
		}
		return true
	})
}

// Publishers returns the distinct publishers of entries in first-seen order.
func Publishers(entries []Entry) []string {
	groups := slice.GroupBy(entries, Entry.PublisherKey)
	names := make([]string, 0, len(groups))
	for _, group := range groups {
		if group.Key == "" {
			continue
		}
		names = append(names, group.Items[0].Publisher)
	}
	return names
}
