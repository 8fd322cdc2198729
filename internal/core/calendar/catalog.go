// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package calendar

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/mangacal/pkg/slice"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Source is one publisher calendar.
type Source struct {
	ID         string `yaml:"id"          json:"id"`
	Name       string `yaml:"name"        json:"name"`
	Class      string `yaml:"class"       json:"class"`
	Color      string `yaml:"color"       json:"color"`
	CalendarID string `yaml:"calendar_id" json:"calendar_id"`
	ICSURL     string `yaml:"ics_url"     json:"ics_url,omitempty"`
}

// Catalog lists the publisher calendars in display order.
type Catalog struct {
	Publishers []Source `yaml:"publishers"`
}

// LoadCatalog reads the catalog at path, or the embedded default when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calendar: read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	catalog := &Catalog{}
	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("calendar: decode catalog: %w", err)
	}

	if len(catalog.Publishers) == 0 {
		return nil, fmt.Errorf("calendar: catalog has no publishers")
	}

	seen := map[string]struct{}{}
	for i, source := range catalog.Publishers {
		if source.ID == "" || source.CalendarID == "" {
			return nil, fmt.Errorf("calendar: publisher #%d needs id and calendar_id", i+1)
		}
		if _, dup := seen[source.ID]; dup {
			return nil, fmt.Errorf("calendar: duplicate publisher %q", source.ID)
		}
		seen[source.ID] = struct{}{}

		if catalog.Publishers[i].Class == "" {
			catalog.Publishers[i].Class = source.ID
		}
		if catalog.Publishers[i].Name == "" {
			catalog.Publishers[i].Name = source.ID
		}
	}

	return catalog, nil
}

// Find returns the source with the given id.
func (catalog *Catalog) Find(id string) (Source, bool) {
	for _, source := range catalog.Publishers {
		if source.ID == id {
			return source, true
		}
	}
	return Source{}, false
}

// Select returns the sources named by ids in catalog order.
// Unknown ids are ignored. An empty or entirely unknown selection means all.
func (catalog *Catalog) Select(ids []string) []Source {
	if len(ids) == 0 {
		return catalog.Publishers
	}

	wanted := slice.Set(ids)
	selected := slice.Filter(catalog.Publishers, func(source Source) bool {
		_, ok := wanted[source.ID]
		return ok
	})
	if len(selected) == 0 {
		return catalog.Publishers
	}
	return selected
}

// IDs returns every publisher id in catalog order.
func (catalog *Catalog) IDs() []string {
	return slice.Map(catalog.Publishers, func(source Source) string { return source.ID })
}
