// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"html/template"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/taibuivan/mangacal/internal/core/series"
	"github.com/taibuivan/mangacal/internal/platform/cdn"
	"github.com/taibuivan/mangacal/internal/platform/constants"
)

// displayDate is the Vietnamese day-first layout.
const displayDate = "02/01/2006"

var printer = message.NewPrinter(language.Vietnamese)

// VND formats a price in dong, e.g. 25000 -> "25.000 ₫".
func VND(price int) string {
	return printer.Sprintf("%d ₫", price)
}

// DisplayDate turns an ISO date into dd/MM/yyyy. Unparseable input is returned unchanged.
func DisplayDate(iso string) string {
	parsed, err := time.Parse(constants.DateLayout, iso)
	if err != nil {
		return iso
	}
	return parsed.Format(displayDate)
}

// funcMap exposes the formatting helpers to page templates.
func funcMap(images cdn.Builder, now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"vnd":  VND,
		"date": DisplayDate,
		"time": func(t time.Time) string {
			return t.In(constants.SiteZone).Format(displayDate)
		},
		"unix": func(t *series.UnixTime) string {
			if t == nil {
				return ""
			}
			return t.In(constants.SiteZone).Format(displayDate)
		},
		"image":  func(path string) string { return images.URL(path, cdn.CardWidths[0]) },
		"srcset": func(path string) template.Srcset { return template.Srcset(images.Srcset(path)) },
		"fit":    images.Fit,
		"has":    func(set []string, value string) bool { return slices.Contains(set, value) },
		"lower":  strings.ToLower,
		"past": func(iso string) bool {
			parsed, err := time.ParseInLocation(constants.DateLayout, iso, constants.SiteZone)
			return err == nil && parsed.Before(now())
		},
	}
}
