// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package cdn builds cover image URLs on the managed image CDN.
//
// Paths are stored already namespaced ("covers/…" for publication covers,
// "raw-covers/…" for license announcements). The CDN resizes on the fly from
// a transformation segment placed before the path.
package cdn

import (
	"fmt"
	"strings"
)

// CardWidths are the srcset candidates of series and release cards.
var CardWidths = []int{250, 400}

// Builder formats transformation URLs for one CDN origin.
type Builder struct {
	base string
}

// New returns a Builder for base, e.g. "https://res.cloudinary.com/glhfvn/image/upload".
func New(base string) Builder {
	return Builder{base: strings.TrimRight(base, "/")}
}

// URL returns path scaled to width with automatic format and quality 90.
func (builder Builder) URL(path string, width int) string {
	return fmt.Sprintf("%s/c_scale,f_auto,q_90,w_%d/%s", builder.base, width, strings.TrimLeft(path, "/"))
}

// Srcset returns a srcset attribute value with one candidate per width.
func (builder Builder) Srcset(path string, widths ...int) string {
	if len(widths) == 0 {
		widths = CardWidths
	}
	candidates := make([]string, len(widths))
	for i, width := range widths {
		candidates[i] = fmt.Sprintf("%s %dw", builder.URL(path, width), width)
	}
	return strings.Join(candidates, ", ")
}

// Fit returns the original image bounded by its own size, used for full-size links.
func (builder Builder) Fit(path string) string {
	return builder.base + "/c_fit/v1/" + strings.TrimLeft(path, "/")
}
