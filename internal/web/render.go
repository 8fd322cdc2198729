// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/taibuivan/mangacal/internal/platform/ctxutil"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pageNames are the page bodies; each is parsed on top of layout.html.
var pageNames = []string{"calendar", "license", "series", "sheet", "error"}

// Templates holds one parsed template set per page.
type Templates struct {
	pages map[string]*template.Template
}

// ParseTemplates parses every page against the shared layout.
func ParseTemplates(funcs template.FuncMap) (*Templates, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("web: clone layout: %w", err)
		}
		page, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		pages[name] = page
	}

	return &Templates{pages: pages}, nil
}

// Page returns a component rendering the named page inside the layout.
func (templates *Templates) Page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, writer io.Writer) error {
		page, ok := templates.pages[name]
		if !ok {
			return fmt.Errorf("web: unknown page %q", name)
		}
		return page.ExecuteTemplate(writer, "layout", data)
	})
}

/*
render buffers component and writes it with status.

Description: Rendering into a buffer first means a template failure can still
produce a clean 500 instead of a half-written page with a 200 status.
*/
func render(writer http.ResponseWriter, request *http.Request, status int, component templ.Component) {
	ctx := request.Context()

	var buffer bytes.Buffer
	if err := component.Render(ctx, &buffer); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "page_render_failed",
			slog.String("path", request.URL.Path),
			slog.Any("error", err),
		)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}
