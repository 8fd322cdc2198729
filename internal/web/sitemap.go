// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"encoding/xml"
	"net/http"
	"strconv"

	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/respond"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// staticPages are listed before the series details.
var staticPages = []sitemapURL{
	{Loc: "/", ChangeFreq: "daily", Priority: "1.0"},
	{Loc: "/license", ChangeFreq: "daily", Priority: "0.8"},
	{Loc: "/license/sheet", ChangeFreq: "weekly", Priority: "0.3"},
}

// GET /sitemap.xml.
func (handler *Handler) sitemap(writer http.ResponseWriter, request *http.Request) {
	refs, err := handler.services.Series.IDs(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	set := urlSet{XMLNS: sitemapNamespace, URLs: make([]sitemapURL, 0, len(staticPages)+len(refs))}
	for _, page := range staticPages {
		page.Loc = handler.siteURL + page.Loc
		set.URLs = append(set.URLs, page)
	}
	for _, ref := range refs {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        handler.siteURL + "/license/" + strconv.FormatInt(ref.ID, 10),
			ChangeFreq: "weekly",
			Priority:   "0.5",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	revalidateAfter(writer, constants.LicenseRevalidate)
	writer.Header().Set("Content-Type", "application/xml; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write([]byte(xml.Header))
	_, _ = writer.Write(body)
}
