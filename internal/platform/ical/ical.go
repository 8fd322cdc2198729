// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ical writes RFC 5545 calendars for subscription feeds.
//
// Only the subset needed by release feeds is produced: all-day or timed
// VEVENTs with summary, description, URL and categories. Lines end with CRLF
// and are folded at 75 octets without splitting UTF-8 sequences.
package ical

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	dateTimeFormat = "20060102T150405Z"
	dateFormat     = "20060102"
	maxLineOctets  = 75
)

// Calendar is a named collection of events.
type Calendar struct {
	ProductID   string
	Name        string
	Description string
	// TimeZone is advertised with X-WR-TIMEZONE for clients that honor it.
	TimeZone string
	Events   []Event
}

// Event is a single VEVENT.
type Event struct {
	UID         string
	Summary     string
	Description string
	URL         string
	Categories  []string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

// Format renders cal. stamp is written as DTSTAMP on every event.
func Format(cal Calendar, stamp time.Time) string {
	var builder strings.Builder

	writeLine(&builder, "BEGIN:VCALENDAR")
	writeLine(&builder, "VERSION:2.0")
	writeLine(&builder, "PRODID:"+cal.ProductID)
	writeLine(&builder, "CALSCALE:GREGORIAN")
	writeLine(&builder, "METHOD:PUBLISH")
	writeLine(&builder, "X-WR-CALNAME:"+escapeText(cal.Name))
	if cal.Description != "" {
		writeLine(&builder, "X-WR-CALDESC:"+escapeText(cal.Description))
	}
	if cal.TimeZone != "" {
		writeLine(&builder, "X-WR-TIMEZONE:"+cal.TimeZone)
	}

	for _, event := range cal.Events {
		formatEvent(&builder, event, stamp)
	}

	writeLine(&builder, "END:VCALENDAR")

	return builder.String()
}

func formatEvent(builder *strings.Builder, event Event, stamp time.Time) {
	writeLine(builder, "BEGIN:VEVENT")
	writeLine(builder, "UID:"+escapeText(event.UID))
	writeLine(builder, "DTSTAMP:"+formatDateTime(stamp))

	if event.AllDay {
		writeLine(builder, "DTSTART;VALUE=DATE:"+event.Start.Format(dateFormat))
		end := event.End
		if end.IsZero() {
			end = event.Start.AddDate(0, 0, 1)
		}
		writeLine(builder, "DTEND;VALUE=DATE:"+end.Format(dateFormat))
	} else {
		writeLine(builder, "DTSTART:"+formatDateTime(event.Start))
		if !event.End.IsZero() {
			writeLine(builder, "DTEND:"+formatDateTime(event.End))
		}
	}

	if event.Summary != "" {
		writeLine(builder, "SUMMARY:"+escapeText(event.Summary))
	}
	if event.Description != "" {
		writeLine(builder, "DESCRIPTION:"+escapeText(event.Description))
	}
	if event.URL != "" {
		writeLine(builder, "URL:"+event.URL)
	}
	if len(event.Categories) > 0 {
		escaped := make([]string, len(event.Categories))
		for i, category := range event.Categories {
			escaped[i] = escapeText(category)
		}
		writeLine(builder, "CATEGORIES:"+strings.Join(escaped, ","))
	}

	writeLine(builder, "END:VEVENT")
}

// writeLine folds content lines longer than 75 octets with CRLF + space.
func writeLine(builder *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		builder.WriteString(line[:cut])
		builder.WriteString("\r\n ")
		line = line[cut:]
		// Continuation lines lose one octet to the leading space.
		limit = maxLineOctets - 1
	}
	builder.WriteString(line)
	builder.WriteString("\r\n")
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(dateTimeFormat)
}

func escapeText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, ";", "\\;")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, "\r\n", "\\n")
	text = strings.ReplaceAll(text, "\n", "\\n")
	return text
}

// ProductID builds a PRODID value for an application name.
func ProductID(app string) string {
	return fmt.Sprintf("-//%s//%s//VI", app, app)
}
