// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference serves the shared lookup tables of the licensing database.

Publishers and book types are owned by the editors' tooling. The site reads
them to label cards, color badges and populate filter menus.

# Core Responsibility

  - Publishers: Vietnamese publishing houses and their brand color.
  - Types: Manga, light novel, artbook... and their badge color.
*/
package reference

// # Publisher Domain

// Publisher is a publishing house that acquires licenses and releases volumes.
type Publisher struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// # Type Domain

// Type is the format of a series (manga, light novel, artbook...).
type Type struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
