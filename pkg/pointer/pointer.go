// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer holds generic helpers for the optional columns the database
returns as pointers (covers, editions, descriptions).
*/
package pointer

// To returns a pointer to v. Handy for optional filter fields and fixtures.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Prefixed returns prefix + *p, or nil when p is nil or empty.
//
// Cover file names are stored bare and namespaced by folder on read.
func Prefixed(prefix string, p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return To(prefix + *p)
}
