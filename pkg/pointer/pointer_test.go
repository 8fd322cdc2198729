// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangacal/pkg/pointer"
)

/*
TestPointer verifies creation and nil-safe dereferencing.
*/
func TestPointer(t *testing.T) {
	cover := pointer.To("covers/a.jpg")
	assert.Equal(t, "covers/a.jpg", *cover)
	assert.Equal(t, "covers/a.jpg", pointer.Val(cover))

	var missing *int
	assert.Equal(t, 0, pointer.Val(missing))
}

/*
TestPrefixed verifies folder namespacing of optional file names.
*/
func TestPrefixed(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{"nil", nil, nil},
		{"empty", pointer.To(""), nil},
		{"file", pointer.To("a.jpg"), pointer.To("covers/a.jpg")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pointer.Prefixed("covers/", tt.input))
		})
	}
}
