// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "scopes", "calendar", false},
		{"empty_string", "scopes", "", true},
		{"whitespace_only", "scopes", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Date checks ISO date and month parsing.
*/
func TestValidator_Date(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		layout  string
		isValid bool
	}{
		{"valid_date", "2026-10-17", "2006-01-02", true},
		{"empty_is_optional", "", "2006-01-02", true},
		{"day_out_of_range", "2026-02-30", "2006-01-02", false},
		{"vietnamese_order", "17/10/2026", "2006-01-02", false},
		{"valid_month", "2026-10", "2006-01", true},
		{"month_thirteen", "2026-13", "2006-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Date("start", tt.value, tt.layout)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_EachOneOf reports every value outside the allowed set.
*/
func TestValidator_EachOneOf(t *testing.T) {
	v := &validate.Validator{}
	err := v.EachOneOf("status", []string{"pending", "dropped", "finished", "unknown"},
		"pending", "licensed", "published", "finished").Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 2)
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("publisher", "kim").
		Slug("publisher", "kim").
		MaxLen("publisher", "kim", 32).
		OneOf("order", "asc", "asc", "desc").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("publisher", "").          // Fails
		Slug("publisher", "NXB Kim Đồng").  // Fails
		Custom("end", true, "Before start"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
