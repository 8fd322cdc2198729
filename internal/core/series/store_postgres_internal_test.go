// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestBuildListQuery verifies placeholder numbering and ordering.
*/
func TestBuildListQuery(t *testing.T) {
	sql, args := buildListQuery(Filter{})
	assert.Empty(t, args)
	assert.NotContains(t, sql, "WHERE")
	assert.True(t, strings.HasSuffix(sql, "ORDER BY s.status ASC, s.publisher ASC, s.name ASC"))

	sql, args = buildListQuery(Filter{
		Types:    []string{"manga"},
		Statuses: []Status{StatusPending, StatusFinished},
	})
	assert.Equal(t, []any{[]string{"manga"}, []string{"pending", "finished"}}, args)
	assert.Contains(t, sql, "s.type = ANY($1) AND s.status = ANY($2::status[])")
	assert.NotContains(t, sql, "s.publisher = ANY")
}
