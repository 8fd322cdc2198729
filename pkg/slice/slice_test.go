// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangacal/pkg/slice"
)

/*
TestMapFilter verifies the basic helpers and nil handling.
*/
func TestMapFilter(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, slice.Map([]string{"a", "bb", "ccc"}, func(s string) int { return len(s) }))
	assert.Nil(t, slice.Map[string, int](nil, func(s string) int { return 0 }))

	assert.Equal(t, []string{"bb"}, slice.Filter([]string{"a", "bb"}, func(s string) bool { return len(s) > 1 }))
	assert.Nil(t, slice.Filter([]string{"a"}, func(s string) bool { return false }))
}

/*
TestGroupBy verifies first-appearance order and that nothing is lost or duplicated.
*/
func TestGroupBy(t *testing.T) {
	input := []string{"b1", "a1", "b2", "c1", "a2", "b3"}

	groups := slice.GroupBy(input, func(s string) string { return s[:1] })

	keys := slice.Map(groups, func(g slice.Group[string, string]) string { return g.Key })
	assert.Equal(t, []string{"b", "a", "c"}, keys)
	assert.Equal(t, []string{"b1", "b2", "b3"}, groups[0].Items)

	total := 0
	var joined []string
	for _, group := range groups {
		total += len(group.Items)
		joined = append(joined, strings.Join(group.Items, ""))
	}
	assert.Equal(t, len(input), total)
	assert.Equal(t, "b1b2b3a1a2c1", strings.Join(joined, ""))

	assert.Empty(t, slice.GroupBy([]string{}, func(s string) string { return s }))
}

/*
TestSet verifies membership.
*/
func TestSet(t *testing.T) {
	set := slice.Set([]string{"kim", "tre", "kim"})
	assert.Len(t, set, 2)
	_, ok := set["tre"]
	assert.True(t, ok)
}
