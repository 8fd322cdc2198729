// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangacal/pkg/slug"
)

/*
TestFrom verifies Vietnamese and Latin inputs.
*/
func TestFrom(t *testing.T) {
	tests := map[string]string{
		"Light Novel":            "light-novel",
		"NXB Kim Đồng":           "nxb-kim-dong",
		"Thái Hà Books":          "thai-ha-books",
		"  Manga / Comic  ":      "manga-comic",
		"IPM":                    "ipm",
		"Tháng 10/2026":          "thang-10-2026",
		"Encyclopedia":           "encyclopedia",
		"---":                    "",
		"Chú Thuật Hồi Chiến 0": "chu-thuat-hoi-chien-0",
	}

	for input, expect := range tests {
		assert.Equal(t, expect, slug.From(input), input)
	}
}
