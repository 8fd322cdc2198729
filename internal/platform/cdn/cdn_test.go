// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cdn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangacal/internal/platform/cdn"
)

const base = "https://res.cloudinary.com/glhfvn/image/upload"

/*
TestBuilder verifies transformation URLs.
*/
func TestBuilder(t *testing.T) {
	builder := cdn.New(base + "/")

	assert.Equal(t, base+"/c_scale,f_auto,q_90,w_250/covers/abc.jpg", builder.URL("covers/abc.jpg", 250))
	assert.Equal(t, base+"/c_fit/v1/raw-covers/x.png", builder.Fit("/raw-covers/x.png"))
	assert.Equal(t,
		base+"/c_scale,f_auto,q_90,w_250/covers/a.jpg 250w, "+base+"/c_scale,f_auto,q_90,w_400/covers/a.jpg 400w",
		builder.Srcset("covers/a.jpg"),
	)
	assert.Equal(t, base+"/c_scale,f_auto,q_90,w_100/covers/a.jpg 100w", builder.Srcset("covers/a.jpg", 100))
}
