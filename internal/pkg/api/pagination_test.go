package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPageUrl(t *testing.T) {
	t.Parallel()
	cases := []struct {
		comment    string
		linkHeader string
		expected   string
	}{
		{
			"empty header",
			``,
			``,
		},
		{
			"no next page",
			`<https://canvas.example.com/api/v1/courses/1/files?page=1&per_page=100>; rel="first"`,
			``,
		},
		{
			"next page only",
			`<https://canvas.example.com/api/v1/courses/1/files?page=2&per_page=100>; rel="next"`,
			`https://canvas.example.com/api/v1/courses/1/files?page=2&per_page=100`,
		},
		{
			"all relations",
			`<https://canvas.example.com/api/v1/courses/1/files?page=1>; rel="current",` +
				`<https://canvas.example.com/api/v1/courses/1/files?page=2>; rel="next",` +
				`<https://canvas.example.com/api/v1/courses/1/files?page=1>; rel="first",` +
				`<https://canvas.example.com/api/v1/courses/1/files?page=9>; rel="last"`,
			`https://canvas.example.com/api/v1/courses/1/files?page=2`,
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, nextPageUrl(c.linkHeader), c.comment)
	}
}
