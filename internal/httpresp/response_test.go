package httpresp

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 41, 2, 20)

	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, int64(41), p.Total)
	assert.Equal(t, []int{1, 2}, p.Items)

	empty := NewPage[string](nil, 0, 1, 20)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.Pages)
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query string
		page  int
		size  int
	}{
		{"", 1, DefaultPageSize},
		{"?page=3&size=10", 3, 10},
		{"?page=-1&size=0", 1, DefaultPageSize},
		{"?size=1000", 1, MaxPageSize},
		{"?page=abc", 1, DefaultPageSize},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/x"+tc.query, nil)

		p := ParsePagination(c)
		assert.Equal(t, tc.page, p.Page, tc.query)
		assert.Equal(t, tc.size, p.Size, tc.query)
	}

	assert.Equal(t, 20, Pagination{Page: 3, Size: 10}.Offset())
}
