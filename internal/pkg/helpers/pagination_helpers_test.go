package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page default size", 1, 20, 0, 20},
		{"second page", 2, 20, 20, 20},
		{"zero size falls back", 1, 0, 0, DefaultPageSize},
		{"oversized page size falls back", 1, 500, 0, DefaultPageSize},
		{"page below one clamps", 0, 10, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(93, 1, 20)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 20, info.PageSize)
	assert.Equal(t, int64(93), info.TotalItems)

	empty := NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Equal(t, int64(0), empty.TotalItems)

	beyond := NewPaginationInfo(10, 9, 20)
	assert.Equal(t, 1, beyond.CurrentPage)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit values", "page=3&size=50", 3, 50},
		{"invalid page", "page=abc", 1, 20},
		{"negative page", "page=-2", 1, 20},
		{"oversized size", "size=1000", 1, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/courses?"+tt.query, nil)

			page, size := ParsePaginationParams(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}
