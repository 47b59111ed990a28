package helpers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		page, size    int
		offset, limit uint64
	}{
		{1, 12, 0, 12},
		{3, 12, 24, 12},
		{0, 0, 0, DefaultPageSize},
		{2, 1000, MaxPageSize, MaxPageSize},
	}

	for _, tt := range tests {
		offset, limit := CalculateOffsetLimit(tt.page, tt.size)
		if offset != tt.offset || limit != tt.limit {
			t.Errorf("CalculateOffsetLimit(%d, %d) = %d, %d; want %d, %d",
				tt.page, tt.size, offset, limit, tt.offset, tt.limit)
		}
	}
}

func TestNewPaginationInfoThirtyRows(t *testing.T) {
	for page := 1; page <= 3; page++ {
		info := NewPaginationInfo(30, page, 12)
		if info.TotalPages != 3 || info.TotalItems != 30 {
			t.Fatalf("page %d: %+v", page, info)
		}
	}

	last := NewPaginationInfo(30, 3, 12)
	if last.HasNext || !last.HasPrev || last.PrevPage != 2 || last.NextPage != 0 {
		t.Errorf("last page flags: %+v", last)
	}

	first := NewPaginationInfo(30, 1, 12)
	if first.HasPrev || !first.HasNext || first.NextPage != 2 {
		t.Errorf("first page flags: %+v", first)
	}
}

func TestCalculateOffsetLimitHugePage(t *testing.T) {
	offset, limit := CalculateOffsetLimit(math.MaxInt, 12)
	if limit != 12 {
		t.Fatalf("limit = %d", limit)
	}
	if offset > math.MaxInt64 || offset%12 != 0 {
		t.Errorf("offset = %d, want a multiple of 12 within int64", offset)
	}

	page, _ := NormalizePage(math.MaxInt, 100)
	if page != math.MaxInt/100 {
		t.Errorf("page = %d, want %d", page, math.MaxInt/100)
	}
}

func TestNewPaginationInfoPastTheEnd(t *testing.T) {
	info := NewPaginationInfo(30, 10, 12)
	if info.CurrentPage != 10 || info.TotalPages != 3 || info.HasNext || !info.HasPrev {
		t.Fatalf("flags: %+v", info)
	}
	if info.PrevPage != 3 {
		t.Errorf("prev = %d, want 3", info.PrevPage)
	}
	if !reflect.DeepEqual(info.Pages, []int{1, 2, 3}) {
		t.Errorf("pages = %v", info.Pages)
	}

	huge := NewPaginationInfo(30, math.MaxInt/2, 12)
	if huge.PrevPage != 3 || !reflect.DeepEqual(huge.Pages, []int{1, 2, 3}) {
		t.Errorf("huge page: %+v", huge)
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		url        string
		page, size int
	}{
		{"/", 1, 20},
		{"/?page=4&size=10", 4, 10},
		{"/?page=-1&size=abc", 1, 20},
		{"/?size=90", 1, 50},
		{"/?size=0", 1, 20},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, tt.url, nil)
		page, size := ParsePaginationParams(c, 20, 50)
		if page != tt.page || size != tt.size {
			t.Errorf("%s: got %d/%d, want %d/%d", tt.url, page, size, tt.page, tt.size)
		}
	}
}

func TestNewPaginationInfoEmpty(t *testing.T) {
	info := NewPaginationInfo(0, 1, 12)
	if info.TotalPages != 1 || info.HasNext || info.HasPrev {
		t.Errorf("empty result: %+v", info)
	}
	if !reflect.DeepEqual(info.Pages, []int{1}) {
		t.Errorf("pages = %v", info.Pages)
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		page, total int
		want        []int
	}{
		{1, 1, []int{1}},
		{1, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{2, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{9, 10, []int{6, 7, 8, 9, 10}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{42, 3, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		if got := PageWindow(tt.page, tt.total); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PageWindow(%d, %d) = %v, want %v", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"cs":      "%cs%",
		"100%":    `%100\%%`,
		"a_b":     `%a\_b%`,
		`back\sl`: `%back\\sl%`,
	}
	for in, want := range tests {
		if got := ContainsPattern(in); got != want {
			t.Errorf("ContainsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNullIfBlank(t *testing.T) {
	blank := "   "
	text := "  notes "
	if NullIfBlank(nil) != nil || NullIfBlank(&blank) != nil {
		t.Error("blank input should be nil")
	}
	if got := NullIfBlank(&text); got == nil || *got != "notes" {
		t.Errorf("NullIfBlank = %v", got)
	}
}
