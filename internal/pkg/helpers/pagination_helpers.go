package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/docsystem/internal/app/models/dto"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
	DefaultPage     = 1

	// PageWindowSize is the number of page links shown around the current page
	PageWindowSize = 5
)

// NormalizePage clamps a 1-based page number and page size into range. The
// page is capped so that its offset still fits in an int.
func NormalizePage(page, size int) (int, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	if maxPage := math.MaxInt / size; page > maxPage {
		page = maxPage
	}
	return page, size
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, size int) (offset uint64, limit uint64) {
	page, size = NormalizePage(page, size)
	return uint64((page - 1) * size), uint64(size)
}

// TotalPages returns ceil(totalItems/size), never less than 1.
func TotalPages(totalItems int64, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := int((totalItems + int64(size) - 1) / int64(size))
	if pages < 1 {
		return 1
	}
	return pages
}

// PageWindow returns up to PageWindowSize page numbers around page, clamped
// to [1, totalPages].
func PageWindow(page, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(page, totalPages)
	start := max(1, page-2)
	end := min(totalPages, start+PageWindowSize-1)
	start = max(1, end-PageWindowSize+1)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	page, size = NormalizePage(page, size)
	totalPages := TotalPages(totalItems, size)

	info := dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
		Pages:       PageWindow(page, totalPages),
	}
	if info.HasPrev {
		// past the end, prev points at the last real page
		info.PrevPage = min(page-1, totalPages)
	}
	if info.HasNext {
		info.NextPage = page + 1
	}
	return info
}

// ParsePaginationParams extracts pagination parameters from the query string.
// A missing or bad size falls back to defaultSize; sizes above maxSize are cut.
func ParsePaginationParams(c *gin.Context, defaultSize, maxSize int) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = DefaultPage
	}

	size, err = strconv.Atoi(c.Query("size"))
	if err != nil || size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}

	return NormalizePage(page, size)
}
