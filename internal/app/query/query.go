// Package query composes the filtered, sorted and paginated listings over
// courses, syllabi and documents. Each listing yields an item query and a count
// query built from the same WHERE condition.
package query

import (
	"github.com/Masterminds/squirrel"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/pkg/helpers"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Builder returns the shared Postgres statement builder
func Builder() squirrel.StatementBuilderType {
	return psql
}

// Page is a 1-based page request. The zero value means every row.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps number and size into range
func NewPage(number, size int) Page {
	number, size = helpers.NormalizePage(number, size)
	return Page{Number: number, Size: size}
}

// IsAll reports whether the page is unbounded
func (p Page) IsAll() bool {
	return p.Size <= 0
}

func (p Page) apply(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	if p.IsAll() {
		return b
	}
	offset, limit := helpers.CalculateOffsetLimit(p.Number, p.Size)
	return b.Limit(limit).Offset(offset)
}

// Pagination derives the page block for a result of totalCount rows
func (p Page) Pagination(totalCount int64) dto.PaginationInfo {
	if p.IsAll() {
		size := int(totalCount)
		if size == 0 {
			size = helpers.DefaultPageSize
		}
		return helpers.NewPaginationInfo(totalCount, 1, size)
	}
	return helpers.NewPaginationInfo(totalCount, p.Number, p.Size)
}

// Listing is a pair of statements sharing one filter
type Listing struct {
	Items squirrel.SelectBuilder
	Count squirrel.SelectBuilder
}

// Result is one page of a listing. TotalCount counts every row matching the
// filter, not just this page.
type Result[T any] struct {
	Items      []T
	TotalCount int64
	Pagination dto.PaginationInfo
}

// NewResult assembles a Result for page p
func NewResult[T any](items []T, totalCount int64, p Page) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{
		Items:      items,
		TotalCount: totalCount,
		Pagination: p.Pagination(totalCount),
	}
}

// Response converts the result to its wire shape
func (r Result[T]) Response() dto.PagedResponse[T] {
	return dto.PagedResponse[T]{
		Items:      r.Items,
		TotalCount: r.TotalCount,
		Pagination: r.Pagination,
	}
}

// filtered adds conds to b, leaving b untouched when there are none
func filtered(b squirrel.SelectBuilder, conds squirrel.And) squirrel.SelectBuilder {
	if len(conds) == 0 {
		return b
	}
	return b.Where(conds)
}

func contains(column, term string) squirrel.ILike {
	return squirrel.ILike{column: helpers.ContainsPattern(term)}
}
