package query

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/docsystem/internal/app/models"
)

// DocumentSort is an allow-listed document ordering
type DocumentSort string

const (
	SortByTitle          DocumentSort = "title"
	SortByCreatedAt      DocumentSort = "createdAt"
	SortByPublishingYear DocumentSort = "publishingYear"
	SortByDocumentType   DocumentSort = "documentType"

	DefaultDocumentSort = SortByTitle
)

var documentSorts = map[DocumentSort][]string{
	SortByTitle:          {"title ASC"},
	SortByCreatedAt:      {"created_at DESC"},
	SortByPublishingYear: {"publishing_year DESC NULLS LAST"},
	SortByDocumentType:   {"document_type ASC"},
}

// ParseDocumentSort maps a request value onto the allow-list. Unknown values
// fall back to title order.
func ParseDocumentSort(raw string) DocumentSort {
	s := DocumentSort(strings.TrimSpace(raw))
	if _, ok := documentSorts[s]; ok {
		return s
	}
	return DefaultDocumentSort
}

// OrderBy returns the ORDER BY terms, with id as the final tiebreak so pages
// never overlap.
func (s DocumentSort) OrderBy() []string {
	terms, ok := documentSorts[s]
	if !ok {
		terms = documentSorts[DefaultDocumentSort]
	}
	return append(append([]string{}, terms...), "id ASC")
}

// DocumentFilter narrows the document listing. DocumentType must already be
// a recognized type; the empty value means any type.
type DocumentFilter struct {
	Search       string
	DocumentType models.DocumentType
}

func (f DocumentFilter) where() squirrel.And {
	conds := squirrel.And{}
	if s := strings.TrimSpace(f.Search); s != "" {
		conds = append(conds, squirrel.Or{
			contains("title", s),
			contains("description", s),
		})
	}
	if f.DocumentType != "" {
		conds = append(conds, squirrel.Eq{"document_type": string(f.DocumentType)})
	}
	return conds
}

// Documents builds the document listing
func Documents(f DocumentFilter, s DocumentSort, p Page) Listing {
	where := f.where()
	items := filtered(psql.Select("*").From("documents"), where).
		OrderBy(s.OrderBy()...)

	return Listing{
		Items: p.apply(items),
		Count: filtered(psql.Select("COUNT(*)").From("documents"), where),
	}
}
