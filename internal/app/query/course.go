package query

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// CourseFilter narrows the course listing. Search matches code, title or
// description case-insensitively; Department is exact.
type CourseFilter struct {
	Search     string
	Department string
}

func (f CourseFilter) where() squirrel.And {
	conds := squirrel.And{}
	if s := strings.TrimSpace(f.Search); s != "" {
		conds = append(conds, squirrel.Or{
			contains("code", s),
			contains("title", s),
			contains("description", s),
		})
	}
	if d := strings.TrimSpace(f.Department); d != "" {
		conds = append(conds, squirrel.Eq{"department": d})
	}
	return conds
}

// Courses builds the course listing ordered by department then code
func Courses(f CourseFilter, p Page) Listing {
	where := f.where()
	items := filtered(psql.Select("*").From("courses"), where).
		OrderBy("department ASC", "code ASC", "id ASC")

	return Listing{
		Items: p.apply(items),
		Count: filtered(psql.Select("COUNT(*)").From("courses"), where),
	}
}
