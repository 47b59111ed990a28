package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/docsystem/internal/app/models"
)

// SemesterRankSQL ranks s.semester the same way models.Semester.Rank does
var SemesterRankSQL = semesterRankSQL()

func semesterRankSQL() string {
	var b strings.Builder
	b.WriteString("CASE s.semester")
	for _, s := range models.Semesters {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", s, s.Rank())
	}
	fmt.Fprintf(&b, " ELSE %d END", models.UnknownSemesterRank)
	return b.String()
}

// SyllabusOrder is the academic-term order: newest year first, later terms
// first within a year, then course code.
var SyllabusOrder = []string{
	"s.year DESC",
	SemesterRankSQL + " DESC",
	"c.code ASC NULLS LAST",
	"s.id ASC",
}

// SyllabusColumns selects a syllabus row with its course context
var SyllabusColumns = []string{
	"s.*",
	"c.code AS course_code",
	"c.title AS course_title",
	"c.department AS course_department",
}

// SyllabusFilter narrows the syllabus listing. Semester and Year together
// select one exact term; Semester alone and Instructor are substring matches.
type SyllabusFilter struct {
	CourseID     *int64
	Semester     string
	Year         *int
	Instructor   string
	UnlinkedOnly bool
}

func (f SyllabusFilter) where() squirrel.And {
	conds := squirrel.And{}
	if f.UnlinkedOnly {
		conds = append(conds, squirrel.Eq{"s.course_id": nil})
	} else if f.CourseID != nil {
		conds = append(conds, squirrel.Eq{"s.course_id": *f.CourseID})
	}

	semester := strings.TrimSpace(f.Semester)
	switch {
	case semester != "" && f.Year != nil:
		conds = append(conds, squirrel.Eq{"s.semester": semester, "s.year": *f.Year})
	case semester != "":
		conds = append(conds, contains("s.semester", semester))
	case f.Year != nil:
		conds = append(conds, squirrel.Eq{"s.year": *f.Year})
	}

	if instructor := strings.TrimSpace(f.Instructor); instructor != "" {
		conds = append(conds, contains("s.instructor", instructor))
	}
	return conds
}

// SyllabusSelect is the joined base query without filters
func SyllabusSelect() squirrel.SelectBuilder {
	return psql.Select(SyllabusColumns...).
		From("syllabi s").
		LeftJoin("courses c ON c.id = s.course_id")
}

// Syllabi builds the syllabus listing in academic-term order
func Syllabi(f SyllabusFilter, p Page) Listing {
	where := f.where()
	items := filtered(SyllabusSelect(), where).OrderBy(SyllabusOrder...)

	return Listing{
		Items: p.apply(items),
		Count: filtered(psql.Select("COUNT(*)").From("syllabi s"), where),
	}
}

// SortSyllabi orders syllabi in place by the same rule as SyllabusOrder
func SortSyllabi(items []*models.SyllabusDetails) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if ra, rb := a.Semester.Rank(), b.Semester.Rank(); ra != rb {
			return ra > rb
		}
		ca, cb := a.CourseCode(), b.CourseCode()
		if ca != cb {
			// unlinked syllabi sort last, like NULLS LAST
			if ca == "" || cb == "" {
				return cb == ""
			}
			return ca < cb
		}
		return a.ID < b.ID
	})
}

// GroupByCourse places every syllabus under its course, sorts each group by
// academic term and the groups by course code. Courses without any syllabus
// are dropped, as are unlinked syllabi.
func GroupByCourse(courses []*models.Course, syllabi []*models.SyllabusDetails) []models.CourseGroup {
	byCourse := make(map[int64][]*models.SyllabusDetails, len(courses))
	for _, s := range syllabi {
		if s.CourseID == nil {
			continue
		}
		byCourse[*s.CourseID] = append(byCourse[*s.CourseID], s)
	}

	groups := make([]models.CourseGroup, 0, len(courses))
	for _, c := range courses {
		items := byCourse[c.ID]
		if len(items) == 0 {
			continue
		}
		SortSyllabi(items)
		groups = append(groups, models.CourseGroup{
			Course: models.CourseSummary{
				ID:         c.ID,
				Code:       c.Code,
				Title:      c.Title,
				Department: c.Department,
			},
			Syllabi: items,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Course.Code < groups[j].Course.Code
	})
	return groups
}
