package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/query"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
	"github.com/yigit/docsystem/internal/pkg/dberrors"
)

const courseCodeConstraint = "courses_code_key"

// CourseRepository handles database operations for courses
type CourseRepository struct {
	DB Database
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db Database) *CourseRepository {
	return &CourseRepository{DB: db}
}

func duplicateCourseCode(err error, code string) error {
	if dberrors.IsDuplicateConstraintError(err, courseCodeConstraint) {
		return apperrors.NewValidationError().Add("code", "Course code "+code+" already exists")
	}
	return err
}

// Create inserts a course and returns the stored row
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	b := psql.Insert("courses").
		SetMap(writeColumns(course.Fields())).
		Suffix("RETURNING *")

	rec, err := selectRecord(ctx, r.DB, b, "create course", nil)
	if err != nil {
		return nil, duplicateCourseCode(err, course.Code)
	}
	return models.CourseFromRecord(rec), nil
}

// GetByID returns ErrCourseNotFound when id does not exist
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	b := psql.Select("*").From("courses").Where(squirrel.Eq{"id": id})
	rec, err := selectRecord(ctx, r.DB, b, "get course", apperrors.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}
	return models.CourseFromRecord(rec), nil
}

// Update overwrites the writable columns of course.ID
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	b := psql.Update("courses").
		SetMap(writeColumns(course.Fields())).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": course.ID}).
		Suffix("RETURNING *")

	rec, err := selectRecord(ctx, r.DB, b, "update course", apperrors.ErrCourseNotFound)
	if err != nil {
		return nil, duplicateCourseCode(err, course.Code)
	}
	return models.CourseFromRecord(rec), nil
}

// Delete removes a course. Syllabi referencing it keep existing with their
// course reference cleared by the foreign key (ON DELETE SET NULL).
func (r *CourseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := execStatement(ctx, r.DB, psql.Delete("courses").Where(squirrel.Eq{"id": id}), "delete course")
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListAll returns every course ordered by department then code
func (r *CourseRepository) ListAll(ctx context.Context) ([]*models.Course, error) {
	records, err := selectRecords(ctx, r.DB, query.Courses(query.CourseFilter{}, query.Page{}).Items, "list courses")
	if err != nil {
		return nil, err
	}
	return decodeAll(records, models.CourseFromRecord), nil
}

// Query returns one filtered page of courses
func (r *CourseRepository) Query(ctx context.Context, filter query.CourseFilter, page query.Page) (query.Result[*models.Course], error) {
	return runListing(ctx, r.DB, query.Courses(filter, page), page, "query courses", models.CourseFromRecord)
}

// Departments returns the distinct department names in order
func (r *CourseRepository) Departments(ctx context.Context) ([]string, error) {
	b := psql.Select("DISTINCT department").From("courses").OrderBy("department")
	records, err := selectRecords(ctx, r.DB, b, "list departments")
	if err != nil {
		return nil, err
	}

	departments := make([]string, 0, len(records))
	for _, rec := range records {
		departments = append(departments, rec.String("department"))
	}
	return departments, nil
}

// Stats aggregates syllabi per course. Courses without syllabi report zero.
func (r *CourseRepository) Stats(ctx context.Context) ([]models.CourseStats, error) {
	b := psql.Select(
		"c.id", "c.code", "c.title", "c.department",
		"COUNT(s.id) AS syllabi_count",
		"MIN(s.year) AS first_year",
		"MAX(s.year) AS last_year",
		"COALESCE(array_agg(DISTINCT s.instructor) FILTER (WHERE s.instructor IS NOT NULL), '{}') AS instructors",
	).
		From("courses c").
		LeftJoin("syllabi s ON s.course_id = c.id").
		GroupBy("c.id", "c.code", "c.title", "c.department").
		OrderBy("c.code")

	records, err := selectRecords(ctx, r.DB, b, "course stats")
	if err != nil {
		return nil, err
	}
	return decodeAll(records, models.CourseStatsFromRecord), nil
}
