package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/query"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
	"github.com/yigit/docsystem/internal/pkg/dberrors"
)

// SyllabusRepository handles database operations for syllabi and their
// course reference
type SyllabusRepository struct {
	DB Database
}

// NewSyllabusRepository creates a new SyllabusRepository
func NewSyllabusRepository(db Database) *SyllabusRepository {
	return &SyllabusRepository{DB: db}
}

func missingCourse(err error) error {
	if dberrors.IsForeignKeyViolation(err) {
		return apperrors.ErrCourseNotFound
	}
	return err
}

// Create inserts a syllabus. A CourseID that does not exist yields ErrCourseNotFound.
func (r *SyllabusRepository) Create(ctx context.Context, s *models.Syllabus) (*models.Syllabus, error) {
	b := psql.Insert("syllabi").
		SetMap(writeColumns(s.Fields())).
		Suffix("RETURNING *")

	rec, err := selectRecord(ctx, r.DB, b, "create syllabus", nil)
	if err != nil {
		return nil, missingCourse(err)
	}
	return models.SyllabusFromRecord(rec), nil
}

// GetByID returns the syllabus with its course context
func (r *SyllabusRepository) GetByID(ctx context.Context, id int64) (*models.SyllabusDetails, error) {
	b := query.SyllabusSelect().Where(squirrel.Eq{"s.id": id})
	rec, err := selectRecord(ctx, r.DB, b, "get syllabus", apperrors.ErrSyllabusNotFound)
	if err != nil {
		return nil, err
	}
	return models.SyllabusDetailsFromRecord(rec), nil
}

// Update overwrites the writable columns of s.ID
func (r *SyllabusRepository) Update(ctx context.Context, s *models.Syllabus) (*models.Syllabus, error) {
	b := psql.Update("syllabi").
		SetMap(writeColumns(s.Fields())).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING *")

	rec, err := selectRecord(ctx, r.DB, b, "update syllabus", apperrors.ErrSyllabusNotFound)
	if err != nil {
		return nil, missingCourse(err)
	}
	return models.SyllabusFromRecord(rec), nil
}

// Delete removes a syllabus and returns the legacy file path it carried, if any.
// Junction rows go with it (ON DELETE CASCADE).
func (r *SyllabusRepository) Delete(ctx context.Context, id int64) (models.DeleteResult, error) {
	b := psql.Delete("syllabi").Where(squirrel.Eq{"id": id}).Suffix("RETURNING file_path")

	rec, err := selectRecord(ctx, r.DB, b, "delete syllabus", apperrors.ErrSyllabusNotFound)
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return models.DeleteResult{}, nil
	}
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{Deleted: true, FilePath: rec.StringPtr("filePath")}, nil
}

// ListAll returns every syllabus in academic-term order
func (r *SyllabusRepository) ListAll(ctx context.Context) ([]*models.SyllabusDetails, error) {
	return r.list(ctx, query.SyllabusFilter{})
}

// Unlinked returns the syllabi without a course
func (r *SyllabusRepository) Unlinked(ctx context.Context) ([]*models.SyllabusDetails, error) {
	return r.list(ctx, query.SyllabusFilter{UnlinkedOnly: true})
}

// ByCourse returns the syllabi of one course
func (r *SyllabusRepository) ByCourse(ctx context.Context, courseID int64) ([]*models.SyllabusDetails, error) {
	return r.list(ctx, query.SyllabusFilter{CourseID: &courseID})
}

// Filter returns every syllabus matching filter, unpaginated
func (r *SyllabusRepository) Filter(ctx context.Context, filter query.SyllabusFilter) ([]*models.SyllabusDetails, error) {
	return r.list(ctx, filter)
}

func (r *SyllabusRepository) list(ctx context.Context, filter query.SyllabusFilter) ([]*models.SyllabusDetails, error) {
	records, err := selectRecords(ctx, r.DB, query.Syllabi(filter, query.Page{}).Items, "list syllabi")
	if err != nil {
		return nil, err
	}
	return decodeAll(records, models.SyllabusDetailsFromRecord), nil
}

// Query returns one filtered page of syllabi
func (r *SyllabusRepository) Query(ctx context.Context, filter query.SyllabusFilter, page query.Page) (query.Result[*models.SyllabusDetails], error) {
	return runListing(ctx, r.DB, query.Syllabi(filter, page), page, "query syllabi", models.SyllabusDetailsFromRecord)
}

// Years returns the distinct syllabus years, newest first
func (r *SyllabusRepository) Years(ctx context.Context) ([]int, error) {
	b := psql.Select("DISTINCT year").From("syllabi").OrderBy("year DESC")
	records, err := selectRecords(ctx, r.DB, b, "list syllabus years")
	if err != nil {
		return nil, err
	}

	years := make([]int, 0, len(records))
	for _, rec := range records {
		years = append(years, rec.Int("year"))
	}
	return years, nil
}

// ByDocument returns the syllabi a document is linked to
func (r *SyllabusRepository) ByDocument(ctx context.Context, documentID int64) ([]*models.SyllabusDetails, error) {
	b := query.SyllabusSelect().
		Join("syllabi_documents sd ON sd.syllabus_id = s.id").
		Where(squirrel.Eq{"sd.document_id": documentID}).
		OrderBy(query.SyllabusOrder...)

	records, err := selectRecords(ctx, r.DB, b, "syllabi by document")
	if err != nil {
		return nil, err
	}
	return decodeAll(records, models.SyllabusDetailsFromRecord), nil
}

// AttachCourse sets the course of an unlinked syllabus. It reports false when
// the syllabus already had a course by the time the statement ran.
func (r *SyllabusRepository) AttachCourse(ctx context.Context, syllabusID, courseID int64) (bool, error) {
	b := psql.Update("syllabi").
		Set("course_id", courseID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": syllabusID, "course_id": nil})

	n, err := execStatement(ctx, r.DB, b, "attach course")
	if err != nil {
		return false, missingCourse(err)
	}
	return n > 0, nil
}

// DetachCourse clears the course of a syllabus only if it is courseID
func (r *SyllabusRepository) DetachCourse(ctx context.Context, syllabusID, courseID int64) (bool, error) {
	b := psql.Update("syllabi").
		Set("course_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": syllabusID, "course_id": courseID})

	n, err := execStatement(ctx, r.DB, b, "detach course")
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
