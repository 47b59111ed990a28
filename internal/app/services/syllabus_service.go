package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/app/query"
	"github.com/yigit/docsystem/internal/pkg/cache"
	"github.com/yigit/docsystem/internal/pkg/filestorage"
	"github.com/yigit/docsystem/internal/pkg/logger"
	"github.com/yigit/docsystem/internal/pkg/validation"
)

const yearsCacheKey = "syllabi:years"

// SyllabusService defines the interface for syllabus operations
type SyllabusService interface {
	CreateSyllabus(ctx context.Context, in *dto.SyllabusInput) (*models.SyllabusDetails, error)
	GetSyllabus(ctx context.Context, id int64) (*models.SyllabusDetails, error)
	UpdateSyllabus(ctx context.Context, id int64, in *dto.SyllabusInput) (*models.SyllabusDetails, error)
	DeleteSyllabus(ctx context.Context, id int64) (models.DeleteResult, error)
	ListAllSyllabi(ctx context.Context) ([]*models.SyllabusDetails, error)
	QuerySyllabi(ctx context.Context, q dto.SyllabusListQuery, page query.Page) (query.Result[*models.SyllabusDetails], error)
	UnlinkedSyllabi(ctx context.Context) ([]*models.SyllabusDetails, error)
	Years(ctx context.Context) ([]int, error)
	GroupSyllabiByCourse(ctx context.Context, q dto.SyllabusListQuery) ([]models.CourseGroup, error)
	SyllabiForDocument(ctx context.Context, documentID int64) ([]*models.SyllabusDetails, error)
	SyllabusDocuments(ctx context.Context, syllabusID int64) ([]*models.Document, error)
	AvailableDocuments(ctx context.Context, syllabusID int64) ([]*models.Document, error)
}

// syllabusServiceImpl implements SyllabusService
type syllabusServiceImpl struct {
	syllabi   SyllabusStore
	courses   CourseStore
	documents DocumentStore
	files     filestorage.FileRemover
	cache     cache.Cache
	cacheTTL  time.Duration
}

// NewSyllabusService creates a new SyllabusService
func NewSyllabusService(
	syllabi SyllabusStore,
	courses CourseStore,
	documents DocumentStore,
	files filestorage.FileRemover,
	c cache.Cache,
	cacheTTL time.Duration,
) SyllabusService {
	if files == nil {
		files = filestorage.NopRemover{}
	}
	if c == nil {
		c = cache.NopCache{}
	}
	return &syllabusServiceImpl{
		syllabi:   syllabi,
		courses:   courses,
		documents: documents,
		files:     files,
		cache:     c,
		cacheTTL:  cacheTTL,
	}
}

func syllabusFromInput(in *dto.SyllabusInput) (*models.Syllabus, error) {
	s := &models.Syllabus{
		Semester:           models.Semester(in.Semester),
		Year:               *in.Year,
		Instructor:         in.Instructor,
		CourseID:           in.CourseID,
		URLLink:            in.URLLink,
		WeeklyScheduleText: in.WeeklySchedule,
	}
	if in.LearningObjectives != nil {
		raw, err := json.Marshal(in.LearningObjectives)
		if err != nil {
			return nil, err
		}
		text := string(raw)
		s.LearningObjectivesText = &text
	}
	return s, nil
}

func syllabusFilter(q dto.SyllabusListQuery) query.SyllabusFilter {
	return query.SyllabusFilter{
		CourseID:     q.CourseID,
		Semester:     q.Semester,
		Year:         q.Year,
		Instructor:   q.Instructor,
		UnlinkedOnly: q.Unlinked,
	}
}

func (s *syllabusServiceImpl) invalidateYears(ctx context.Context) {
	if err := s.cache.Delete(ctx, yearsCacheKey); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate years cache")
	}
}

// CreateSyllabus validates and stores a syllabus linked to an existing course
func (s *syllabusServiceImpl) CreateSyllabus(ctx context.Context, in *dto.SyllabusInput) (*models.SyllabusDetails, error) {
	if err := validation.ValidateSyllabus(in); err != nil {
		return nil, err
	}
	syllabus, err := syllabusFromInput(in)
	if err != nil {
		return nil, err
	}

	created, err := s.syllabi.Create(ctx, syllabus)
	if err != nil {
		return nil, err
	}
	s.invalidateYears(ctx)

	logger.Info().Int64("syllabus_id", created.ID).Msg("Syllabus created")
	return s.GetSyllabus(ctx, created.ID)
}

// GetSyllabus returns a syllabus with course context and parsed content
func (s *syllabusServiceImpl) GetSyllabus(ctx context.Context, id int64) (*models.SyllabusDetails, error) {
	details, err := s.syllabi.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return details.WithParsedContent(), nil
}

// UpdateSyllabus validates and overwrites a syllabus
func (s *syllabusServiceImpl) UpdateSyllabus(ctx context.Context, id int64, in *dto.SyllabusInput) (*models.SyllabusDetails, error) {
	if err := validation.ValidateSyllabus(in); err != nil {
		return nil, err
	}
	syllabus, err := syllabusFromInput(in)
	if err != nil {
		return nil, err
	}
	syllabus.ID = id

	if _, err := s.syllabi.Update(ctx, syllabus); err != nil {
		return nil, err
	}
	s.invalidateYears(ctx)
	return s.GetSyllabus(ctx, id)
}

// DeleteSyllabus removes a syllabus, then its legacy file. A failed file
// removal is logged; the row is already gone.
func (s *syllabusServiceImpl) DeleteSyllabus(ctx context.Context, id int64) (models.DeleteResult, error) {
	res, err := s.syllabi.Delete(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	if !res.Deleted {
		return res, nil
	}
	s.invalidateYears(ctx)

	if res.FilePath != nil && *res.FilePath != "" {
		if err := s.files.DeleteFile(*res.FilePath); err != nil {
			logger.Warn().Err(err).Int64("syllabus_id", id).Str("path", *res.FilePath).Msg("Failed to remove syllabus file")
		}
	}
	logger.Info().Int64("syllabus_id", id).Msg("Syllabus deleted")
	return res, nil
}

func (s *syllabusServiceImpl) ListAllSyllabi(ctx context.Context) ([]*models.SyllabusDetails, error) {
	return s.syllabi.ListAll(ctx)
}

// QuerySyllabi returns one filtered page of syllabi
func (s *syllabusServiceImpl) QuerySyllabi(ctx context.Context, q dto.SyllabusListQuery, page query.Page) (query.Result[*models.SyllabusDetails], error) {
	return s.syllabi.Query(ctx, syllabusFilter(q), page)
}

func (s *syllabusServiceImpl) UnlinkedSyllabi(ctx context.Context) ([]*models.SyllabusDetails, error) {
	return s.syllabi.Unlinked(ctx)
}

// Years returns the distinct syllabus years, served from cache when possible
func (s *syllabusServiceImpl) Years(ctx context.Context) ([]int, error) {
	var years []int
	err := s.cache.GetJSON(ctx, yearsCacheKey, &years)
	if err == nil {
		return years, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		logger.Warn().Err(err).Msg("Years cache read failed")
	}

	years, err = s.syllabi.Years(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, yearsCacheKey, years, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Years cache write failed")
	}
	return years, nil
}

// GroupSyllabiByCourse groups the filtered syllabi under their courses. Courses
// without a matching syllabus are left out.
func (s *syllabusServiceImpl) GroupSyllabiByCourse(ctx context.Context, q dto.SyllabusListQuery) ([]models.CourseGroup, error) {
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	syllabi, err := s.syllabi.Filter(ctx, syllabusFilter(q))
	if err != nil {
		return nil, err
	}
	return query.GroupByCourse(courses, syllabi), nil
}

// SyllabiForDocument returns the syllabi a document is linked to
func (s *syllabusServiceImpl) SyllabiForDocument(ctx context.Context, documentID int64) ([]*models.SyllabusDetails, error) {
	if _, err := s.documents.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.syllabi.ByDocument(ctx, documentID)
}

// SyllabusDocuments returns the documents linked to a syllabus
func (s *syllabusServiceImpl) SyllabusDocuments(ctx context.Context, syllabusID int64) ([]*models.Document, error) {
	if _, err := s.syllabi.GetByID(ctx, syllabusID); err != nil {
		return nil, err
	}
	return s.documents.BySyllabus(ctx, syllabusID)
}

// AvailableDocuments returns the documents that can still be linked to a syllabus
func (s *syllabusServiceImpl) AvailableDocuments(ctx context.Context, syllabusID int64) ([]*models.Document, error) {
	if _, err := s.syllabi.GetByID(ctx, syllabusID); err != nil {
		return nil, err
	}
	return s.documents.AvailableForSyllabus(ctx, syllabusID)
}
