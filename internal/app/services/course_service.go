package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/app/query"
	"github.com/yigit/docsystem/internal/pkg/cache"
	"github.com/yigit/docsystem/internal/pkg/logger"
	"github.com/yigit/docsystem/internal/pkg/validation"
)

const departmentsCacheKey = "courses:departments"

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, in *dto.CourseInput) (*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, in *dto.CourseInput) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) (bool, error)
	ListAllCourses(ctx context.Context) ([]*models.Course, error)
	ListCourses(ctx context.Context, q dto.CourseListQuery, page query.Page) (query.Result[*models.Course], error)
	Departments(ctx context.Context) ([]string, error)
	CourseSyllabi(ctx context.Context, courseID int64) ([]*models.SyllabusDetails, error)
	CourseStats(ctx context.Context) ([]models.CourseStats, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courses  CourseStore
	syllabi  SyllabusStore
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, syllabi SyllabusStore, c cache.Cache, cacheTTL time.Duration) CourseService {
	if c == nil {
		c = cache.NopCache{}
	}
	return &courseServiceImpl{
		courses:  courses,
		syllabi:  syllabi,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func courseFromInput(in *dto.CourseInput) *models.Course {
	return &models.Course{
		Code:        in.Code,
		Title:       in.Title,
		Description: in.Description,
		Department:  in.Department,
		Credits:     *in.Credits,
	}
}

func (s *courseServiceImpl) invalidateDepartments(ctx context.Context) {
	if err := s.cache.Delete(ctx, departmentsCacheKey); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate departments cache")
	}
}

// CreateCourse validates and stores a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, in *dto.CourseInput) (*models.Course, error) {
	if err := validation.ValidateCourse(in); err != nil {
		return nil, err
	}

	course, err := s.courses.Create(ctx, courseFromInput(in))
	if err != nil {
		return nil, err
	}
	s.invalidateDepartments(ctx)

	logger.Info().Int64("course_id", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// GetCourse retrieves a course by ID
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// UpdateCourse validates and overwrites a course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, in *dto.CourseInput) (*models.Course, error) {
	if err := validation.ValidateCourse(in); err != nil {
		return nil, err
	}

	course := courseFromInput(in)
	course.ID = id
	updated, err := s.courses.Update(ctx, course)
	if err != nil {
		return nil, err
	}
	s.invalidateDepartments(ctx)
	return updated, nil
}

// DeleteCourse removes a course. Its syllabi stay, unlinked.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.courses.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidateDepartments(ctx)
		logger.Info().Int64("course_id", id).Msg("Course deleted")
	}
	return deleted, nil
}

func (s *courseServiceImpl) ListAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courses.ListAll(ctx)
}

// ListCourses returns one filtered page of courses
func (s *courseServiceImpl) ListCourses(ctx context.Context, q dto.CourseListQuery, page query.Page) (query.Result[*models.Course], error) {
	return s.courses.Query(ctx, query.CourseFilter{Search: q.Search, Department: q.Department}, page)
}

// Departments returns the distinct department names, served from cache when possible
func (s *courseServiceImpl) Departments(ctx context.Context) ([]string, error) {
	var departments []string
	err := s.cache.GetJSON(ctx, departmentsCacheKey, &departments)
	if err == nil {
		return departments, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		logger.Warn().Err(err).Msg("Departments cache read failed")
	}

	departments, err = s.courses.Departments(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, departmentsCacheKey, departments, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Departments cache write failed")
	}
	return departments, nil
}

// CourseSyllabi returns the syllabi of one course in academic-term order
func (s *courseServiceImpl) CourseSyllabi(ctx context.Context, courseID int64) ([]*models.SyllabusDetails, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	syllabi, err := s.syllabi.ByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error getting syllabi of course %d: %w", courseID, err)
	}
	query.SortSyllabi(syllabi)
	for _, sy := range syllabi {
		sy.WithParsedContent()
	}
	return syllabi, nil
}

func (s *courseServiceImpl) CourseStats(ctx context.Context) ([]models.CourseStats, error) {
	return s.courses.Stats(ctx)
}
