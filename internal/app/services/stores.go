package services

import (
	"context"

	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/query"
	"github.com/yigit/docsystem/internal/app/repositories"
)

// CourseStore is the persistence the course operations need
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) (*models.Course, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListAll(ctx context.Context) ([]*models.Course, error)
	Query(ctx context.Context, filter query.CourseFilter, page query.Page) (query.Result[*models.Course], error)
	Departments(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) ([]models.CourseStats, error)
}

// SyllabusStore is the persistence the syllabus operations need
type SyllabusStore interface {
	Create(ctx context.Context, s *models.Syllabus) (*models.Syllabus, error)
	GetByID(ctx context.Context, id int64) (*models.SyllabusDetails, error)
	Update(ctx context.Context, s *models.Syllabus) (*models.Syllabus, error)
	Delete(ctx context.Context, id int64) (models.DeleteResult, error)
	ListAll(ctx context.Context) ([]*models.SyllabusDetails, error)
	Unlinked(ctx context.Context) ([]*models.SyllabusDetails, error)
	ByCourse(ctx context.Context, courseID int64) ([]*models.SyllabusDetails, error)
	Filter(ctx context.Context, filter query.SyllabusFilter) ([]*models.SyllabusDetails, error)
	Query(ctx context.Context, filter query.SyllabusFilter, page query.Page) (query.Result[*models.SyllabusDetails], error)
	Years(ctx context.Context) ([]int, error)
	ByDocument(ctx context.Context, documentID int64) ([]*models.SyllabusDetails, error)
	AttachCourse(ctx context.Context, syllabusID, courseID int64) (bool, error)
	DetachCourse(ctx context.Context, syllabusID, courseID int64) (bool, error)
}

// DocumentStore is the persistence the document operations need
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document, opts repositories.CreateDocumentOptions) (*models.Document, error)
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	Update(ctx context.Context, doc *models.Document) (*models.Document, error)
	Delete(ctx context.Context, id int64) (models.DeleteResult, error)
	ListAll(ctx context.Context) ([]*models.Document, error)
	Query(ctx context.Context, filter query.DocumentFilter, sort query.DocumentSort, page query.Page) (query.Result[*models.Document], error)
	ByType(ctx context.Context, t models.DocumentType) ([]*models.Document, error)
	Related(ctx context.Context, doc *models.Document, limit int) ([]*models.Document, error)
	BySyllabus(ctx context.Context, syllabusID int64) ([]*models.Document, error)
	AvailableForSyllabus(ctx context.Context, syllabusID int64) ([]*models.Document, error)
	SyllabiCounts(ctx context.Context, ids []int64) (map[int64]int64, error)
}

// TagStore is the persistence the tag operations need
type TagStore interface {
	ListAll(ctx context.Context) ([]*models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Tag, error)
	Create(ctx context.Context, name string) (*models.Tag, error)
	Update(ctx context.Context, id int64, name string) (*models.Tag, error)
	Ensure(ctx context.Context, name string) (*models.Tag, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// SyllabusDocumentStore persists the syllabus/document junction
type SyllabusDocumentStore interface {
	Link(ctx context.Context, syllabusID, documentID int64, documentType string) (*models.SyllabusDocument, bool, error)
	Get(ctx context.Context, syllabusID, documentID int64) (*models.SyllabusDocument, error)
	Unlink(ctx context.Context, syllabusID, documentID int64) (bool, error)
}

// DocumentUserStore persists per-user read status
type DocumentUserStore interface {
	Upsert(ctx context.Context, documentID, userID int64, status models.ReadStatus) (*models.DocumentUser, error)
	Get(ctx context.Context, documentID, userID int64) (*models.DocumentUser, error)
	AllForUser(ctx context.Context, userID int64) ([]*models.DocumentUser, error)
	DocumentsByStatus(ctx context.Context, userID int64, status models.ReadStatus) ([]*models.DocumentWithStatus, error)
}

var (
	_ CourseStore           = (*repositories.CourseRepository)(nil)
	_ SyllabusStore         = (*repositories.SyllabusRepository)(nil)
	_ DocumentStore         = (*repositories.DocumentRepository)(nil)
	_ TagStore              = (*repositories.TagRepository)(nil)
	_ SyllabusDocumentStore = (*repositories.SyllabusDocumentRepository)(nil)
	_ DocumentUserStore     = (*repositories.DocumentUserRepository)(nil)
)
