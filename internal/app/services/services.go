// Package services holds the course, syllabus, document, tag and association
// logic. Each service is an interface backed by an unexported implementation
// that depends only on the store interfaces in stores.go.
package services

import (
	"time"

	"github.com/yigit/docsystem/internal/app/repositories"
	"github.com/yigit/docsystem/internal/pkg/cache"
	"github.com/yigit/docsystem/internal/pkg/filestorage"
)

// Services holds every service instance
type Services struct {
	Course      CourseService
	Syllabus    SyllabusService
	Document    DocumentService
	Tag         TagService
	Association AssociationService
}

// NewServices wires the services over the repository container
func NewServices(repos *repositories.Repositories, files filestorage.FileRemover, c cache.Cache, cacheTTL time.Duration) *Services {
	return &Services{
		Course: NewCourseService(repos.CourseRepository, repos.SyllabusRepository, c, cacheTTL),
		Syllabus: NewSyllabusService(
			repos.SyllabusRepository,
			repos.CourseRepository,
			repos.DocumentRepository,
			files,
			c,
			cacheTTL,
		),
		Document: NewDocumentService(repos.DocumentRepository, repos.TagRepository, files),
		Tag:      NewTagService(repos.TagRepository),
		Association: NewAssociationService(
			repos.SyllabusRepository,
			repos.CourseRepository,
			repos.DocumentRepository,
			repos.SyllabusDocumentRepository,
			repos.DocumentUserRepository,
		),
	}
}
