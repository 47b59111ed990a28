package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/docsystem/internal/db"
)

// Database is what repositories run statements and transactions on.
// *pgxpool.Pool satisfies it.
type Database interface {
	db.Querier
	db.TxBeginner
}

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository           *CourseRepository
	SyllabusRepository         *SyllabusRepository
	DocumentRepository         *DocumentRepository
	TagRepository              *TagRepository
	SyllabusDocumentRepository *SyllabusDocumentRepository
	DocumentUserRepository     *DocumentUserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:           NewCourseRepository(db),
		SyllabusRepository:         NewSyllabusRepository(db),
		DocumentRepository:         NewDocumentRepository(db),
		TagRepository:              NewTagRepository(db),
		SyllabusDocumentRepository: NewSyllabusDocumentRepository(db),
		DocumentUserRepository:     NewDocumentUserRepository(db),
	}
}
