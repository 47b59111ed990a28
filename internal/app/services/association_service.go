package services

import (
	"context"
	"fmt"

	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
	"github.com/yigit/docsystem/internal/pkg/dberrors"
	"github.com/yigit/docsystem/internal/pkg/logger"
)

// AssociationService maintains the course/syllabus reference, the
// syllabus/document junction and per-user read status.
type AssociationService interface {
	LinkSyllabusToCourse(ctx context.Context, syllabusID, courseID int64) (*models.SyllabusDetails, error)
	UnlinkSyllabusFromCourse(ctx context.Context, syllabusID, courseID int64) (*models.SyllabusDetails, error)
	LinkDocumentToSyllabus(ctx context.Context, syllabusID, documentID int64) (models.LinkResult, error)
	UnlinkDocumentFromSyllabus(ctx context.Context, syllabusID, documentID int64) (models.UnlinkResult, error)
	SetReadStatus(ctx context.Context, actor models.Actor, documentID int64, status string) (*models.DocumentUser, error)
	ReadStatus(ctx context.Context, actor models.Actor, documentID int64) (*models.DocumentUser, error)
	ReadStatusesForUser(ctx context.Context, actor models.Actor) ([]*models.DocumentUser, error)
	DocumentsByStatus(ctx context.Context, actor models.Actor, status string) ([]*models.DocumentWithStatus, error)
}

// associationServiceImpl implements AssociationService
type associationServiceImpl struct {
	syllabi   SyllabusStore
	courses   CourseStore
	documents DocumentStore
	links     SyllabusDocumentStore
	readers   DocumentUserStore
}

// NewAssociationService creates a new AssociationService
func NewAssociationService(
	syllabi SyllabusStore,
	courses CourseStore,
	documents DocumentStore,
	links SyllabusDocumentStore,
	readers DocumentUserStore,
) AssociationService {
	return &associationServiceImpl{
		syllabi:   syllabi,
		courses:   courses,
		documents: documents,
		links:     links,
		readers:   readers,
	}
}

func requireActor(actor models.Actor) error {
	if actor.IsAnonymous() {
		return apperrors.NewValidationError().Add("userId", "User is required")
	}
	return nil
}

// LinkSyllabusToCourse sets the course of a syllabus. A syllabus that already
// references another course must be unlinked first; relinking to the same
// course changes nothing.
func (s *associationServiceImpl) LinkSyllabusToCourse(ctx context.Context, syllabusID, courseID int64) (*models.SyllabusDetails, error) {
	syllabus, err := s.syllabi.GetByID(ctx, syllabusID)
	if err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	if syllabus.CourseID != nil {
		if *syllabus.CourseID == courseID {
			return syllabus.WithParsedContent(), nil
		}
		return nil, alreadyLinkedToCourse(syllabusID)
	}

	attached, err := s.syllabi.AttachCourse(ctx, syllabusID, courseID)
	if err != nil {
		return nil, err
	}

	current, err := s.syllabi.GetByID(ctx, syllabusID)
	if err != nil {
		return nil, err
	}
	// lost a race against another link
	if !attached && (current.CourseID == nil || *current.CourseID != courseID) {
		return nil, alreadyLinkedToCourse(syllabusID)
	}

	logger.Info().Int64("syllabus_id", syllabusID).Int64("course_id", courseID).Msg("Syllabus linked to course")
	return current.WithParsedContent(), nil
}

func alreadyLinkedToCourse(syllabusID int64) error {
	return apperrors.NewAlreadyLinkedError(fmt.Sprintf("syllabus %d is already linked to a course; unlink it first", syllabusID))
}

// UnlinkSyllabusFromCourse clears the course of a syllabus if it is courseID
func (s *associationServiceImpl) UnlinkSyllabusFromCourse(ctx context.Context, syllabusID, courseID int64) (*models.SyllabusDetails, error) {
	syllabus, err := s.syllabi.GetByID(ctx, syllabusID)
	if err != nil {
		return nil, err
	}

	mismatch := apperrors.NewMismatchError(fmt.Sprintf("syllabus %d is not linked to course %d", syllabusID, courseID))
	if syllabus.CourseID == nil || *syllabus.CourseID != courseID {
		return nil, mismatch
	}

	detached, err := s.syllabi.DetachCourse(ctx, syllabusID, courseID)
	if err != nil {
		return nil, err
	}
	if !detached {
		return nil, mismatch
	}

	logger.Info().Int64("syllabus_id", syllabusID).Int64("course_id", courseID).Msg("Syllabus unlinked from course")
	current, err := s.syllabi.GetByID(ctx, syllabusID)
	if err != nil {
		return nil, err
	}
	return current.WithParsedContent(), nil
}

// LinkDocumentToSyllabus adds the pair to the junction with a snapshot of the
// document type. The type must be recognized; unlike document creation nothing
// is coerced here. A repeated link reports AlreadyLinked with the stored
// snapshot.
func (s *associationServiceImpl) LinkDocumentToSyllabus(ctx context.Context, syllabusID, documentID int64) (models.LinkResult, error) {
	if _, err := s.syllabi.GetByID(ctx, syllabusID); err != nil {
		return models.LinkResult{}, err
	}
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return models.LinkResult{}, err
	}

	documentType, err := models.ParseDocumentType(string(doc.DocumentType))
	if err != nil {
		return models.LinkResult{}, err
	}

	link, inserted, err := s.links.Link(ctx, syllabusID, documentID, string(documentType))
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return models.LinkResult{}, apperrors.NewResourceNotFoundError("syllabus or document no longer exists")
		}
		return models.LinkResult{}, err
	}

	if inserted {
		logger.Info().Int64("syllabus_id", syllabusID).Int64("document_id", documentID).Msg("Document linked to syllabus")
	}
	return models.LinkResult{
		SyllabusID:    syllabusID,
		DocumentID:    documentID,
		DocumentType:  link.DocumentType,
		AlreadyLinked: !inserted,
	}, nil
}

// UnlinkDocumentFromSyllabus removes the pair if present
func (s *associationServiceImpl) UnlinkDocumentFromSyllabus(ctx context.Context, syllabusID, documentID int64) (models.UnlinkResult, error) {
	removed, err := s.links.Unlink(ctx, syllabusID, documentID)
	if err != nil {
		return models.UnlinkResult{}, err
	}
	return models.UnlinkResult{SyllabusID: syllabusID, DocumentID: documentID, Removed: removed}, nil
}

// SetReadStatus records the actor's progress on a document. The status is
// checked before anything is written.
func (s *associationServiceImpl) SetReadStatus(ctx context.Context, actor models.Actor, documentID int64, status string) (*models.DocumentUser, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	readStatus, err := models.ParseReadStatus(status)
	if err != nil {
		return nil, err
	}
	if _, err := s.documents.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.readers.Upsert(ctx, documentID, actor.UserID, readStatus)
}

// ReadStatus returns the actor's status for one document
func (s *associationServiceImpl) ReadStatus(ctx context.Context, actor models.Actor, documentID int64) (*models.DocumentUser, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.readers.Get(ctx, documentID, actor.UserID)
}

func (s *associationServiceImpl) ReadStatusesForUser(ctx context.Context, actor models.Actor) ([]*models.DocumentUser, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.readers.AllForUser(ctx, actor.UserID)
}

// DocumentsByStatus lists the actor's documents with the given status by title
func (s *associationServiceImpl) DocumentsByStatus(ctx context.Context, actor models.Actor, status string) ([]*models.DocumentWithStatus, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	readStatus, err := models.ParseReadStatus(status)
	if err != nil {
		return nil, err
	}
	return s.readers.DocumentsByStatus(ctx, actor.UserID, readStatus)
}
