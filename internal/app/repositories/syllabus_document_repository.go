package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/db"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
)

var errLinkNotFound = apperrors.NewResourceNotFoundError("syllabus document link not found")

// SyllabusDocumentRepository handles the syllabi_documents junction
type SyllabusDocumentRepository struct {
	DB Database
}

// NewSyllabusDocumentRepository creates a new SyllabusDocumentRepository
func NewSyllabusDocumentRepository(db Database) *SyllabusDocumentRepository {
	return &SyllabusDocumentRepository{DB: db}
}

// insertSyllabusDocument writes a junction row with the coerced type
// snapshot. inserted is false when the pair already existed; the existing row
// is left untouched.
func insertSyllabusDocument(ctx context.Context, q db.Querier, syllabusID, documentID int64, documentType string) (link *models.SyllabusDocument, inserted bool, err error) {
	snapshot := models.CoerceDocumentType(documentType)

	b := psql.Insert("syllabi_documents").
		Columns("syllabus_id", "document_id", "document_type").
		Values(syllabusID, documentID, string(snapshot)).
		Suffix("ON CONFLICT (syllabus_id, document_id) DO NOTHING RETURNING *")

	rec, err := selectRecord(ctx, q, b, "link document", errLinkNotFound)
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return models.SyllabusDocumentFromRecord(rec), true, nil
}

// Link inserts the pair. When it already exists, the stored row is returned
// with inserted false.
func (r *SyllabusDocumentRepository) Link(ctx context.Context, syllabusID, documentID int64, documentType string) (*models.SyllabusDocument, bool, error) {
	link, inserted, err := insertSyllabusDocument(ctx, r.DB, syllabusID, documentID, documentType)
	if err != nil {
		return nil, false, err
	}
	if inserted {
		return link, true, nil
	}

	existing, err := r.Get(ctx, syllabusID, documentID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Get returns the junction row of the pair
func (r *SyllabusDocumentRepository) Get(ctx context.Context, syllabusID, documentID int64) (*models.SyllabusDocument, error) {
	b := psql.Select("*").From("syllabi_documents").
		Where(squirrel.Eq{"syllabus_id": syllabusID, "document_id": documentID})

	rec, err := selectRecord(ctx, r.DB, b, "get document link", errLinkNotFound)
	if err != nil {
		return nil, err
	}
	return models.SyllabusDocumentFromRecord(rec), nil
}

// Unlink deletes the pair and reports whether a row was removed
func (r *SyllabusDocumentRepository) Unlink(ctx context.Context, syllabusID, documentID int64) (bool, error) {
	b := psql.Delete("syllabi_documents").
		Where(squirrel.Eq{"syllabus_id": syllabusID, "document_id": documentID})

	n, err := execStatement(ctx, r.DB, b, "unlink document")
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
