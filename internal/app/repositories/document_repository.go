package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/query"
	"github.com/yigit/docsystem/internal/db"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
	"github.com/yigit/docsystem/internal/pkg/dberrors"
)

// CreateDocumentOptions are the rows written together with a new document
type CreateDocumentOptions struct {
	// SyllabusID links the document to a syllabus
	SyllabusID *int64
	// UserID records InitialReadStatus for that user
	UserID *int64
}

// DocumentRepository handles database operations for documents
type DocumentRepository struct {
	DB Database
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db Database) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

// Create inserts a document and, in the same transaction, the optional
// syllabus link and initial read status. Either every row is committed or none.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document, opts CreateDocumentOptions) (*models.Document, error) {
	var created *models.Document

	err := db.WithTransaction(ctx, r.DB, func(ctx context.Context, q db.Querier) error {
		var err error
		created, err = insertDocument(ctx, q, doc)
		if err != nil {
			return err
		}

		if opts.SyllabusID != nil {
			if _, _, err := insertSyllabusDocument(ctx, q, *opts.SyllabusID, created.ID, string(created.DocumentType)); err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrSyllabusNotFound
				}
				return err
			}
		}

		if opts.UserID != nil {
			if _, err := upsertReadStatus(ctx, q, created.ID, *opts.UserID, models.InitialReadStatus); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewStorageError("create document", err)
	}
	return created, nil
}

func insertDocument(ctx context.Context, q db.Querier, doc *models.Document) (*models.Document, error) {
	b := psql.Insert("documents").
		SetMap(writeColumns(doc.Fields())).
		Suffix("RETURNING *")

	rec, err := selectRecord(ctx, q, b, "insert document", nil)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, err
	}
	return models.DocumentFromRecord(rec), nil
}

// GetByID returns ErrDocumentNotFound when id does not exist
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	b := psql.Select("*").From("documents").Where(squirrel.Eq{"id": id})
	rec, err := selectRecord(ctx, r.DB, b, "get document", apperrors.ErrDocumentNotFound)
	if err != nil {
		return nil, err
	}
	return models.DocumentFromRecord(rec), nil
}

// Update overwrites the writable columns of doc.ID
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) (*models.Document, error) {
	b := psql.Update("documents").
		SetMap(writeColumns(doc.Fields())).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": doc.ID}).
		Suffix("RETURNING *")

	rec, err := selectRecord(ctx, r.DB, b, "update document", apperrors.ErrDocumentNotFound)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, err
	}
	return models.DocumentFromRecord(rec), nil
}

// Delete removes a document and returns its legacy file path, if any.
// Junction and read-status rows go with it (ON DELETE CASCADE).
func (r *DocumentRepository) Delete(ctx context.Context, id int64) (models.DeleteResult, error) {
	b := psql.Delete("documents").Where(squirrel.Eq{"id": id}).Suffix("RETURNING filepath")

	rec, err := selectRecord(ctx, r.DB, b, "delete document", apperrors.ErrDocumentNotFound)
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return models.DeleteResult{}, nil
	}
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{Deleted: true, FilePath: rec.StringPtr("filepath")}, nil
}

func (r *DocumentRepository) list(ctx context.Context, b squirrel.SelectBuilder, op string) ([]*models.Document, error) {
	records, err := selectRecords(ctx, r.DB, b, op)
	if err != nil {
		return nil, err
	}
	return decodeAll(records, models.DocumentFromRecord), nil
}

// ListAll returns every document, newest first
func (r *DocumentRepository) ListAll(ctx context.Context) ([]*models.Document, error) {
	return r.list(ctx, psql.Select("*").From("documents").OrderBy("created_at DESC", "id DESC"), "list documents")
}

// Query returns one filtered, sorted page of documents
func (r *DocumentRepository) Query(ctx context.Context, filter query.DocumentFilter, sort query.DocumentSort, page query.Page) (query.Result[*models.Document], error) {
	return runListing(ctx, r.DB, query.Documents(filter, sort, page), page, "query documents", models.DocumentFromRecord)
}

// ByType returns the documents of one type, newest first
func (r *DocumentRepository) ByType(ctx context.Context, t models.DocumentType) ([]*models.Document, error) {
	b := psql.Select("*").From("documents").
		Where(squirrel.Eq{"document_type": string(t)}).
		OrderBy("created_at DESC", "id DESC")
	return r.list(ctx, b, "documents by type")
}

// Related returns up to limit other documents sharing doc's tag, newest
// first. Untagged documents relate to every other document.
func (r *DocumentRepository) Related(ctx context.Context, doc *models.Document, limit int) ([]*models.Document, error) {
	b := psql.Select("*").From("documents").
		Where(squirrel.NotEq{"id": doc.ID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
	if doc.TagID != nil {
		b = b.Where(squirrel.Eq{"tag_id": *doc.TagID})
	}
	return r.list(ctx, b, "related documents")
}

// BySyllabus returns the documents linked to a syllabus, newest first
func (r *DocumentRepository) BySyllabus(ctx context.Context, syllabusID int64) ([]*models.Document, error) {
	b := psql.Select("d.*").From("documents d").
		Join("syllabi_documents sd ON sd.document_id = d.id").
		Where(squirrel.Eq{"sd.syllabus_id": syllabusID}).
		OrderBy("d.created_at DESC", "d.id DESC")
	return r.list(ctx, b, "documents by syllabus")
}

// AvailableForSyllabus returns the documents not yet linked to a syllabus
func (r *DocumentRepository) AvailableForSyllabus(ctx context.Context, syllabusID int64) ([]*models.Document, error) {
	b := psql.Select("*").From("documents").
		Where("NOT EXISTS (SELECT 1 FROM syllabi_documents sd WHERE sd.document_id = documents.id AND sd.syllabus_id = ?)", syllabusID).
		OrderBy("title ASC", "id ASC")
	return r.list(ctx, b, "available documents")
}

// SyllabiCounts returns the number of linked syllabi per document id. Ids
// without links are absent from the map.
func (r *DocumentRepository) SyllabiCounts(ctx context.Context, ids []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	b := psql.Select("document_id", "COUNT(*) AS syllabi_count").
		From("syllabi_documents").
		Where(squirrel.Eq{"document_id": ids}).
		GroupBy("document_id")

	records, err := selectRecords(ctx, r.DB, b, "syllabi counts")
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		counts[rec.Int64("documentId")] = rec.Int64("syllabiCount")
	}
	return counts, nil
}
