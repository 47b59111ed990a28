package services

import (
	"context"
	"time"

	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/app/query"
	"github.com/yigit/docsystem/internal/app/repositories"
	"github.com/yigit/docsystem/internal/pkg/filestorage"
	"github.com/yigit/docsystem/internal/pkg/logger"
	"github.com/yigit/docsystem/internal/pkg/validation"
)

// RelatedDocumentsLimit caps the related-documents list
const RelatedDocumentsLimit = 3

// DocumentService defines the interface for document operations
type DocumentService interface {
	CreateDocument(ctx context.Context, actor models.Actor, in *dto.DocumentInput) (*models.Document, error)
	GetDocument(ctx context.Context, id int64) (*models.Document, error)
	UpdateDocument(ctx context.Context, id int64, in *dto.DocumentInput) (*models.Document, error)
	DeleteDocument(ctx context.Context, id int64) (models.DeleteResult, error)
	ListAllDocuments(ctx context.Context) ([]*models.Document, error)
	QueryDocuments(ctx context.Context, q dto.DocumentListQuery, page query.Page) (query.Result[*models.Document], error)
	DocumentsByType(ctx context.Context, documentType string) ([]*models.Document, error)
	RelatedDocuments(ctx context.Context, documentID int64) ([]*models.Document, error)
}

// documentServiceImpl implements DocumentService
type documentServiceImpl struct {
	documents DocumentStore
	tags      TagStore
	files     filestorage.FileRemover
	now       func() time.Time
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documents DocumentStore, tags TagStore, files filestorage.FileRemover) DocumentService {
	if files == nil {
		files = filestorage.NopRemover{}
	}
	return &documentServiceImpl{
		documents: documents,
		tags:      tags,
		files:     files,
		now:       time.Now,
	}
}

// documentFromInput validates in and applies permissive type coercion
func (s *documentServiceImpl) documentFromInput(in *dto.DocumentInput) (*models.Document, error) {
	year, err := validation.ValidateDocument(in, s.now())
	if err != nil {
		return nil, err
	}

	url := in.URL
	return &models.Document{
		Title:          in.Title,
		Description:    in.Description,
		URL:            &url,
		DocumentType:   models.CoerceDocumentType(in.DocumentType),
		TagID:          in.TagID,
		PublishingYear: year,
	}, nil
}

// CreateDocument stores a document. The optional syllabus link and the
// actor's initial read status are written in the same transaction.
func (s *documentServiceImpl) CreateDocument(ctx context.Context, actor models.Actor, in *dto.DocumentInput) (*models.Document, error) {
	doc, err := s.documentFromInput(in)
	if err != nil {
		return nil, err
	}

	opts := repositories.CreateDocumentOptions{SyllabusID: in.SyllabusID}
	if !actor.IsAnonymous() {
		userID := actor.UserID
		opts.UserID = &userID
	}

	created, err := s.documents.Create(ctx, doc, opts)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("document_id", created.ID).Str("type", string(created.DocumentType)).Msg("Document created")
	return created, nil
}

// GetDocument returns a document with its tag and linked-syllabi count
func (s *documentServiceImpl) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, []*models.Document{doc})
	return doc, nil
}

// UpdateDocument validates and overwrites a document
func (s *documentServiceImpl) UpdateDocument(ctx context.Context, id int64, in *dto.DocumentInput) (*models.Document, error) {
	doc, err := s.documentFromInput(in)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	return s.documents.Update(ctx, doc)
}

// DeleteDocument removes a document, then its legacy file
func (s *documentServiceImpl) DeleteDocument(ctx context.Context, id int64) (models.DeleteResult, error) {
	res, err := s.documents.Delete(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	if res.Deleted && res.FilePath != nil && *res.FilePath != "" {
		if err := s.files.DeleteFile(*res.FilePath); err != nil {
			logger.Warn().Err(err).Int64("document_id", id).Str("path", *res.FilePath).Msg("Failed to remove document file")
		}
	}
	return res, nil
}

func (s *documentServiceImpl) ListAllDocuments(ctx context.Context) ([]*models.Document, error) {
	return s.documents.ListAll(ctx)
}

// QueryDocuments returns one filtered, sorted page of documents. The type
// filter is strict.
func (s *documentServiceImpl) QueryDocuments(ctx context.Context, q dto.DocumentListQuery, page query.Page) (query.Result[*models.Document], error) {
	filter := query.DocumentFilter{Search: q.Search}
	if q.DocumentType != "" {
		t, err := models.ParseDocumentType(q.DocumentType)
		if err != nil {
			return query.Result[*models.Document]{}, err
		}
		filter.DocumentType = t
	}

	res, err := s.documents.Query(ctx, filter, query.ParseDocumentSort(q.SortBy), page)
	if err != nil {
		return query.Result[*models.Document]{}, err
	}
	s.enrich(ctx, res.Items)
	return res, nil
}

// DocumentsByType lists the documents of one recognized type
func (s *documentServiceImpl) DocumentsByType(ctx context.Context, documentType string) ([]*models.Document, error) {
	t, err := models.ParseDocumentType(documentType)
	if err != nil {
		return nil, err
	}
	return s.documents.ByType(ctx, t)
}

// RelatedDocuments returns up to RelatedDocumentsLimit documents sharing the
// tag of documentID. A failed lookup yields an empty list.
func (s *documentServiceImpl) RelatedDocuments(ctx context.Context, documentID int64) ([]*models.Document, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	related, err := s.documents.Related(ctx, doc, RelatedDocumentsLimit)
	if err != nil {
		logger.Warn().Err(err).Int64("document_id", documentID).Msg("Related documents unavailable")
		return []*models.Document{}, nil
	}
	return related, nil
}

// enrich attaches tags and linked-syllabi counts. Lookup failures leave the
// documents untagged with a zero count.
func (s *documentServiceImpl) enrich(ctx context.Context, docs []*models.Document) {
	if len(docs) == 0 {
		return
	}

	ids := make([]int64, 0, len(docs))
	tagIDs := make([]int64, 0, len(docs))
	seen := make(map[int64]bool)
	for _, d := range docs {
		ids = append(ids, d.ID)
		if d.TagID != nil && !seen[*d.TagID] {
			seen[*d.TagID] = true
			tagIDs = append(tagIDs, *d.TagID)
		}
	}

	tags, err := s.tags.GetByIDs(ctx, tagIDs)
	if err != nil {
		logger.Warn().Err(err).Msg("Document tags unavailable")
		tags = nil
	}
	counts, err := s.documents.SyllabiCounts(ctx, ids)
	if err != nil {
		logger.Warn().Err(err).Msg("Document syllabi counts unavailable")
		counts = nil
	}

	for _, d := range docs {
		if d.TagID != nil {
			d.Tag = tags[*d.TagID]
		}
		d.SyllabiCount = counts[d.ID]
	}
}
