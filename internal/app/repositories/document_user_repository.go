package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/db"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
	"github.com/yigit/docsystem/internal/pkg/dberrors"
)

var errReadStatusNotFound = apperrors.NewResourceNotFoundError("read status not found")

// DocumentUserRepository handles the documents_users read-status relation
type DocumentUserRepository struct {
	DB Database
}

// NewDocumentUserRepository creates a new DocumentUserRepository
func NewDocumentUserRepository(db Database) *DocumentUserRepository {
	return &DocumentUserRepository{DB: db}
}

func upsertReadStatus(ctx context.Context, q db.Querier, documentID, userID int64, status models.ReadStatus) (*models.DocumentUser, error) {
	b := psql.Insert("documents_users").
		Columns("document_id", "user_id", "read_status").
		Values(documentID, userID, string(status)).
		Suffix("ON CONFLICT (document_id, user_id) DO UPDATE SET read_status = EXCLUDED.read_status, updated_at = NOW() RETURNING *")

	rec, err := selectRecord(ctx, q, b, "upsert read status", nil)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, err
	}
	return models.DocumentUserFromRecord(rec), nil
}

// Upsert inserts the pair or updates its status
func (r *DocumentUserRepository) Upsert(ctx context.Context, documentID, userID int64, status models.ReadStatus) (*models.DocumentUser, error) {
	return upsertReadStatus(ctx, r.DB, documentID, userID, status)
}

// Get returns the status row of the pair, or a not-found error
func (r *DocumentUserRepository) Get(ctx context.Context, documentID, userID int64) (*models.DocumentUser, error) {
	b := psql.Select("*").From("documents_users").
		Where(squirrel.Eq{"document_id": documentID, "user_id": userID})

	rec, err := selectRecord(ctx, r.DB, b, "get read status", errReadStatusNotFound)
	if err != nil {
		return nil, err
	}
	return models.DocumentUserFromRecord(rec), nil
}

// AllForUser returns every status row of a user
func (r *DocumentUserRepository) AllForUser(ctx context.Context, userID int64) ([]*models.DocumentUser, error) {
	b := psql.Select("*").From("documents_users").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("document_id")

	records, err := selectRecords(ctx, r.DB, b, "read statuses for user")
	if err != nil {
		return nil, err
	}
	return decodeAll(records, models.DocumentUserFromRecord), nil
}

// DocumentsByStatus returns the user's documents with the given status, by title
func (r *DocumentUserRepository) DocumentsByStatus(ctx context.Context, userID int64, status models.ReadStatus) ([]*models.DocumentWithStatus, error) {
	b := psql.Select("d.*", "du.read_status").
		From("documents d").
		Join("documents_users du ON du.document_id = d.id").
		Where(squirrel.Eq{"du.user_id": userID, "du.read_status": string(status)}).
		OrderBy("d.title", "d.id")

	records, err := selectRecords(ctx, r.DB, b, "documents by status")
	if err != nil {
		return nil, err
	}
	return decodeAll(records, func(rec models.Record) *models.DocumentWithStatus {
		return &models.DocumentWithStatus{
			Document:   *models.DocumentFromRecord(rec),
			ReadStatus: models.ReadStatus(rec.String("readStatus")),
		}
	}), nil
}
