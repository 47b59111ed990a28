package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
	"github.com/yigit/docsystem/internal/pkg/dberrors"
)

const tagNameConstraint = "tags_name_key"

// TagRepository handles database operations for tags
type TagRepository struct {
	DB Database
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db Database) *TagRepository {
	return &TagRepository{DB: db}
}

func duplicateTagName(err error, name string) error {
	if dberrors.IsDuplicateConstraintError(err, tagNameConstraint) {
		return apperrors.NewValidationError().Add("name", "Tag "+name+" already exists")
	}
	return err
}

// ListAll returns every tag ordered by id
func (r *TagRepository) ListAll(ctx context.Context) ([]*models.Tag, error) {
	records, err := selectRecords(ctx, r.DB, psql.Select("*").From("tags").OrderBy("id"), "list tags")
	if err != nil {
		return nil, err
	}
	return decodeAll(records, models.TagFromRecord), nil
}

// GetByID returns ErrTagNotFound when id does not exist
func (r *TagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	b := psql.Select("*").From("tags").Where(squirrel.Eq{"id": id})
	rec, err := selectRecord(ctx, r.DB, b, "get tag", apperrors.ErrTagNotFound)
	if err != nil {
		return nil, err
	}
	return models.TagFromRecord(rec), nil
}

// GetByIDs returns the tags with the given ids keyed by id
func (r *TagRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Tag, error) {
	tags := make(map[int64]*models.Tag, len(ids))
	if len(ids) == 0 {
		return tags, nil
	}

	records, err := selectRecords(ctx, r.DB, psql.Select("*").From("tags").Where(squirrel.Eq{"id": ids}), "get tags")
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		t := models.TagFromRecord(rec)
		tags[t.ID] = t
	}
	return tags, nil
}

// Create inserts a tag
func (r *TagRepository) Create(ctx context.Context, name string) (*models.Tag, error) {
	b := psql.Insert("tags").Columns("name").Values(name).Suffix("RETURNING *")
	rec, err := selectRecord(ctx, r.DB, b, "create tag", nil)
	if err != nil {
		return nil, duplicateTagName(err, name)
	}
	return models.TagFromRecord(rec), nil
}

// Update renames a tag
func (r *TagRepository) Update(ctx context.Context, id int64, name string) (*models.Tag, error) {
	b := psql.Update("tags").Set("name", name).Where(squirrel.Eq{"id": id}).Suffix("RETURNING *")
	rec, err := selectRecord(ctx, r.DB, b, "update tag", apperrors.ErrTagNotFound)
	if err != nil {
		return nil, duplicateTagName(err, name)
	}
	return models.TagFromRecord(rec), nil
}

// Ensure returns the tag called name, creating it when missing
func (r *TagRepository) Ensure(ctx context.Context, name string) (*models.Tag, error) {
	b := psql.Insert("tags").Columns("name").Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING *")
	rec, err := selectRecord(ctx, r.DB, b, "ensure tag", nil)
	if err != nil {
		return nil, err
	}
	return models.TagFromRecord(rec), nil
}

// Delete removes a tag; documents referencing it keep existing untagged
func (r *TagRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := execStatement(ctx, r.DB, psql.Delete("tags").Where(squirrel.Eq{"id": id}), "delete tag")
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
