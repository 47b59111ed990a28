package services

import (
	"context"

	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/pkg/validation"
)

// TagService defines the interface for tag operations
type TagService interface {
	ListTags(ctx context.Context) ([]*models.Tag, error)
	GetTag(ctx context.Context, id int64) (*models.Tag, error)
	CreateTag(ctx context.Context, in *dto.TagInput) (*models.Tag, error)
	UpdateTag(ctx context.Context, id int64, in *dto.TagInput) (*models.Tag, error)
	UpsertTag(ctx context.Context, in *dto.TagInput) (*models.Tag, error)
	DeleteTag(ctx context.Context, id int64) (bool, error)
}

// tagServiceImpl implements TagService
type tagServiceImpl struct {
	tags TagStore
}

// NewTagService creates a new TagService
func NewTagService(tags TagStore) TagService {
	return &tagServiceImpl{tags: tags}
}

func (s *tagServiceImpl) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.tags.ListAll(ctx)
}

func (s *tagServiceImpl) GetTag(ctx context.Context, id int64) (*models.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

// CreateTag stores a tag; the name is required and unique
func (s *tagServiceImpl) CreateTag(ctx context.Context, in *dto.TagInput) (*models.Tag, error) {
	if err := validation.ValidateTag(in); err != nil {
		return nil, err
	}
	return s.tags.Create(ctx, in.Name)
}

func (s *tagServiceImpl) UpdateTag(ctx context.Context, id int64, in *dto.TagInput) (*models.Tag, error) {
	if err := validation.ValidateTag(in); err != nil {
		return nil, err
	}
	return s.tags.Update(ctx, id, in.Name)
}

// UpsertTag returns the tag with the given name, creating it if needed
func (s *tagServiceImpl) UpsertTag(ctx context.Context, in *dto.TagInput) (*models.Tag, error) {
	if err := validation.ValidateTag(in); err != nil {
		return nil, err
	}
	return s.tags.Ensure(ctx, in.Name)
}

func (s *tagServiceImpl) DeleteTag(ctx context.Context, id int64) (bool, error) {
	return s.tags.Delete(ctx, id)
}
