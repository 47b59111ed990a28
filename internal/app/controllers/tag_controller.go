package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/app/services"
	"github.com/yigit/docsystem/internal/middleware"
)

// TagController handles tag-related operations
type TagController struct {
	tagService services.TagService
}

// NewTagController creates a new TagController
func NewTagController(tagService services.TagService) *TagController {
	return &TagController{tagService: tagService}
}

func (c *TagController) ListTags(ctx *gin.Context) {
	tags, err := c.tagService.ListTags(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, tags, "")
}

func (c *TagController) GetTag(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}
	tag, err := c.tagService.GetTag(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, tag, "")
}

// CreateTag creates a tag. With ?upsert=true an existing tag of the same
// name is returned instead of a conflict.
func (c *TagController) CreateTag(ctx *gin.Context) {
	var in dto.TagInput
	if !middleware.BindJSON(ctx, &in) {
		return
	}

	create := c.tagService.CreateTag
	if ctx.Query("upsert") == "true" {
		create = c.tagService.UpsertTag
	}
	tag, err := create(ctx, &in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, tag, "Tag saved successfully")
}

func (c *TagController) UpdateTag(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}
	var in dto.TagInput
	if !middleware.BindJSON(ctx, &in) {
		return
	}

	tag, err := c.tagService.UpdateTag(ctx, id, &in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, tag, "Tag updated successfully")
}

func (c *TagController) DeleteTag(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	deleted, err := c.tagService.DeleteTag(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !deleted {
		ctx.JSON(http.StatusNotFound, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Tag not found"),
		))
		return
	}
	ok(ctx, nil, "Tag deleted successfully")
}
