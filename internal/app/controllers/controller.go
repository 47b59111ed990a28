package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/app/query"
	"github.com/yigit/docsystem/internal/pkg/helpers"
)

// Pager reads page and size query parameters with configured bounds
type Pager struct {
	DefaultSize int
	MaxSize     int
}

// NewPager creates a Pager, falling back to the package defaults
func NewPager(defaultSize, maxSize int) Pager {
	if maxSize <= 0 || maxSize > helpers.MaxPageSize {
		maxSize = helpers.MaxPageSize
	}
	if defaultSize <= 0 || defaultSize > maxSize {
		defaultSize = helpers.DefaultPageSize
	}
	return Pager{DefaultSize: defaultSize, MaxSize: maxSize}
}

// Page returns the requested page; bad values fall back to the defaults
func (p Pager) Page(ctx *gin.Context) query.Page {
	return query.NewPage(helpers.ParsePaginationParams(ctx, p.DefaultSize, p.MaxSize))
}

func ok(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, message))
}

func created(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(data, message))
}
