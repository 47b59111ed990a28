package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/app/services"
	"github.com/yigit/docsystem/internal/middleware"
)

// DocumentController handles document operations and read status
type DocumentController struct {
	documentService    services.DocumentService
	syllabusService    services.SyllabusService
	associationService services.AssociationService
	pager              Pager
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(
	documentService services.DocumentService,
	syllabusService services.SyllabusService,
	associationService services.AssociationService,
	pager Pager,
) *DocumentController {
	return &DocumentController{
		documentService:    documentService,
		syllabusService:    syllabusService,
		associationService: associationService,
		pager:              pager,
	}
}

// ListDocuments returns one filtered, sorted page of documents
func (c *DocumentController) ListDocuments(ctx *gin.Context) {
	var q dto.DocumentListQuery
	if !middleware.BindQuery(ctx, &q) {
		return
	}

	res, err := c.documentService.QueryDocuments(ctx, q, c.pager.Page(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, res.Response(), "")
}

// DocumentsByType lists every document of one type
func (c *DocumentController) DocumentsByType(ctx *gin.Context) {
	docs, err := c.documentService.DocumentsByType(ctx, ctx.Param("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, docs, "")
}

// CreateDocument handles document creation on behalf of the request actor
func (c *DocumentController) CreateDocument(ctx *gin.Context) {
	var in dto.DocumentInput
	if !middleware.BindJSON(ctx, &in) {
		return
	}

	doc, err := c.documentService.CreateDocument(ctx, middleware.GetActor(ctx), &in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, doc, "Document created successfully")
}

func (c *DocumentController) GetDocument(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	doc, err := c.documentService.GetDocument(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, doc, "")
}

func (c *DocumentController) UpdateDocument(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}
	var in dto.DocumentInput
	if !middleware.BindJSON(ctx, &in) {
		return
	}

	doc, err := c.documentService.UpdateDocument(ctx, id, &in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, doc, "Document updated successfully")
}

func (c *DocumentController) DeleteDocument(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	res, err := c.documentService.DeleteDocument(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !res.Deleted {
		ctx.JSON(http.StatusNotFound, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Document not found"),
		))
		return
	}
	ok(ctx, res, "Document deleted successfully")
}

// RelatedDocuments lists a few documents sharing the document's tag
func (c *DocumentController) RelatedDocuments(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	docs, err := c.documentService.RelatedDocuments(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, docs, "")
}

// Syllabi lists the syllabi a document is linked to
func (c *DocumentController) Syllabi(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	syllabi, err := c.syllabusService.SyllabiForDocument(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, syllabi, "")
}

// SetReadStatus records the actor's read status for a document
func (c *DocumentController) SetReadStatus(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}
	var in dto.ReadStatusInput
	if !middleware.BindJSON(ctx, &in) {
		return
	}

	status, err := c.associationService.SetReadStatus(ctx, middleware.GetActor(ctx), id, in.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, status, "Read status updated")
}

func (c *DocumentController) GetReadStatus(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	status, err := c.associationService.ReadStatus(ctx, middleware.GetActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, status, "")
}

// MyReadStatuses lists the actor's read statuses, or with ?status= the
// actor's documents in that status ordered by title
func (c *DocumentController) MyReadStatuses(ctx *gin.Context) {
	actor := middleware.GetActor(ctx)

	if status, filtered := ctx.GetQuery("status"); filtered {
		docs, err := c.associationService.DocumentsByStatus(ctx, actor, status)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ok(ctx, docs, "")
		return
	}

	statuses, err := c.associationService.ReadStatusesForUser(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, statuses, "")
}
