package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/app/services"
	"github.com/yigit/docsystem/internal/middleware"
)

// SyllabusController handles syllabus operations and the syllabus side of
// the course and document associations
type SyllabusController struct {
	syllabusService    services.SyllabusService
	associationService services.AssociationService
	pager              Pager
}

// NewSyllabusController creates a new SyllabusController
func NewSyllabusController(syllabusService services.SyllabusService, associationService services.AssociationService, pager Pager) *SyllabusController {
	return &SyllabusController{
		syllabusService:    syllabusService,
		associationService: associationService,
		pager:              pager,
	}
}

// ListSyllabi returns one filtered page of syllabi
func (c *SyllabusController) ListSyllabi(ctx *gin.Context) {
	var q dto.SyllabusListQuery
	if !middleware.BindQuery(ctx, &q) {
		return
	}

	res, err := c.syllabusService.QuerySyllabi(ctx, q, c.pager.Page(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, res.Response(), "")
}

// GroupedByCourse returns the filtered syllabi grouped under their courses
func (c *SyllabusController) GroupedByCourse(ctx *gin.Context) {
	var q dto.SyllabusListQuery
	if !middleware.BindQuery(ctx, &q) {
		return
	}

	groups, err := c.syllabusService.GroupSyllabiByCourse(ctx, q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, groups, "")
}

func (c *SyllabusController) Unlinked(ctx *gin.Context) {
	syllabi, err := c.syllabusService.UnlinkedSyllabi(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, syllabi, "")
}

func (c *SyllabusController) Years(ctx *gin.Context) {
	years, err := c.syllabusService.Years(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, years, "")
}

// CreateSyllabus handles syllabus creation
func (c *SyllabusController) CreateSyllabus(ctx *gin.Context) {
	var in dto.SyllabusInput
	if !middleware.BindJSON(ctx, &in) {
		return
	}

	syllabus, err := c.syllabusService.CreateSyllabus(ctx, &in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, syllabus, "Syllabus created successfully")
}

func (c *SyllabusController) GetSyllabus(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	syllabus, err := c.syllabusService.GetSyllabus(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, syllabus, "")
}

func (c *SyllabusController) UpdateSyllabus(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}
	var in dto.SyllabusInput
	if !middleware.BindJSON(ctx, &in) {
		return
	}

	syllabus, err := c.syllabusService.UpdateSyllabus(ctx, id, &in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, syllabus, "Syllabus updated successfully")
}

func (c *SyllabusController) DeleteSyllabus(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	res, err := c.syllabusService.DeleteSyllabus(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !res.Deleted {
		ctx.JSON(http.StatusNotFound, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Syllabus not found"),
		))
		return
	}
	ok(ctx, res, "Syllabus deleted successfully")
}

// Documents lists the documents linked to a syllabus; with ?available=true
// it lists the ones that can still be linked
func (c *SyllabusController) Documents(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	list := c.syllabusService.SyllabusDocuments
	if ctx.Query("available") == "true" {
		list = c.syllabusService.AvailableDocuments
	}
	docs, err := list(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, docs, "")
}

// LinkCourse links a syllabus to a course
func (c *SyllabusController) LinkCourse(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}
	courseID, valid := middleware.ParseIDParam(ctx, "courseId")
	if !valid {
		return
	}

	syllabus, err := c.associationService.LinkSyllabusToCourse(ctx, id, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, syllabus, "Syllabus linked to course")
}

// UnlinkCourse clears the course of a syllabus
func (c *SyllabusController) UnlinkCourse(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}
	courseID, valid := middleware.ParseIDParam(ctx, "courseId")
	if !valid {
		return
	}

	syllabus, err := c.associationService.UnlinkSyllabusFromCourse(ctx, id, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, syllabus, "Syllabus unlinked from course")
}

// LinkDocument links a document to a syllabus. A repeated link is a success
// with alreadyLinked set.
func (c *SyllabusController) LinkDocument(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}
	documentID, valid := middleware.ParseIDParam(ctx, "documentId")
	if !valid {
		return
	}

	res, err := c.associationService.LinkDocumentToSyllabus(ctx, id, documentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if res.AlreadyLinked {
		ok(ctx, dto.LinkResponse{Message: "Document is already linked to this syllabus", AlreadyLinked: true, Result: res}, "")
		return
	}
	created(ctx, dto.LinkResponse{Message: "Document linked to syllabus", Result: res}, "")
}

func (c *SyllabusController) UnlinkDocument(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}
	documentID, valid := middleware.ParseIDParam(ctx, "documentId")
	if !valid {
		return
	}

	res, err := c.associationService.UnlinkDocumentFromSyllabus(ctx, id, documentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	msg := "Document unlinked from syllabus"
	if !res.Removed {
		msg = "Document was not linked to this syllabus"
	}
	ok(ctx, res, msg)
}
