package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/app/services"
	"github.com/yigit/docsystem/internal/middleware"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
	pager         Pager
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, pager Pager) *CourseController {
	return &CourseController{
		courseService: courseService,
		pager:         pager,
	}
}

// ListCourses returns one filtered page of courses
func (c *CourseController) ListCourses(ctx *gin.Context) {
	var q dto.CourseListQuery
	if !middleware.BindQuery(ctx, &q) {
		return
	}

	res, err := c.courseService.ListCourses(ctx, q, c.pager.Page(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, res.Response(), "")
}

// CreateCourse handles course creation
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var in dto.CourseInput
	if !middleware.BindJSON(ctx, &in) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx, &in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, course, "Course created successfully")
}

// GetCourse retrieves a course by ID
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	course, err := c.courseService.GetCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, course, "")
}

// UpdateCourse overwrites a course
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}
	var in dto.CourseInput
	if !middleware.BindJSON(ctx, &in) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, id, &in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, course, "Course updated successfully")
}

// DeleteCourse removes a course; its syllabi become unlinked
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	deleted, err := c.courseService.DeleteCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !deleted {
		ctx.JSON(http.StatusNotFound, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found"),
		))
		return
	}
	ok(ctx, nil, "Course deleted successfully")
}

func (c *CourseController) Departments(ctx *gin.Context) {
	departments, err := c.courseService.Departments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, departments, "")
}

// CourseSyllabi lists the syllabi of a course in academic-term order
func (c *CourseController) CourseSyllabi(ctx *gin.Context) {
	id, valid := middleware.ParseIDParam(ctx, "id")
	if !valid {
		return
	}

	syllabi, err := c.courseService.CourseSyllabi(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, syllabi, "")
}

func (c *CourseController) CourseStats(ctx *gin.Context) {
	stats, err := c.courseService.CourseStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, stats, "")
}
