package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/docsystem/internal/app/controllers"
	"github.com/yigit/docsystem/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Course   *controllers.CourseController
	Syllabus *controllers.SyllabusController
	Document *controllers.DocumentController
	Tag      *controllers.TagController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	// API version group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Actor())

	courses := v1.Group("/courses")
	{
		courses.GET("", c.Course.ListCourses)
		courses.POST("", c.Course.CreateCourse)
		courses.GET("/departments", c.Course.Departments)
		courses.GET("/stats", c.Course.CourseStats)
		courses.GET("/:id", c.Course.GetCourse)
		courses.PUT("/:id", c.Course.UpdateCourse)
		courses.DELETE("/:id", c.Course.DeleteCourse)
		courses.GET("/:id/syllabi", c.Course.CourseSyllabi)
	}

	syllabi := v1.Group("/syllabi")
	{
		syllabi.GET("", c.Syllabus.ListSyllabi)
		syllabi.POST("", c.Syllabus.CreateSyllabus)
		syllabi.GET("/grouped", c.Syllabus.GroupedByCourse)
		syllabi.GET("/unlinked", c.Syllabus.Unlinked)
		syllabi.GET("/years", c.Syllabus.Years)
		syllabi.GET("/:id", c.Syllabus.GetSyllabus)
		syllabi.PUT("/:id", c.Syllabus.UpdateSyllabus)
		syllabi.DELETE("/:id", c.Syllabus.DeleteSyllabus)

		syllabi.POST("/:id/course/:courseId", c.Syllabus.LinkCourse)
		syllabi.DELETE("/:id/course/:courseId", c.Syllabus.UnlinkCourse)

		syllabi.GET("/:id/documents", c.Syllabus.Documents)
		syllabi.POST("/:id/documents/:documentId", c.Syllabus.LinkDocument)
		syllabi.DELETE("/:id/documents/:documentId", c.Syllabus.UnlinkDocument)
	}

	documents := v1.Group("/documents")
	{
		documents.GET("", c.Document.ListDocuments)
		documents.POST("", c.Document.CreateDocument)
		documents.GET("/types/:type", c.Document.DocumentsByType)
		documents.GET("/:id", c.Document.GetDocument)
		documents.PUT("/:id", c.Document.UpdateDocument)
		documents.DELETE("/:id", c.Document.DeleteDocument)
		documents.GET("/:id/related", c.Document.RelatedDocuments)
		documents.GET("/:id/syllabi", c.Document.Syllabi)
		documents.GET("/:id/status", c.Document.GetReadStatus)
		documents.PUT("/:id/status", c.Document.SetReadStatus)
	}

	tags := v1.Group("/tags")
	{
		tags.GET("", c.Tag.ListTags)
		tags.POST("", c.Tag.CreateTag)
		tags.GET("/:id", c.Tag.GetTag)
		tags.PUT("/:id", c.Tag.UpdateTag)
		tags.DELETE("/:id", c.Tag.DeleteTag)
	}

	me := v1.Group("/me")
	{
		me.GET("/read-statuses", c.Document.MyReadStatuses)
	}
}
