package dto

import "strings"

// CourseInput is the body of course create and update
type CourseInput struct {
	Code        string  `json:"code" validate:"required,max=20"`
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
	Department  string  `json:"department" validate:"required,max=100"`
	Credits     *int    `json:"credits" validate:"required,gte=0"`
}

// Normalize trims text fields before validation
func (in *CourseInput) Normalize() {
	in.Code = strings.TrimSpace(in.Code)
	in.Title = strings.TrimSpace(in.Title)
	in.Department = strings.TrimSpace(in.Department)
}

// SyllabusInput is the body of syllabus create and update
type SyllabusInput struct {
	Semester           string   `json:"semester" validate:"required,oneof=Spring Summer Fall Winter"`
	Year               *int     `json:"year" validate:"required,gte=2020,lte=2030"`
	Instructor         string   `json:"instructor" validate:"required,max=255"`
	CourseID           *int64   `json:"courseId" validate:"required,gt=0"`
	URLLink            *string  `json:"urlLink" validate:"omitempty,drive_url"`
	LearningObjectives []string `json:"learningObjectives"`
	WeeklySchedule     *string  `json:"weeklySchedule"`
}

// Normalize trims text fields before validation
func (in *SyllabusInput) Normalize() {
	in.Semester = strings.TrimSpace(in.Semester)
	in.Instructor = strings.TrimSpace(in.Instructor)
}

// DocumentInput is the body of document create and update. DocumentType is
// coerced, never rejected. PublishingYear arrives as text from forms.
type DocumentInput struct {
	Title          string  `json:"title" validate:"required,max=255"`
	Description    *string `json:"description"`
	URL            string  `json:"url" validate:"required,doc_url"`
	DocumentType   string  `json:"documentType"`
	TagID          *int64  `json:"tagId" validate:"omitempty,gt=0"`
	PublishingYear string  `json:"publishingYear"`

	// Create only: link the new document to this syllabus in the same transaction
	SyllabusID *int64 `json:"syllabusId" validate:"omitempty,gt=0"`
}

// Normalize trims text fields before validation
func (in *DocumentInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	in.PublishingYear = strings.TrimSpace(in.PublishingYear)
}

// TagInput is the body of tag create and update
type TagInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Normalize trims text fields before validation
func (in *TagInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

// ReadStatusInput is the body of the read-status endpoint
type ReadStatusInput struct {
	Status string `json:"status"`
}

// CourseListQuery is bound from the course listing query string
type CourseListQuery struct {
	Search     string `form:"search"`
	Department string `form:"department"`
}

// SyllabusListQuery is bound from the syllabus listing query string
type SyllabusListQuery struct {
	CourseID   *int64 `form:"courseId"`
	Semester   string `form:"semester"`
	Year       *int   `form:"year"`
	Instructor string `form:"instructor"`
	Unlinked   bool   `form:"unlinked"`
}

// DocumentListQuery is bound from the document listing query string
type DocumentListQuery struct {
	Search       string `form:"search"`
	DocumentType string `form:"documentType"`
	SortBy       string `form:"sortBy"`
}
