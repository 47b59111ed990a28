package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Syllabus is one offering of a course in a given term. CourseID is nil while
// the syllabus is unlinked.
type Syllabus struct {
	ID         int64     `json:"id"`
	Semester   Semester  `json:"semester"`
	Year       int       `json:"year"`
	Instructor string    `json:"instructor"`
	CourseID   *int64    `json:"courseId"`
	URLLink    *string   `json:"urlLink,omitempty"`
	FilePath   *string   `json:"filePath,omitempty"` // legacy uploads
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Stored as a JSON list and as newline separated text.
	LearningObjectivesText *string `json:"-"`
	WeeklyScheduleText     *string `json:"-"`
}

// SyllabusFromRecord decodes a store record
func SyllabusFromRecord(r Record) *Syllabus {
	return &Syllabus{
		ID:                     r.Int64("id"),
		Semester:               Semester(r.String("semester")),
		Year:                   r.Int("year"),
		Instructor:             r.String("instructor"),
		CourseID:               r.Int64Ptr("courseId"),
		URLLink:                r.StringPtr("urlLink"),
		FilePath:               r.StringPtr("filePath"),
		LearningObjectivesText: r.StringPtr("learningObjectives"),
		WeeklyScheduleText:     r.StringPtr("weeklySchedule"),
		CreatedAt:              r.Time("createdAt"),
		UpdatedAt:              r.Time("updatedAt"),
	}
}

// Fields returns the writable columns keyed by field name
func (s *Syllabus) Fields() Record {
	return Record{
		"semester":           string(s.Semester),
		"year":               s.Year,
		"instructor":         s.Instructor,
		"courseId":           s.CourseID,
		"urlLink":            s.URLLink,
		"learningObjectives": s.LearningObjectivesText,
		"weeklySchedule":     s.WeeklyScheduleText,
	}
}

// IsLinked reports whether the syllabus references a course
func (s *Syllabus) IsLinked() bool {
	return s.CourseID != nil
}

// LearningObjectives parses the stored JSON list. A value that is not a JSON
// list of strings is returned as a single objective.
func (s *Syllabus) LearningObjectives() []string {
	if s.LearningObjectivesText == nil || strings.TrimSpace(*s.LearningObjectivesText) == "" {
		return []string{}
	}
	raw := *s.LearningObjectivesText

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{raw}
	}
	if items == nil {
		return []string{}
	}
	return items
}

// WeeklySchedule splits the stored text into one trimmed entry per line,
// skipping blank lines.
func (s *Syllabus) WeeklySchedule() []string {
	if s.WeeklyScheduleText == nil {
		return []string{}
	}
	lines := strings.Split(*s.WeeklyScheduleText, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// SyllabusDetails is a syllabus with its course context, when linked.
type SyllabusDetails struct {
	Syllabus
	Course             *CourseSummary `json:"course,omitempty"`
	LearningObjectives []string       `json:"learningObjectives,omitempty"`
	WeeklySchedule     []string       `json:"weeklySchedule,omitempty"`
}

// SyllabusDetailsFromRecord decodes a syllabus row joined with courses
// (courseCode, courseTitle, courseDepartment).
func SyllabusDetailsFromRecord(r Record) *SyllabusDetails {
	d := &SyllabusDetails{Syllabus: *SyllabusFromRecord(r)}
	if d.CourseID != nil && r.Has("courseCode") {
		d.Course = &CourseSummary{
			ID:         *d.CourseID,
			Code:       r.String("courseCode"),
			Title:      r.String("courseTitle"),
			Department: r.String("courseDepartment"),
		}
	}
	return d
}

// CourseCode returns the joined course code, or "" for unlinked syllabi.
func (d *SyllabusDetails) CourseCode() string {
	if d.Course == nil {
		return ""
	}
	return d.Course.Code
}

// WithParsedContent fills the parsed objective and schedule lists.
func (d *SyllabusDetails) WithParsedContent() *SyllabusDetails {
	d.LearningObjectives = d.Syllabus.LearningObjectives()
	d.WeeklySchedule = d.Syllabus.WeeklySchedule()
	return d
}

// CourseGroup is one course with its syllabi in academic-term order.
type CourseGroup struct {
	Course  CourseSummary      `json:"course"`
	Syllabi []*SyllabusDetails `json:"syllabi"`
}
