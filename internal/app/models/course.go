package models

import "time"

// Course is a catalogue entry, e.g. CS101. Syllabi reference it by CourseID.
type Course struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Department  string    `json:"department"`
	Credits     int       `json:"credits"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CourseFromRecord decodes a store record
func CourseFromRecord(r Record) *Course {
	return &Course{
		ID:          r.Int64("id"),
		Code:        r.String("code"),
		Title:       r.String("title"),
		Description: r.StringPtr("description"),
		Department:  r.String("department"),
		Credits:     r.Int("credits"),
		CreatedAt:   r.Time("createdAt"),
		UpdatedAt:   r.Time("updatedAt"),
	}
}

// Fields returns the writable columns keyed by field name
func (c *Course) Fields() Record {
	return Record{
		"code":        c.Code,
		"title":       c.Title,
		"description": c.Description,
		"department":  c.Department,
		"credits":     c.Credits,
	}
}

// CourseSummary is the course context embedded in syllabus listings.
type CourseSummary struct {
	ID         int64  `json:"id"`
	Code       string `json:"code"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

// CourseStats aggregates the syllabi of one course.
type CourseStats struct {
	Course       CourseSummary `json:"course"`
	SyllabiCount int64         `json:"syllabiCount"`
	FirstYear    *int          `json:"firstYear,omitempty"`
	LastYear     *int          `json:"lastYear,omitempty"`
	Instructors  []string      `json:"instructors"`
}

// CourseStatsFromRecord decodes one row of the stats aggregate
func CourseStatsFromRecord(r Record) CourseStats {
	return CourseStats{
		Course: CourseSummary{
			ID:         r.Int64("id"),
			Code:       r.String("code"),
			Title:      r.String("title"),
			Department: r.String("department"),
		},
		SyllabiCount: r.Int64("syllabiCount"),
		FirstYear:    r.IntPtr("firstYear"),
		LastYear:     r.IntPtr("lastYear"),
		Instructors:  r.Strings("instructors"),
	}
}
