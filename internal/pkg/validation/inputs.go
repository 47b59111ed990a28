package validation

import (
	"fmt"
	"time"

	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
	"github.com/yigit/docsystem/internal/pkg/helpers"
)

// ValidateCourse normalizes and checks a course input. A blank description
// is stored as NULL.
func ValidateCourse(in *dto.CourseInput) error {
	in.Normalize()
	in.Description = helpers.NullIfBlank(in.Description)
	verr := apperrors.NewValidationError()
	if err := Struct(in, verr); err != nil {
		return err
	}
	return verr.OrNil()
}

// ValidateSyllabus normalizes and checks a syllabus input. An empty link or
// schedule is treated as absent.
func ValidateSyllabus(in *dto.SyllabusInput) error {
	in.Normalize()
	in.URLLink = helpers.NullIfBlank(in.URLLink)
	in.WeeklySchedule = helpers.NullIfBlank(in.WeeklySchedule)
	verr := apperrors.NewValidationError()
	if err := Struct(in, verr); err != nil {
		return err
	}
	return verr.OrNil()
}

// ValidateDocument normalizes and checks a document input and returns the
// parsed publishing year, nil when none was given. The type is not checked
// here; creation coerces it.
func ValidateDocument(in *dto.DocumentInput, now time.Time) (*int, error) {
	in.Normalize()
	in.Description = helpers.NullIfBlank(in.Description)
	verr := apperrors.NewValidationError()
	if err := Struct(in, verr); err != nil {
		return nil, err
	}

	var year *int
	if in.PublishingYear != "" {
		maxYear := now.Year()
		if y, ok := ParseYear(in.PublishingYear, MinPublishingYear, maxYear); ok {
			year = &y
		} else {
			verr.Add("publishingYear", fmt.Sprintf("Publishing year must be a number between %d and %d", MinPublishingYear, maxYear))
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return year, nil
}

// ValidateTag normalizes and checks a tag input
func ValidateTag(in *dto.TagInput) error {
	in.Normalize()
	verr := apperrors.NewValidationError()
	if err := Struct(in, verr); err != nil {
		return err
	}
	return verr.OrNil()
}
