package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// messages maps "Struct.field" to the message shown for any failed rule on
// that field. Length limits fall back to the generic wording.
var messages = map[string]string{
	"CourseInput.code":         "Course code is required",
	"CourseInput.title":        "Course title is required",
	"CourseInput.department":   "Department is required",
	"CourseInput.credits":      "Valid credits value is required",
	"SyllabusInput.semester":   "Semester is required",
	"SyllabusInput.year":       fmt.Sprintf("Valid year between %d and %d is required", MinSyllabusYear, MaxSyllabusYear),
	"SyllabusInput.instructor": "Instructor name is required",
	"SyllabusInput.courseId":   "Course selection is required",
	"SyllabusInput.urlLink":    DriveURLMessage,
	"DocumentInput.title":      "Title is required",
	"DocumentInput.url":        "Please enter a valid URL starting with http://, https:// or ftp://",
	"DocumentInput.tagId":      "Please select a valid tag",
	"DocumentInput.syllabusId": "Please select a valid syllabus",
	"TagInput.name":            "Tag name is required",
}

// Validator returns the shared validator with the custom rules registered
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("drive_url", func(fl validator.FieldLevel) bool {
			return CompiledPatterns.DriveURL.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("doc_url", func(fl validator.FieldLevel) bool {
			return CompiledPatterns.DocumentURL.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Struct runs the tag rules of s and collects every failure into dst.
func Struct(s interface{}, dst *apperrors.ValidationError) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	for _, fe := range verrs {
		dst.Add(fe.Field(), messageFor(fe))
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	if fe.Tag() != "max" {
		if msg, ok := messages[fe.Namespace()]; ok {
			return msg
		}
	}

	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}
