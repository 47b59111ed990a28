package validation

import (
	"regexp"
	"strconv"
)

// Validation rule patterns
var (
	// DriveURLPattern accepts Google Drive file and folder links
	DriveURLPattern = `^https://drive\.google\.com/(open\?id=|file/d/|uc\?id=|drive/folders/)[a-zA-Z0-9_-]+(/(view|edit|preview))?$`

	// DocumentURLPattern accepts absolute http, https and ftp URLs
	DocumentURLPattern = `(?i)^(https?|ftp)://[^\s/$.?#].[^\s]*$`

	MinSyllabusYear   = 2020
	MaxSyllabusYear   = 2030
	MinPublishingYear = 1000
)

// DriveURLMessage lists the accepted link formats
const DriveURLMessage = "Please enter a valid Google Drive URL. Accepted formats: /open?id=..., /file/d/.../view, /uc?id=..., or /drive/folders/..."

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	DriveURL    *regexp.Regexp
	DocumentURL *regexp.Regexp
}{
	DriveURL:    regexp.MustCompile(DriveURLPattern),
	DocumentURL: regexp.MustCompile(DocumentURLPattern),
}

// NumericValidation checks an integer against an inclusive range
type NumericValidation struct {
	Value    int
	Min      int
	Max      int
	Required bool
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{
		Value:    value,
		Required: true,
	}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.Value < v.Min {
		return false
	}
	if v.Max != 0 && v.Value > v.Max {
		return false
	}
	return true
}

// ParseYear parses text as a year inside [min, max]. ok is false for
// non-numeric input or an out-of-range value.
func ParseYear(text string, min, max int) (year int, ok bool) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	if !NewNumericValidation(n).WithMin(min).WithMax(max).Validate() {
		return 0, false
	}
	return n, true
}
