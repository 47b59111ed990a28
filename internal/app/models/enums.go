package models

import (
	"strings"

	"github.com/yigit/docsystem/internal/pkg/apperrors"
)

// Semester is the academic term of a syllabus
type Semester string

const (
	SemesterSpring Semester = "Spring"
	SemesterSummer Semester = "Summer"
	SemesterFall   Semester = "Fall"
	SemesterWinter Semester = "Winter"
)

// Semesters lists the terms in calendar order
var Semesters = []Semester{SemesterSpring, SemesterSummer, SemesterFall, SemesterWinter}

// UnknownSemesterRank is the rank of any value outside the four terms.
const UnknownSemesterRank = 5

// Rank orders terms within a year: Spring 1, Summer 2, Fall 3, Winter 4, anything else 5.
func (s Semester) Rank() int {
	switch s {
	case SemesterSpring:
		return 1
	case SemesterSummer:
		return 2
	case SemesterFall:
		return 3
	case SemesterWinter:
		return 4
	default:
		return UnknownSemesterRank
	}
}

// DocumentType is the format of a document
type DocumentType string

const (
	DocumentTypePDF  DocumentType = "PDF"
	DocumentTypeEPUB DocumentType = "EPUB"
	DocumentTypeMOBI DocumentType = "MOBI"
	DocumentTypeDOCX DocumentType = "DOCX"
	DocumentTypeTXT  DocumentType = "TXT"
)

// DefaultDocumentType is what permissive coercion falls back to.
const DefaultDocumentType = DocumentTypePDF

// DocumentTypes is the recognized set, in display order.
var DocumentTypes = []DocumentType{
	DocumentTypePDF,
	DocumentTypeEPUB,
	DocumentTypeMOBI,
	DocumentTypeDOCX,
	DocumentTypeTXT,
}

// IsValid reports membership in the recognized set. Comparison is exact.
func (t DocumentType) IsValid() bool {
	for _, dt := range DocumentTypes {
		if t == dt {
			return true
		}
	}
	return false
}

func documentTypeNames() []string {
	names := make([]string, len(DocumentTypes))
	for i, dt := range DocumentTypes {
		names[i] = string(dt)
	}
	return names
}

// CoerceDocumentType is the permissive policy used on document create/update
// and by the junction store: the value is trimmed and uppercased, and anything
// outside the recognized set becomes PDF.
func CoerceDocumentType(raw string) DocumentType {
	t := DocumentType(strings.ToUpper(strings.TrimSpace(raw)))
	if t.IsValid() {
		return t
	}
	return DefaultDocumentType
}

// ParseDocumentType is the strict policy used when linking and filtering: the
// value is trimmed and uppercased, and anything outside the recognized set is
// rejected with ErrInvalidType.
func ParseDocumentType(raw string) (DocumentType, error) {
	t := DocumentType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", apperrors.NewInvalidTypeError(raw, documentTypeNames())
	}
	return t, nil
}

// ReadStatus is a user's progress on a document
type ReadStatus string

const (
	ReadStatusTodo     ReadStatus = "todo"
	ReadStatusReading  ReadStatus = "reading"
	ReadStatusFinished ReadStatus = "finished"
)

// InitialReadStatus is written when a document is created on behalf of a user.
const InitialReadStatus = ReadStatusTodo

// ReadStatuses is the recognized set
var ReadStatuses = []ReadStatus{ReadStatusTodo, ReadStatusReading, ReadStatusFinished}

// ParseReadStatus accepts only the recognized values. Matching is exact.
func ParseReadStatus(raw string) (ReadStatus, error) {
	for _, s := range ReadStatuses {
		if ReadStatus(raw) == s {
			return s, nil
		}
	}
	names := make([]string, len(ReadStatuses))
	for i, s := range ReadStatuses {
		names[i] = string(s)
	}
	return "", apperrors.NewInvalidStatusError(raw, names)
}
