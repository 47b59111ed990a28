package dto

import "fmt"

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Resource errors
	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeAlreadyLinked    ErrorCode = "RES_002"
	ErrorCodeMismatch         ErrorCode = "RES_003"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInvalidType      ErrorCode = "VAL_002"
	ErrorCodeInvalidStatus    ErrorCode = "VAL_003"
	ErrorCodeInvalidRequest   ErrorCode = "VAL_004"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
	ErrorCodeDatabaseError  ErrorCode = "SRV_002"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

// Severity levels
const (
	ErrorSeverityInfo    ErrorSeverity = "INFO"
	ErrorSeverityWarning ErrorSeverity = "WARNING"
	ErrorSeverityError   ErrorSeverity = "ERROR"
)

// FieldMessage is one field failure shown next to its form input
type FieldMessage struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Severity  ErrorSeverity  `json:"severity"`
	Fields    []FieldMessage `json:"fields,omitempty"`
	Details   interface{}    `json:"details,omitempty"`
	DebugInfo string         `json:"debugInfo,omitempty"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

// WithFields attaches per-field validation messages
func (e *ErrorDetail) WithFields(fields []FieldMessage) *ErrorDetail {
	e.Fields = fields
	return e
}

// WithSeverity sets the severity level of the error
func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// WithDebugInfo adds debug information (for development/testing only)
func (e *ErrorDetail) WithDebugInfo(format string, args ...interface{}) *ErrorDetail {
	e.DebugInfo = fmt.Sprintf(format, args...)
	return e
}
