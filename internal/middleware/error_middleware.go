package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/docsystem/internal/app/models/dto"
	"github.com/yigit/docsystem/internal/pkg/apperrors"
	"github.com/yigit/docsystem/internal/pkg/logger"
)

// --- Central Error Handling Middleware/Function ---

// message returns the CustomError message of err, or fallback
func message(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

func details(err error) interface{} {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && len(custom.Details) > 0 {
		return custom.Details
	}
	return nil
}

// HandleAPIError maps an error kind onto its HTTP status and error envelope
func HandleAPIError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError

	switch {
	case errors.As(err, &verr):
		fields := make([]dto.FieldMessage, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = dto.FieldMessage{Field: f.Field, Message: f.Message}
		}
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
			WithFields(fields).
			WithSeverity(dto.ErrorSeverityWarning)
		c.JSON(http.StatusBadRequest, dto.NewErrorAPIResponse(detail))
		return
	case errors.Is(err, apperrors.ErrInvalidType):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidType, message(err, "Invalid document type")).
			WithDetails(details(err))
		c.JSON(http.StatusBadRequest, dto.NewErrorAPIResponse(detail))
		return
	case errors.Is(err, apperrors.ErrInvalidStatus):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidStatus, message(err, "Invalid read status")).
			WithDetails(details(err))
		c.JSON(http.StatusBadRequest, dto.NewErrorAPIResponse(detail))
		return
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message(err, "Validation failed")),
		))
		return
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message(err, "Resource not found")),
		))
		return
	case errors.Is(err, apperrors.ErrAlreadyLinked):
		c.JSON(http.StatusConflict, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeAlreadyLinked, message(err, "Already linked")),
		))
		return
	case errors.Is(err, apperrors.ErrMismatch):
		c.JSON(http.StatusConflict, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeMismatch, message(err, "Association mismatch")),
		))
		return
	case apperrors.IsStorageFailure(err):
		logger.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("Storage failure")
		c.JSON(http.StatusInternalServerError, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "A database error occurred"),
		))
		return
	default:
		// Handle unknown errors
		logger.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		))
		return
	}
}
