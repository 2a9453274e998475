package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"qalib/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrParse):
		return http.StatusBadRequest, "PARSE_ERROR", "input could not be parsed"
	case errors.Is(err, domain.ErrEmptyInput):
		return http.StatusBadRequest, "EMPTY_INPUT", "input contains no usable data"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported format; allowed: docx, xlsx, pdf templates and json, yaml, csv data"
	case errors.Is(err, domain.ErrNotFillable):
		return http.StatusUnprocessableEntity, "NOT_FILLABLE", "PDF has no fillable AcroForm fields"
	case errors.Is(err, domain.ErrNoJobsFound):
		return http.StatusUnprocessableEntity, "NO_JOBS_FOUND", "no job blocks detected in the source document"
	case errors.Is(err, domain.ErrFontMissing):
		return http.StatusInternalServerError, "FONT_MISSING", "required report font files are not available"
	case errors.Is(err, domain.ErrExternalService):
		return http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR", "AI extraction service failed"
	case errors.Is(err, domain.ErrSessionInvalid):
		return http.StatusUnauthorized, "SESSION_INVALID", "session token is invalid or expired"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrStoreFailed):
		return http.StatusInternalServerError, "STORE_FAILED", "storing the generated document failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
