// Package errors renders API failures as {code, message, details} bodies.
package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError is the JSON body of every non-2xx response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

type statusDefaults struct {
	code    string
	message string
}

var defaults = map[int]statusDefaults{
	http.StatusBadRequest:          {ErrCodeInvalidInput, "Invalid request"},
	http.StatusUnauthorized:        {ErrCodeUnauthorized, "Authentication required"},
	http.StatusForbidden:           {ErrCodeForbidden, "Access denied"},
	http.StatusNotFound:            {ErrCodeNotFound, "Resource not found"},
	http.StatusConflict:            {ErrCodeConflict, "Resource conflict"},
	http.StatusInternalServerError: {ErrCodeInternalError, "Internal server error"},
	http.StatusServiceUnavailable:  {ErrCodeServiceUnavailable, "Service temporarily unavailable"},
}

// RespondWithError writes err with statusCode and aborts the handler chain.
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.AbortWithStatusJSON(statusCode, err)
}

func respond(c *gin.Context, status int, message string, details interface{}) {
	d := defaults[status]
	if message == "" {
		message = d.message
	}
	RespondWithError(c, status, &APIError{Code: d.code, Message: message, Details: details})
}

func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, message, nil)
}

func Forbidden(c *gin.Context, message string) {
	respond(c, http.StatusForbidden, message, nil)
}

func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, message, nil)
}

func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, message, nil)
}

// BadRequestWithDetails is BadRequest with a details payload, e.g. the
// offending field.
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	respond(c, http.StatusBadRequest, message, details)
}

func Conflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, message, nil)
}

// InternalError hides the cause from the client. Callers log it.
func InternalError(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, message, nil)
}

func ServiceUnavailable(c *gin.Context, message string) {
	respond(c, http.StatusServiceUnavailable, message, nil)
}
