// Package apperror holds the typed errors handlers turn into JSON responses.
package apperror

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeAuth               = "AUTH_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodePackageNotFound    = "PACKAGE_NOT_FOUND"
	CodeBookingNotFound    = "BOOKING_NOT_FOUND"
	CodePackageHasBookings = "PACKAGE_HAS_BOOKINGS"
	CodeDuplicate          = "DUPLICATE"
)

type ValidationError struct {
	Message string
	Field   string
	Code    string
	Status  int
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError returns a 400 error. An empty code defaults to VALIDATION_ERROR.
func NewValidationError(message, field, code string) *ValidationError {
	if code == "" {
		code = CodeValidation
	}
	return &ValidationError{Message: message, Field: field, Code: code, Status: http.StatusBadRequest}
}

// NewNotFoundError returns a ValidationError that renders as 404.
func NewNotFoundError(message, code string) *ValidationError {
	if code == "" {
		code = CodeNotFound
	}
	return &ValidationError{Message: message, Code: code, Status: http.StatusNotFound}
}

// Wrap keeps err reachable through errors.Is while exposing only message.
func Wrap(err error, message string) *ValidationError {
	return &ValidationError{Message: message, Code: CodeValidation, Status: http.StatusBadRequest, Err: err}
}

type AuthenticationError struct {
	Message string
	Code    string
}

func (e *AuthenticationError) Error() string { return e.Message }

func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message, Code: CodeAuth}
}

type response struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
}

// Status maps err to the HTTP status Respond would use.
func Status(err error) int {
	var ve *ValidationError
	var ae *AuthenticationError
	switch {
	case errors.As(err, &ve):
		if ve.Status != 0 {
			return ve.Status
		}
		return http.StatusBadRequest
	case errors.As(err, &ae):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Respond aborts the request with the JSON body matching err.
// Unknown errors never leak their message.
func Respond(ctx *gin.Context, err error) {
	var ve *ValidationError
	var ae *AuthenticationError
	body := response{
		Error:   "Internal Server Error",
		Message: "An unexpected error occurred",
		Code:    CodeInternal,
	}
	switch {
	case errors.As(err, &ve):
		body = response{Error: "Validation Error", Message: ve.Message, Code: ve.Code, Field: ve.Field}
		if ve.Status == http.StatusNotFound {
			body.Error = "Not Found"
		}
	case errors.As(err, &ae):
		body = response{Error: "Authentication Error", Message: ae.Message, Code: ae.Code}
	default:
		log.Printf("Unhandled error on %s %s: %s\n", ctx.Request.Method, ctx.FullPath(), err.Error())
	}
	ctx.AbortWithStatusJSON(Status(err), body)
}
