package errors

import (
	"fmt"
	"net/http"

	apperrors "audio-minutes/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindBadRequest    ErrorKind = "bad_request"
	KindNotFound      ErrorKind = "not_found"
	KindQuotaExceeded ErrorKind = "quota_exceeded"
	KindInternal      ErrorKind = "internal"
)

// QuotaMessage is shown to clients when the provider quota is used up
const QuotaMessage = "Daily usage quota exceeded. Please try again tomorrow."

// APIError represents a structured API error response. Detail carries the
// same text as Message for clients that read the "detail" field.
type APIError struct {
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
	Detail    string    `json:"detail"`
	RequestID string    `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindQuotaExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind ErrorKind, message string) *APIError {
	return &APIError{Kind: kind, Message: message, Detail: message}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return newError(KindBadRequest, message)
}

// NewNotFoundError is returned for paths no route serves
func NewNotFoundError(path string) *APIError {
	return newError(KindNotFound, fmt.Sprintf("route %s not found", path))
}

// NewQuotaExceededError creates the 429 response body
func NewQuotaExceededError() *APIError {
	return newError(KindQuotaExceeded, QuotaMessage)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return newError(KindInternal, message)
}

// FromPipeline maps a processing error to its API error. Quota errors get
// their own kind; everything else is internal and keeps the error text.
func FromPipeline(err error) *APIError {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	if apperrors.IsQuotaExceeded(err) {
		return NewQuotaExceededError()
	}
	return NewInternalError(fmt.Sprintf("An error occurred while processing: %s", err.Error()))
}
