package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by the pipeline. Stage errors wrap one of these so
// callers can branch with errors.Is.
var (
	ErrConfiguration = New("configuration error")
	ErrConversion    = New("audio conversion failed")
	ErrUpload        = New("upload failed")
	ErrSummarization = New("summarization failed")
	ErrQuotaExceeded = New("daily usage quota exceeded, please try again tomorrow")
)

// Error represents a standardized error
type Error struct {
	message string
	kind    *Error
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// WithKind tags cause with one of the kind sentinels. The returned error
// matches kind under errors.Is and still unwraps to cause.
func WithKind(kind *Error, cause error, message string) error {
	return &Error{
		message: message,
		kind:    kind,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.kind != nil && e.kind.message == t.message {
		return true
	}
	return e.message == t.message
}

// Kind returns the kind sentinel carried by err, or nil.
func Kind(err error) *Error {
	for _, k := range []*Error{ErrQuotaExceeded, ErrConversion, ErrUpload, ErrSummarization, ErrConfiguration} {
		if stderrors.Is(err, k) {
			return k
		}
	}
	return nil
}

// IsQuotaExceeded reports whether err is a quota/rate-limit failure.
func IsQuotaExceeded(err error) bool {
	return stderrors.Is(err, ErrQuotaExceeded)
}

var quotaMarkers = []string{"quota", "limit", "429"}

// IsQuotaMessage is the text fallback for providers that give no structured
// status: it matches "quota", "limit" or "429" case-insensitively.
func IsQuotaMessage(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range quotaMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Conversion wraps a transcoding failure.
func Conversion(cause error, format string, args ...interface{}) error {
	return WithKind(ErrConversion, cause, fmt.Sprintf(format, args...))
}

// Upload wraps a remote upload failure.
func Upload(cause error) error {
	return WithKind(ErrUpload, cause, ErrUpload.message)
}

// Summarization wraps a model invocation failure.
func Summarization(cause error, stage string) error {
	return WithKind(ErrSummarization, cause, fmt.Sprintf("%s: %s", ErrSummarization.message, stage))
}

// QuotaExceeded wraps a provider error recognized as quota exhaustion.
func QuotaExceeded(cause error) error {
	return WithKind(ErrQuotaExceeded, cause, ErrQuotaExceeded.message)
}

// Configuration wraps a startup configuration failure.
func Configuration(cause error, message string) error {
	return WithKind(ErrConfiguration, cause, message)
}

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return WithKind(ErrConfiguration, nil, fmt.Sprintf("%s is required", field))
}
