package gzjson

import (
	"errors"
	"fmt"
)

// Error code constants for every failure condition the codec can surface.
const (
	CodeFileNotFound     = "FILE_NOT_FOUND"
	CodeGzipInvalid      = "GZIP_INVALID"
	CodeJSONInvalid      = "JSON_INVALID"
	CodeReadFailed       = "READ_FAILED"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeWriteFailed      = "WRITE_FAILED"
	CodeUnsupportedValue = "UNSUPPORTED_VALUE"
)

// Error represents a gzjson error with a code, a message, and the offending
// file path. Path is empty for stream and in-memory operations.
// It implements the error interface and supports error wrapping.
type Error struct {
	wrapped error
	Code    string
	Message string
	Path    string
}

// Error returns the error message, implementing the error interface.
func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error, supporting errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// NewError creates a new gzjson error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapError creates a new gzjson error that wraps an underlying error.
func WrapError(code, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		wrapped: err,
	}
}

// ErrorCode extracts the error code from an error.
// Returns an empty string if the error is not a gzjson error.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var gzErr *Error
	if errors.As(err, &gzErr) {
		return gzErr.Code
	}
	return ""
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// IsReadError reports whether err is a read-side codec failure: a missing
// file, a malformed gzip container, malformed JSON content, or any other
// I/O failure during read.
func IsReadError(err error) bool {
	switch ErrorCode(err) {
	case CodeFileNotFound, CodeGzipInvalid, CodeJSONInvalid, CodeReadFailed:
		return true
	}
	return false
}

// IsWriteError reports whether err is a write-side codec failure: a
// permission or I/O failure while producing the file. Unsupported-value
// failures are deliberately excluded; those signal a caller bug, not an
// environment problem, and callers may want to retry one but never the
// other.
func IsWriteError(err error) bool {
	switch ErrorCode(err) {
	case CodePermissionDenied, CodeWriteFailed:
		return true
	}
	return false
}

// IsUnsupportedValue reports whether err indicates a document containing a
// value that cannot be represented in the JSON data model.
func IsUnsupportedValue(err error) bool {
	return ErrorCode(err) == CodeUnsupportedValue
}

// Convenience constructors for each error code

// FileNotFound creates a FILE_NOT_FOUND error.
func FileNotFound(path string) *Error {
	return &Error{
		Code:    CodeFileNotFound,
		Message: fmt.Sprintf("file %q not found", path),
		Path:    path,
	}
}

// GzipInvalid creates a GZIP_INVALID error.
func GzipInvalid(path string, err error) *Error {
	message := "invalid gzip data"
	if path != "" {
		message = fmt.Sprintf("file %q is not valid gzip data", path)
	}
	return &Error{
		Code:    CodeGzipInvalid,
		Message: message,
		Path:    path,
		wrapped: err,
	}
}

// JSONInvalid creates a JSON_INVALID error.
func JSONInvalid(path string, err error) *Error {
	message := "invalid JSON document"
	if path != "" {
		message = fmt.Sprintf("invalid JSON document in %q", path)
	}
	return &Error{
		Code:    CodeJSONInvalid,
		Message: message,
		Path:    path,
		wrapped: err,
	}
}

// ReadFailed creates a READ_FAILED error wrapping the underlying cause.
func ReadFailed(path string, err error) *Error {
	message := "read failed"
	if path != "" {
		message = fmt.Sprintf("failed to read %q", path)
	}
	return &Error{
		Code:    CodeReadFailed,
		Message: message,
		Path:    path,
		wrapped: err,
	}
}

// PermissionDenied creates a PERMISSION_DENIED error.
func PermissionDenied(path string) *Error {
	return &Error{
		Code:    CodePermissionDenied,
		Message: fmt.Sprintf("permission denied writing to %q", path),
		Path:    path,
	}
}

// WriteFailed creates a WRITE_FAILED error wrapping the underlying cause.
func WriteFailed(path string, err error) *Error {
	message := "write failed"
	if path != "" {
		message = fmt.Sprintf("failed to write %q", path)
	}
	return &Error{
		Code:    CodeWriteFailed,
		Message: message,
		Path:    path,
		wrapped: err,
	}
}

// UnsupportedValue creates an UNSUPPORTED_VALUE error.
func UnsupportedValue(path string, err error) *Error {
	return &Error{
		Code:    CodeUnsupportedValue,
		Message: "document contains a value that cannot be represented as JSON",
		Path:    path,
		wrapped: err,
	}
}
