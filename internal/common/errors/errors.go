// Package errors provides the closed error taxonomy shared by the API
// client and the domain services. Every failure surfaced by the request
// layer is an *APIError carrying one of the codes below; no raw
// transport error escapes the client boundary.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrCodeNetwork         ErrorCode = "NETWORK_ERROR"
	ErrCodeInvalidResponse ErrorCode = "INVALID_RESPONSE"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeServerError     ErrorCode = "SERVER_ERROR"
	ErrCodeHTTP            ErrorCode = "HTTP_ERROR"
	ErrCodeDecoding        ErrorCode = "DECODING_ERROR"
	ErrCodeEncoding        ErrorCode = "ENCODING_ERROR"
)

// APIError is a structured client-side error.
type APIError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"` // server-provided detail, when present
	StatusCode int       `json:"statusCode,omitempty"`
	Retryable  bool      `json:"retryable"`
	cause      error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("APIError[%s]: %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("APIError[%s]: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// UserMessage returns the text suitable for display: the server-provided
// detail when present, otherwise the canonical description of the kind.
func (e *APIError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}

// ==========================
// Constructors
// ==========================

// NewInvalidRequestError reports a malformed URL or descriptor.
func NewInvalidRequestError(detail string) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidRequest,
		Message: "Invalid request",
		Detail:  detail,
	}
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(err error) *APIError {
	return &APIError{
		Code:      ErrCodeNetwork,
		Message:   "Network error",
		Retryable: true,
		cause:     err,
	}
}

// NewInvalidResponseError reports a response that is not well-formed HTTP.
func NewInvalidResponseError(err error) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidResponse,
		Message: "Invalid response from server",
		cause:   err,
	}
}

func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:       ErrCodeUnauthorized,
		Message:    "Authentication required",
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError() *APIError {
	return &APIError{
		Code:       ErrCodeForbidden,
		Message:    "Access denied",
		StatusCode: http.StatusForbidden,
	}
}

func NewNotFoundError() *APIError {
	return &APIError{
		Code:       ErrCodeNotFound,
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}
}

func NewServerError(statusCode int) *APIError {
	return &APIError{
		Code:       ErrCodeServerError,
		Message:    "Server error",
		StatusCode: statusCode,
		Retryable:  true,
	}
}

// NewHTTPError covers any non-2xx status outside the dedicated kinds.
// detail is the server's `detail` field when the error body decoded.
func NewHTTPError(statusCode int, detail string) *APIError {
	return &APIError{
		Code:       ErrCodeHTTP,
		Message:    fmt.Sprintf("Request failed with status %d", statusCode),
		Detail:     detail,
		StatusCode: statusCode,
	}
}

func NewDecodingError(err error) *APIError {
	return &APIError{
		Code:    ErrCodeDecoding,
		Message: "Failed to decode response",
		cause:   err,
	}
}

func NewEncodingError(err error) *APIError {
	return &APIError{
		Code:    ErrCodeEncoding,
		Message: "Failed to encode request body",
		cause:   err,
	}
}

// ==========================
// Classification helpers
// ==========================

// FromStatus maps a non-2xx HTTP status to its taxonomy kind.
func FromStatus(statusCode int, detail string) *APIError {
	switch {
	case statusCode == http.StatusUnauthorized:
		return NewUnauthorizedError()
	case statusCode == http.StatusForbidden:
		return NewForbiddenError()
	case statusCode == http.StatusNotFound:
		return NewNotFoundError()
	case statusCode >= 500 && statusCode <= 599:
		return NewServerError(statusCode)
	default:
		return NewHTTPError(statusCode, detail)
	}
}

// AsAPIError unwraps err into an *APIError if it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code ErrorCode) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Code == code
}

// IsUnauthorized reports whether err is the 401 taxonomy kind.
func IsUnauthorized(err error) bool {
	return IsCode(err, ErrCodeUnauthorized)
}
