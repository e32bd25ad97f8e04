package errors

import "fmt"

// ValidationError reports a precondition that failed locally, before any
// network call was issued. It is deliberately outside the APIError
// taxonomy: the taxonomy is reserved for request-layer failures.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ValidationError[%s]: %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("ValidationError[%s]: %s", e.Code, e.Message)
}

// NewPreconditionNotMetError reports a domain precondition failure, e.g.
// submitting an application below the completeness threshold.
func NewPreconditionNotMetError(detail string) *ValidationError {
	return &ValidationError{
		Code:    "PRECONDITION_NOT_MET",
		Message: "Precondition not met",
		Detail:  detail,
	}
}

// NewFormValidationError reports form data that failed required-field
// validation against the program's schema.
func NewFormValidationError(detail string) *ValidationError {
	return &ValidationError{
		Code:    "FORM_VALIDATION_FAILED",
		Message: "Application form data is incomplete",
		Detail:  detail,
	}
}
