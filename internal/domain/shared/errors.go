package shared

import "fmt"

// DomainError represents a domain-level error. Message is always safe to show
// to an end user; raw driver errors never end up in it.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels compare equal
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "The requested record could not be found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Some of the information provided is not valid")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "This action is not allowed in the record's current state")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "The record was changed by someone else. Please reload and try again")
	ErrSessionRequired     = NewDomainError("SESSION_REQUIRED", "Your session has expired. Please sign in again")
	ErrForbidden           = NewDomainError("FORBIDDEN", "You do not have access to this record")
)

// NewFetchError builds the user-facing error for a failed load of a resource
// collection, e.g. NewFetchError("payables").
func NewFetchError(resource string) *DomainError {
	return NewDomainError("FETCH_FAILED", fmt.Sprintf("We couldn't load %s. Please try again", resource))
}

// NewSaveError builds the user-facing error for a failed write
func NewSaveError(resource string) *DomainError {
	return NewDomainError("SAVE_FAILED", fmt.Sprintf("We couldn't save the %s. Please try again", resource))
}
