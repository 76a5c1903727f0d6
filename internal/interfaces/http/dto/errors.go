package dto

import (
	"net/http"
	"strings"
)

// Error codes carried in the error envelope. Domain errors keep their own
// code; the ones below are produced by the HTTP layer itself.

// General error codes
const (
	// ErrCodeInternal is used for unexpected failures
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request binding fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	// ErrCodeRateLimited is used when an office exceeds its request budget
	ErrCodeRateLimited = "RATE_LIMITED"
)

// Session error codes
const (
	// ErrCodeSessionRequired is used when no office could be resolved
	ErrCodeSessionRequired = "SESSION_REQUIRED"
	// ErrCodeTokenExpired is used when the access token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeTokenRevoked is used when the access token was revoked
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
	// ErrCodeForbidden is used for records of another office
	ErrCodeForbidden = "FORBIDDEN"
)

// Record error codes
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeDuplicateAttachment = "DUPLICATE_ATTACHMENT"
)

// Backend failure codes
const (
	ErrCodeFetchFailed         = "FETCH_FAILED"
	ErrCodeSaveFailed          = "SAVE_FAILED"
	ErrCodeExportFailed        = "EXPORT_FAILED"
	ErrCodeUploadFailed        = "UPLOAD_FAILED"
	ErrCodePrintFailed         = "PRINT_FAILED"
	ErrCodePrintingUnavailable = "PRINTING_UNAVAILABLE"
	ErrCodeStorageUnavailable  = "STORAGE_UNAVAILABLE"
	ErrCodeFeedUnavailable     = "FEED_UNAVAILABLE"
	ErrCodeTooManyStreams      = "TOO_MANY_STREAMS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,

	ErrCodeSessionRequired: http.StatusUnauthorized,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenRevoked:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeDuplicateAttachment: http.StatusConflict,

	ErrCodeFetchFailed:         http.StatusServiceUnavailable,
	ErrCodeSaveFailed:          http.StatusServiceUnavailable,
	ErrCodeExportFailed:        http.StatusInternalServerError,
	ErrCodeUploadFailed:        http.StatusServiceUnavailable,
	ErrCodePrintFailed:         http.StatusInternalServerError,
	ErrCodePrintingUnavailable: http.StatusServiceUnavailable,
	ErrCodeStorageUnavailable:  http.StatusServiceUnavailable,
	ErrCodeFeedUnavailable:     http.StatusServiceUnavailable,
	ErrCodeTooManyStreams:      http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code. Any
// INVALID_* code not listed explicitly is a 400; unknown codes are a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
