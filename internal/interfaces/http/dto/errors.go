package dto

import (
	"net/http"

	"github.com/money/backend/internal/domain/shared"
)

// Error codes returned in the response envelope.
// Format: ERR_<DESCRIPTION>
const (
	ErrCodeInternal            = "ERR_INTERNAL"
	ErrCodeValidation          = "ERR_VALIDATION"
	ErrCodeBadRequest          = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON         = "ERR_INVALID_JSON"
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeAlreadyDeleted      = "ERR_ALREADY_DELETED"
	ErrCodeNoOp                = "ERR_NO_OP"
	ErrCodeCurrencyMismatch    = "ERR_CURRENCY_MISMATCH"
	ErrCodeRequestTooLarge     = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeAlreadyDeleted:   http.StatusUnprocessableEntity,
	ErrCodeNoOp:             http.StatusUnprocessableEntity,
	ErrCodeCurrencyMismatch: http.StatusUnprocessableEntity,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// domainErrorCodes maps shared.DomainError codes to API codes.
// Codes not listed here are internal failures.
var domainErrorCodes = map[string]string{
	shared.CodeValidation:          ErrCodeValidation,
	shared.CodeNotFound:            ErrCodeNotFound,
	shared.CodeConcurrencyConflict: ErrCodeConcurrencyConflict,
	shared.CodeAlreadyDeleted:      ErrCodeAlreadyDeleted,
	shared.CodeNoOp:                ErrCodeNoOp,
	shared.CodeCurrencyMismatch:    ErrCodeCurrencyMismatch,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// CodeForDomainError converts a domain error code to its API code
func CodeForDomainError(code string) string {
	if apiCode, ok := domainErrorCodes[code]; ok {
		return apiCode
	}
	return ErrCodeInternal
}
