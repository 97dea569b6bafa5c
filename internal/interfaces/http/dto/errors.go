package dto

import (
	"net/http"
	"strings"
)

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when input fails validation
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeExceedsBalance is used when a payment exceeds a receivable's balance
	ErrCodeExceedsBalance = "ERR_EXCEEDS_BALANCE"
	// ErrCodeExceedsTotalBalance is used when a payment exceeds the customer's total open balance
	ErrCodeExceedsTotalBalance = "ERR_EXCEEDS_TOTAL_BALANCE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:        http.StatusUnprocessableEntity,
	ErrCodeExceedsBalance:      http.StatusUnprocessableEntity,
	ErrCodeExceedsTotalBalance: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not known.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to standardized API codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"RECEIVABLE_NOT_FOUND":  ErrCodeNotFound,
	"ITEM_NOT_FOUND":        ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT":  ErrCodeConcurrencyConflict,
	"INVALID_STATE":         ErrCodeInvalidState,
	"INVALID_TRANSITION":    ErrCodeInvalidState,
	"ALREADY_CONFIRMED":     ErrCodeInvalidState,
	"NO_ITEMS":              ErrCodeInvalidState,
	"EXCEEDS_BALANCE":       ErrCodeExceedsBalance,
	"EXCEEDS_TOTAL_BALANCE": ErrCodeExceedsTotalBalance,
	"INVALID_INPUT":         ErrCodeValidation,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// Codes describing malformed field values map to validation; unknown codes
// fall through as business rule violations.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	if strings.HasPrefix(code, "INVALID_") {
		return ErrCodeValidation
	}
	return ErrCodeBusinessRule
}
