package apierrors

import (
	"fmt"
	"net/http"
)

// APIError is an error with the HTTP status and machine-readable code sent to clients
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Error codes returned to API clients
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeInternalError       = "INTERNAL_ERROR"
	CodeRateLimited         = "RATE_LIMITED"
	CodeLinkNotFound        = "LINK_NOT_FOUND"
	CodeInvalidTargetURL    = "INVALID_TARGET_URL"
	CodeCodeAllocation      = "CODE_ALLOCATION_FAILED"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeInvalidOrderID      = "INVALID_ORDER_ID"
	CodeAlreadyAttributed   = "ALREADY_ATTRIBUTED"
	CodeReferralNotFound    = "REFERRAL_NOT_FOUND"
	CodeWithdrawNotFound    = "WITHDRAW_NOT_FOUND"
	CodePartnerNotFound     = "PARTNER_NOT_FOUND"
	CodeInvalidStatus       = "INVALID_STATUS"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeConcurrentUpdate    = "CONCURRENT_UPDATE"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeBankDetailsRequired = "BANK_DETAILS_REQUIRED"
	CodeInvalidRate         = "INVALID_RATE"
	CodeInvalidProfile      = "INVALID_PROFILE"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeDatabaseUnavailable = "DATABASE_UNAVAILABLE"
)

// NotFound creates a 404 error
func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

// BadRequest creates a 400 error
func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

// Unauthorized creates a 401 error
func Unauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

// Forbidden creates a 403 error
func Forbidden(message string) *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

// Conflict creates a 409 error
func Conflict(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Code: code, Message: message}
}

// Unprocessable creates a 422 error
func Unprocessable(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusUnprocessableEntity, Code: code, Message: message}
}

// TooManyRequests creates a 429 error
func TooManyRequests(message string) *APIError {
	return &APIError{StatusCode: http.StatusTooManyRequests, Code: CodeRateLimited, Message: message}
}

// ServiceUnavailable creates a 503 error that keeps the cause for logging
func ServiceUnavailable(code, message string, err error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, Err: err}
}

// InternalError creates a sanitized 500 error. The cause is never sent to the client.
func InternalError(err error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Err:        err,
	}
}
