package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InvalidInput        ErrorCode = "invalid_input"
	InvalidAmount       ErrorCode = "invalid_amount"
	InvalidStatus       ErrorCode = "invalid_status"
	Unauthorized        ErrorCode = "unauthorized"
	UserNotFound        ErrorCode = "user_not_found"
	AccountNotFound     ErrorCode = "account_not_found"
	TransactionNotFound ErrorCode = "transaction_not_found"
	InsufficientFunds   ErrorCode = "insufficient_funds"
	DuplicateUser       ErrorCode = "duplicate_user"
	InternalError       ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// HTTPStatus maps the error code to the response status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case InvalidInput, InvalidAmount, InvalidStatus, InsufficientFunds:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case UserNotFound, AccountNotFound, TransactionNotFound:
		return http.StatusNotFound
	case DuplicateUser:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrUserNotFound        = NewAppError(UserNotFound, "user not found")
	ErrAccountNotFound     = NewAppError(AccountNotFound, "account not found")
	ErrTransactionNotFound = NewAppError(TransactionNotFound, "transaction not found")
	ErrInsufficientFunds   = NewAppError(InsufficientFunds, "insufficient balance")
	ErrDuplicateUser       = NewAppError(DuplicateUser, "username already taken")
	ErrUnauthorized        = NewAppError(Unauthorized, "missing or invalid credentials")
)
