package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors into client-facing errors.

func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Predefined errors for the frequent static cases.

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"Account is pending verification by an administrator",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"user",
	"Email already exists",
	http.StatusConflict,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrAlreadyVerified = New(
	CodeConflict,
	"verification",
	"Already verified",
	http.StatusConflict,
)

var ErrAlreadyApplied = New(
	CodeConflict,
	"application",
	"You may have already applied to this job",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

// ErrRateLimited is built per-denial so the retry hint can ride along.
func ErrRateLimited(retryAfterSeconds int) *AppError {
	return New(CodeLimitExceeded, "ratelimit", "Too many requests, slow down", http.StatusTooManyRequests).
		WithDetails(map[string]int{"retry_after": retryAfterSeconds})
}
