// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Input errors.
var (
	// ErrEmptyMessage indicates the inbound message carried no text.
	ErrEmptyMessage = errors.New("message text is empty")

	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")
)

// Augmentation errors. These never leave the assistant: every call site
// converts them into the local heuristic path.
var (
	// ErrAugmentationUnavailable indicates the AI augmentation call failed.
	ErrAugmentationUnavailable = errors.New("ai augmentation unavailable")

	// ErrInvalidAugmentation indicates the AI returned a payload that failed validation.
	ErrInvalidAugmentation = errors.New("ai augmentation payload rejected")

	// ErrClientDisabled indicates a client or feature is disabled.
	ErrClientDisabled = errors.New("client disabled")

	// ErrCircuitBreakerOpen indicates the circuit breaker has tripped and requests are blocked.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

	// ErrEmptyResponse indicates an empty response was received.
	ErrEmptyResponse = errors.New("empty response")
)

// Validation errors.
var (
	// ErrValidation indicates a category-specific hard precondition failed at finalize time.
	ErrValidation = errors.New("validation failed")
)

// Persistence errors.
var (
	// ErrPersistence indicates the service request could not be stored.
	ErrPersistence = errors.New("persistence failed")

	// ErrUserNotFound indicates the requester profile does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound is a generic not found error.
	ErrNotFound = errors.New("not found")
)

// Rate limiting errors.
var (
	// ErrRateLimited indicates rate limiting was triggered.
	ErrRateLimited = errors.New("rate limited")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
