/*
Package errs provides custom error types and application-level error code
constants for the HTTP surface of the relay.

The relay core itself reports failures with sentinel errors; these codes
exist for the JSON responses of the HTTP endpoints around it.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000
)
