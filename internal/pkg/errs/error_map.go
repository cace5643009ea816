/*
Package errs provides custom error types and application-level error code
constants.

This file defines the map from error codes to the CustomError struct, used
to standardize HTTP responses.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error
// code. The key is the error code; the value carries the user message and
// the HTTP status to respond with.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:     {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
