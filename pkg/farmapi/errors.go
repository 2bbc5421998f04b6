// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package farmapi

import (
	"errors"
	"fmt"
)

// APIErrorType categorizes backend call failures for programmatic handling.
type APIErrorType int

const (
	// APIErrorNotFound indicates the resource does not exist (HTTP 404).
	APIErrorNotFound APIErrorType = iota

	// APIErrorTransport indicates the backend was unreachable or answered
	// with a server-side failure after all retry attempts.
	APIErrorTransport

	// APIErrorInvalidPayload indicates a request body that failed local
	// validation; no network call was made.
	APIErrorInvalidPayload

	// APIErrorInvalidResponse indicates the backend returned a body that
	// could not be decoded.
	APIErrorInvalidResponse

	// APIErrorContextCancelled indicates the operation was cancelled.
	APIErrorContextCancelled
)

// String returns the error type as a string for logging.
func (t APIErrorType) String() string {
	switch t {
	case APIErrorNotFound:
		return "NOT_FOUND"
	case APIErrorTransport:
		return "TRANSPORT_FAILED"
	case APIErrorInvalidPayload:
		return "INVALID_PAYLOAD"
	case APIErrorInvalidResponse:
		return "INVALID_RESPONSE"
	case APIErrorContextCancelled:
		return "CONTEXT_CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// APIError provides structured error information for backend calls.
type APIError struct {
	// Type categorizes the error for programmatic handling.
	Type APIErrorType

	// Resource describes what was being fetched or mutated, e.g.
	// "field 7" or "task 12".
	Resource string

	// Message is a human-readable error description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s): %v", e.Type, e.Resource, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Type, e.Resource, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is an APIError of type APIErrorNotFound.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == APIErrorNotFound
}
