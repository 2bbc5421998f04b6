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
	"strings"
	"testing"
)

func TestAPIErrorTypeString(t *testing.T) {
	tests := []struct {
		errType APIErrorType
		want    string
	}{
		{APIErrorNotFound, "NOT_FOUND"},
		{APIErrorTransport, "TRANSPORT_FAILED"},
		{APIErrorInvalidPayload, "INVALID_PAYLOAD"},
		{APIErrorInvalidResponse, "INVALID_RESPONSE"},
		{APIErrorContextCancelled, "CONTEXT_CANCELLED"},
		{APIErrorType(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.errType.String(); got != tt.want {
			t.Errorf("APIErrorType(%d).String() = %q, want %q", tt.errType, got, tt.want)
		}
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &APIError{Type: APIErrorTransport, Resource: "field 7", Message: "unreachable", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("APIError does not unwrap to its cause")
	}
	msg := err.Error()
	for _, part := range []string{"TRANSPORT_FAILED", "field 7", "connection refused"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Error() = %q, missing %q", msg, part)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	notFound := &APIError{Type: APIErrorNotFound, Resource: "crop of field 13"}
	if !IsNotFound(notFound) {
		t.Error("IsNotFound missed a not-found APIError")
	}
	if !IsNotFound(fmt.Errorf("loading view: %w", notFound)) {
		t.Error("IsNotFound does not see through wrapping")
	}
	if IsNotFound(&APIError{Type: APIErrorTransport}) {
		t.Error("IsNotFound matched a transport error")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("IsNotFound matched a non-API error")
	}
}
