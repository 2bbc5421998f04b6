// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// Helper to capture stdout
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// Helper to capture stderr
func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// Tests run with stdout piped, so plain mode is active and output is
// unstyled text with the machine-readable prefixes.

func TestTitlePlain(t *testing.T) {
	got := captureStdout(func() { Title("Your fields") })
	if got != "Your fields\n" {
		t.Errorf("Title output = %q", got)
	}
}

func TestSuccessPlain(t *testing.T) {
	got := captureStdout(func() { Success("Task added") })
	if got != "OK: Task added\n" {
		t.Errorf("Success output = %q", got)
	}
}

func TestWarningPlainGoesToStderr(t *testing.T) {
	got := captureStderr(func() { Warning("tasks fetch degraded") })
	if got != "WARN: tasks fetch degraded\n" {
		t.Errorf("Warning output = %q", got)
	}
}

func TestErrorPlainGoesToStderr(t *testing.T) {
	got := captureStderr(func() { Error("field 12 not found") })
	if got != "ERROR: field 12 not found\n" {
		t.Errorf("Error output = %q", got)
	}
}

func TestInfoPlain(t *testing.T) {
	got := captureStdout(func() { Info("No crops planted yet.") })
	if got != "No crops planted yet.\n" {
		t.Errorf("Info output = %q", got)
	}
}

func TestFieldStatusPlain(t *testing.T) {
	// In plain mode every status passes through unchanged.
	for _, status := range []string{"Healthy", "Attention", "Critical", "Unknown", ""} {
		if got := FieldStatus(status); got != status {
			t.Errorf("FieldStatus(%q) = %q in plain mode", status, got)
		}
	}
}

func TestMuted(t *testing.T) {
	got := captureStdout(func() { Muted("Valley · 12 ha") })
	if !strings.Contains(got, "Valley · 12 ha") {
		t.Errorf("Muted output = %q", got)
	}
}
