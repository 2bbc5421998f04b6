// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func logFileName(service string) string {
	return service + "_" + time.Now().Format("2006-01-02") + ".log"
}

func TestFileLogging(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{Level: LevelDebug, LogDir: dir, Service: "testsvc", Quiet: true})

	logger.Info("field view loaded", "field_id", 7)
	logger.Debug("debug detail")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, logFileName("testsvc")))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2", len(lines))
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "field view loaded" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["service"] != "testsvc" {
		t.Errorf("service attribute = %v, want testsvc", entry["service"])
	}
	if entry["field_id"] != float64(7) {
		t.Errorf("field_id = %v", entry["field_id"])
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{Level: LevelWarn, LogDir: dir, Service: "testsvc", Quiet: true})

	logger.Info("should be discarded")
	logger.Warn("should be kept")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName("testsvc")))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "should be discarded") {
		t.Error("info entry leaked through a warn-level logger")
	}
	if !strings.Contains(content, "should be kept") {
		t.Error("warn entry missing")
	}
}

func TestWithAttributes(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{LogDir: dir, Service: "testsvc", Quiet: true})

	child := logger.With("request_id", "abc-123")
	child.Info("hello")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName("testsvc")))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "abc-123") {
		t.Error("child logger attribute not present in output")
	}
}

func TestDefaultServiceName(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{LogDir: dir, Quiet: true})
	logger.Info("hello")
	logger.Close()

	if _, err := os.Stat(filepath.Join(dir, logFileName("agroview"))); err != nil {
		t.Errorf("default service log file missing: %v", err)
	}
}

func TestCloseWithoutFile(t *testing.T) {
	logger := New(Config{Quiet: true})
	if err := logger.Close(); err != nil {
		t.Errorf("Close without a file returned %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory on this system")
	}
	if got := expandPath("~/logs"); got != filepath.Join(home, "logs") {
		t.Errorf("expandPath(~/logs) = %q", got)
	}
	if got := expandPath("/var/log/agroview"); got != "/var/log/agroview" {
		t.Errorf("absolute path was altered: %q", got)
	}
}
