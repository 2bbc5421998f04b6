// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

// AgroviewConfig is the on-disk configuration at ~/.agroview/agroview.yaml.
type AgroviewConfig struct {
	// Backend: where the farm-management API lives
	Backend BackendConfig `yaml:"backend"`

	// User: the account whose fields the CLI operates on
	User UserConfig `yaml:"user"`

	// Logging: verbosity and optional log file directory
	Logging LoggingConfig `yaml:"logging"`
}

type BackendConfig struct {
	BaseURL       string `yaml:"base_url"`       // e.g. http://localhost:8080/api/v1
	RetryAttempts int    `yaml:"retry_attempts"` // transport-level retries, e.g. 2
}

type UserConfig struct {
	ID int `yaml:"id"` // backend user id owning the fields
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`   // empty disables file logging
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() AgroviewConfig {
	return AgroviewConfig{
		Backend: BackendConfig{
			BaseURL:       "http://localhost:8080/api/v1",
			RetryAttempts: 2,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "~/.agroview/logs",
		},
	}
}
