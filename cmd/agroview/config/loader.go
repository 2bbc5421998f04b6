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

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const fileName = "agroview.yaml"

var (
	// Global holds the configuration once Load has run.
	Global AgroviewConfig
	once   sync.Once
)

// Load reads ~/.agroview/agroview.yaml into Global, writing the defaults
// there first if no config exists yet. Safe to call from every command;
// the file is read at most once per process.
func Load() error {
	var err error
	once.Do(func() {
		err = load()
	})
	return err
}

func load() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "no config found, writing defaults to %s\n", path)
		if data, err = writeDefaults(path); err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &Global); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".agroview", fileName), nil
}

// writeDefaults creates the config directory and file and returns the
// marshaled defaults, so a first run never re-reads what it just wrote.
func writeDefaults(path string) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0640); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}
	return data, nil
}
