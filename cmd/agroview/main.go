// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// agroview is a command-line client for a farm-management backend: fields,
// crops, tasks, and progress histories, viewed and edited from the
// terminal. All view assembly and optimistic-edit behavior lives in
// pkg/farmapi and pkg/viewstate; this package is command glue.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/agroview/cmd/agroview/config"
	"github.com/AleutianAI/agroview/pkg/farmapi"
	"github.com/AleutianAI/agroview/pkg/logging"
	"github.com/AleutianAI/agroview/pkg/ux"
)

var (
	appLogger  *logging.Logger
	apiClient  *farmapi.Client
	aggregator *farmapi.Aggregator
	mutator    *farmapi.Mutator
)

func main() {
	err := rootCmd.Execute()
	if appLogger != nil {
		appLogger.Close()
	}
	if err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}
}

// initRuntime loads the config and wires the client stack. Runs once as
// the root command's PersistentPreRunE.
func initRuntime(cmd *cobra.Command, args []string) error {
	if err := config.Load(); err != nil {
		return err
	}
	cfg := config.Global

	appLogger = logging.New(logging.Config{
		Level:  parseLevel(cfg.Logging.Level),
		LogDir: cfg.Logging.Dir,
	})
	apiClient = farmapi.NewClient(cfg.Backend.BaseURL, farmapi.Options{
		RetryAttempts: cfg.Backend.RetryAttempts,
		Logger:        appLogger.Slog(),
	})
	aggregator = farmapi.NewAggregator(apiClient, farmapi.AggregatorOptions{
		Logger: appLogger.Slog(),
	})
	mutator = farmapi.NewMutator(apiClient, appLogger.Slog())
	return nil
}

func parseLevel(level string) logging.Level {
	switch level {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// currentUserID resolves the acting user: the --user flag wins over the
// configured id.
func currentUserID() (int, error) {
	if userFlag > 0 {
		return userFlag, nil
	}
	if config.Global.User.ID > 0 {
		return config.Global.User.ID, nil
	}
	return 0, fmt.Errorf("no user id: set user.id in the config or pass --user")
}
