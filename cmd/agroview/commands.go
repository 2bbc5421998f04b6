// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"github.com/spf13/cobra"
)

var (
	userFlag int

	descriptionFlag string
	dueFlag         string

	titleFlag  string
	statusFlag string
	yesFlag    bool

	wateredFlag    string
	fertilizedFlag string
	pestsFlag      string

	nameFlag     string
	locationFlag string
	sizeFlag     string
	imageFlag    string

	rootCmd = &cobra.Command{
		Use:   "agroview",
		Short: "Terminal client for your farm-management backend",
		Long: `Agroview brings your fields, crops, tasks, and progress records to
the terminal. Views are assembled from several backend resources in one
shot; edits land on screen immediately and roll back if the backend
rejects them.`,
		PersistentPreRunE: initRuntime,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// ----- fields -----

	fieldsCmd = &cobra.Command{
		Use:   "fields",
		Short: "Work with your fields",
	}

	fieldsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List your fields with crop and status",
		RunE:  runFieldsList,
	}

	fieldsShowCmd = &cobra.Command{
		Use:   "show <fieldId>",
		Short: "Show one field: crop, progress, and tasks",
		Args:  cobra.ExactArgs(1),
		RunE:  runFieldShow,
	}

	fieldsAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Register a new field",
		RunE:  runFieldAdd,
	}

	// ----- crops -----

	cropsCmd = &cobra.Command{
		Use:   "crops",
		Short: "Work with crops across your fields",
	}

	cropsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the crops planted in your fields",
		RunE:  runCropsList,
	}

	cropsEditCmd = &cobra.Command{
		Use:   "edit <cropId>",
		Short: "Rename a crop or change its status",
		Args:  cobra.ExactArgs(1),
		RunE:  runCropEdit,
	}

	cropsDeleteCmd = &cobra.Command{
		Use:   "delete <cropId>",
		Short: "Remove a crop record",
		Args:  cobra.ExactArgs(1),
		RunE:  runCropDelete,
	}

	// ----- tasks -----

	tasksCmd = &cobra.Command{
		Use:   "tasks",
		Short: "List pending tasks across your fields",
		RunE:  runTasksList,
	}

	taskCmd = &cobra.Command{
		Use:   "task",
		Short: "Add, edit, or delete a single task",
	}

	taskAddCmd = &cobra.Command{
		Use:   "add <fieldId>",
		Short: "Add a task to a field",
		Args:  cobra.ExactArgs(1),
		RunE:  runTaskAdd,
	}

	taskEditCmd = &cobra.Command{
		Use:   "edit <fieldId> <taskId>",
		Short: "Edit a task's description or due date",
		Args:  cobra.ExactArgs(2),
		RunE:  runTaskEdit,
	}

	taskDeleteCmd = &cobra.Command{
		Use:   "delete <fieldId> <taskId>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(2),
		RunE:  runTaskDelete,
	}

	// ----- community -----

	communityCmd = &cobra.Command{
		Use:   "community",
		Short: "Read the shared community board",
	}

	communityListCmd = &cobra.Command{
		Use:   "list",
		Short: "List community recommendations",
		RunE:  runCommunityList,
	}

	// ----- progress -----

	progressCmd = &cobra.Command{
		Use:   "progress",
		Short: "Work with a field's progress record",
	}

	progressEditCmd = &cobra.Command{
		Use:   "edit <fieldId>",
		Short: "Update watering, fertilizing, and pest-control dates",
		Args:  cobra.ExactArgs(1),
		RunE:  runProgressEdit,
	}
)

func init() {
	rootCmd.PersistentFlags().IntVar(&userFlag, "user", 0, "backend user id (overrides the config)")

	fieldsAddCmd.Flags().StringVar(&nameFlag, "name", "", "field name")
	fieldsAddCmd.Flags().StringVar(&locationFlag, "location", "", "field location")
	fieldsAddCmd.Flags().StringVar(&sizeFlag, "size", "", "field size label, e.g. \"12 ha\"")
	fieldsAddCmd.Flags().StringVar(&imageFlag, "image", "", "image URL for the field")

	cropsEditCmd.Flags().StringVar(&titleFlag, "title", "", "new crop name")
	cropsEditCmd.Flags().StringVar(&statusFlag, "status", "", "new crop status (Healthy, Attention, Critical)")
	cropsDeleteCmd.Flags().BoolVar(&yesFlag, "yes", false, "skip the confirmation prompt")

	taskAddCmd.Flags().StringVar(&descriptionFlag, "description", "", "what needs doing")
	taskAddCmd.Flags().StringVar(&dueFlag, "due", "", "due date as DD/MM/YYYY")
	taskEditCmd.Flags().StringVar(&descriptionFlag, "description", "", "new description (empty keeps the current one)")
	taskEditCmd.Flags().StringVar(&dueFlag, "due", "", "new due date as DD/MM/YYYY (empty keeps the current one)")
	taskDeleteCmd.Flags().BoolVar(&yesFlag, "yes", false, "skip the confirmation prompt")

	progressEditCmd.Flags().StringVar(&wateredFlag, "watered", "", "last watered date as DD/MM/YYYY")
	progressEditCmd.Flags().StringVar(&fertilizedFlag, "fertilized", "", "last fertilized date as DD/MM/YYYY")
	progressEditCmd.Flags().StringVar(&pestsFlag, "pests", "", "last pest-control date as DD/MM/YYYY")

	fieldsCmd.AddCommand(fieldsListCmd, fieldsShowCmd, fieldsAddCmd)
	cropsCmd.AddCommand(cropsListCmd, cropsEditCmd, cropsDeleteCmd)
	taskCmd.AddCommand(taskAddCmd, taskEditCmd, taskDeleteCmd)
	communityCmd.AddCommand(communityListCmd)
	progressCmd.AddCommand(progressEditCmd)
	rootCmd.AddCommand(fieldsCmd, cropsCmd, tasksCmd, taskCmd, progressCmd, communityCmd)
}
