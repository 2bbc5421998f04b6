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
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/agroview/pkg/dates"
	"github.com/AleutianAI/agroview/pkg/farm"
	"github.com/AleutianAI/agroview/pkg/farmapi"
	"github.com/AleutianAI/agroview/pkg/ux"
	"github.com/AleutianAI/agroview/pkg/viewstate"
)

func runTasksList(cmd *cobra.Command, args []string) error {
	userID, err := currentUserID()
	if err != nil {
		return err
	}
	tasks, err := aggregator.LoadTasksOverview(cmd.Context(), userID)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		ux.Info("Nothing to do. Enjoy it while it lasts.")
		return nil
	}
	renderTasks(tasks)
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	fieldID, err := argInt(args[0], "field id")
	if err != nil {
		return err
	}
	store, err := loadFieldStore(cmd.Context(), fieldID)
	if err != nil {
		return err
	}
	description, due := descriptionFlag, dueFlag
	if description == "" || due == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Description").Value(&description),
				huh.NewInput().Title("Due date (DD/MM/YYYY)").Value(&due),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}
	if err := mutator.AddTask(cmd.Context(), store, description, due); err != nil {
		return err
	}
	ux.Success("Task added")
	renderTasks(store.Get().Tasks)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	fieldID, err := argInt(args[0], "field id")
	if err != nil {
		return err
	}
	taskID, err := argInt(args[1], "task id")
	if err != nil {
		return err
	}
	store, err := loadFieldStore(cmd.Context(), fieldID)
	if err != nil {
		return err
	}
	current, ok := taskInView(store.Get(), taskID)
	if !ok {
		return fmt.Errorf("task %d not found on field %d", taskID, fieldID)
	}

	description, due := descriptionFlag, dueFlag
	if description == "" && due == "" {
		description = current.Description
		due = dates.ToDisplay(current.DueDate)
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Description").Value(&description),
				huh.NewInput().Title("Due date (DD/MM/YYYY)").Value(&due),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}
	if err := mutator.EditTask(cmd.Context(), store, taskID, description, due); err != nil {
		return err
	}
	ux.Success("Task updated")
	renderTasks(store.Get().Tasks)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	fieldID, err := argInt(args[0], "field id")
	if err != nil {
		return err
	}
	taskID, err := argInt(args[1], "task id")
	if err != nil {
		return err
	}
	store, err := loadFieldStore(cmd.Context(), fieldID)
	if err != nil {
		return err
	}
	task, ok := taskInView(store.Get(), taskID)
	if !ok {
		return fmt.Errorf("task %d not found on field %d", taskID, fieldID)
	}
	if !yesFlag {
		confirmed, err := confirm(fmt.Sprintf("Delete task %q?", task.Description))
		if err != nil {
			return err
		}
		if !confirmed {
			ux.Info("Kept the task.")
			return nil
		}
	}
	if err := mutator.DeleteTask(cmd.Context(), store, taskID); err != nil {
		return err
	}
	ux.Success("Task deleted")
	return nil
}

// loadFieldStore loads the full field view into a fresh store so the
// optimistic mutators have a snapshot to work against.
func loadFieldStore(ctx context.Context, fieldID int) (*viewstate.Store[farm.FieldView], error) {
	store := viewstate.NewStore(farm.FieldView{})
	if _, err := aggregator.LoadFieldView(ctx, fieldID, store); err != nil {
		if farmapi.IsNotFound(err) {
			return nil, fmt.Errorf("field %d not found", fieldID)
		}
		return nil, err
	}
	return store, nil
}

func taskInView(view farm.FieldView, taskID int) (farm.Task, bool) {
	for _, t := range view.Tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return farm.Task{}, false
}

func confirm(prompt string) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(prompt).Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
