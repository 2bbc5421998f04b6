// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
mutate.go holds the mutation entry points the views call. Every one of
them goes through viewstate.ApplyAndSync: apply the edit to the held view
immediately, issue the backend call, fold the response in on success, roll
back to the pre-mutation snapshot on failure.

Date inputs arrive in display form (DD/MM/YYYY) and are converted here,
before anything is published or sent: a date the codec rejects aborts the
mutation with the view untouched.

Reconciliation policy per operation:

  - add/edit task: take the server's record, fall back to the values we
    sent for anything it omitted, and re-attach the locally joined field
    name (the task endpoints never return it).
  - delete task: nothing to reconcile, the backend answers no-content.
  - edit progress: server record, falling back to the sent dates.
  - edit crop: keep the local record and fold in only the fields the user
    actually changed; the update endpoint's response is known to omit the
    joined field name, so replacing the record wholesale would erase it.
*/
package farmapi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/AleutianAI/agroview/pkg/dates"
	"github.com/AleutianAI/agroview/pkg/farm"
	"github.com/AleutianAI/agroview/pkg/viewstate"
)

// Mutator runs optimistic mutations against a view's store. One mutation
// per entity instance should be in flight at a time from a given view;
// overlapping calls are last-write-wins, not queued.
type Mutator struct {
	api *Client
	log *slog.Logger
}

// NewMutator creates a Mutator over the given client.
func NewMutator(api *Client, logger *slog.Logger) *Mutator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mutator{api: api, log: logger}
}

// -----------------------------------------------------------------------------
// Tasks (field-details view)
// -----------------------------------------------------------------------------

// AddTask creates a task on the viewed field. The task appears in the view
// immediately with a zero id; the server's record replaces it on success.
func (m *Mutator) AddTask(ctx context.Context, store *viewstate.Store[farm.FieldView], description, dueDisplay string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("task description is required")
	}
	dueISO, err := dates.ToISO(dueDisplay, "")
	if err != nil {
		return err
	}

	view := store.Get()
	req := TaskRequest{FieldID: view.Field.ID, Description: description, DueDate: dueISO}
	log := m.log.With("mutation_id", uuid.NewString(), "field_id", view.Field.ID)

	err = viewstate.ApplyAndSync(store,
		func(v farm.FieldView) farm.FieldView {
			v.Tasks = append(copyTasks(v.Tasks), farm.Task{
				FieldID:          v.Field.ID,
				Description:      description,
				DueDate:          dueISO,
				DisplayFieldName: v.Field.Name,
			})
			return v
		},
		func() (map[string]any, error) { return m.api.CreateTask(ctx, req) },
		func(v farm.FieldView, raw map[string]any) farm.FieldView {
			created := reconcileTask(raw, req, v.Field.Name)
			tasks := copyTasks(v.Tasks)
			for i := range tasks {
				if tasks[i].ID == 0 {
					tasks[i] = created
				}
			}
			v.Tasks = tasks
			return v
		},
	)
	if err != nil {
		log.Error("add task rolled back", "error", err)
		return err
	}
	log.Info("task added")
	return nil
}

// EditTask updates a task's description and due date. An empty description
// or due date keeps the current value; a malformed due date aborts before
// anything is published.
func (m *Mutator) EditTask(ctx context.Context, store *viewstate.Store[farm.FieldView], taskID int, description, dueDisplay string) error {
	view := store.Get()
	current, ok := findTask(view.Tasks, taskID)
	if !ok {
		return fmt.Errorf("task %d is not part of this view", taskID)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = current.Description
	}
	dueISO := current.DueDate
	if dueDisplay != "" && dueDisplay != dates.ToDisplay(current.DueDate) {
		var err error
		if dueISO, err = dates.ToISO(dueDisplay, current.DueDate); err != nil {
			return err
		}
	}

	// The field relation is immutable on edit; the original fieldId rides
	// along unchanged.
	req := TaskRequest{FieldID: view.Field.ID, Description: description, DueDate: dueISO}
	log := m.log.With("mutation_id", uuid.NewString(), "task_id", taskID)

	err := viewstate.ApplyAndSync(store,
		func(v farm.FieldView) farm.FieldView {
			tasks := copyTasks(v.Tasks)
			for i := range tasks {
				if tasks[i].ID == taskID {
					tasks[i].Description = description
					tasks[i].DueDate = dueISO
				}
			}
			v.Tasks = tasks
			return v
		},
		func() (map[string]any, error) { return m.api.UpdateTask(ctx, taskID, req) },
		func(v farm.FieldView, raw map[string]any) farm.FieldView {
			updated := reconcileTask(raw, req, v.Field.Name)
			if updated.ID == 0 {
				updated.ID = taskID
			}
			tasks := copyTasks(v.Tasks)
			for i := range tasks {
				if tasks[i].ID == taskID {
					tasks[i] = updated
				}
			}
			v.Tasks = tasks
			return v
		},
	)
	if err != nil {
		log.Error("edit task rolled back", "error", err)
		return err
	}
	log.Info("task updated")
	return nil
}

// DeleteTask removes a task from the view immediately and restores it if
// the backend delete fails.
func (m *Mutator) DeleteTask(ctx context.Context, store *viewstate.Store[farm.FieldView], taskID int) error {
	log := m.log.With("mutation_id", uuid.NewString(), "task_id", taskID)

	err := viewstate.ApplyAndSync(store,
		func(v farm.FieldView) farm.FieldView {
			tasks := make([]farm.Task, 0, len(v.Tasks))
			for _, task := range v.Tasks {
				if task.ID != taskID {
					tasks = append(tasks, task)
				}
			}
			v.Tasks = tasks
			return v
		},
		func() (struct{}, error) { return struct{}{}, m.api.DeleteTask(ctx, taskID) },
		func(v farm.FieldView, _ struct{}) farm.FieldView { return v },
	)
	if err != nil {
		log.Error("delete task rolled back", "error", err)
		return err
	}
	log.Info("task deleted")
	return nil
}

// -----------------------------------------------------------------------------
// Progress history (field-details view)
// -----------------------------------------------------------------------------

// EditProgress updates the field's progress-history dates. Each input is a
// display-form date; an empty input keeps the current value. Any rejected
// date aborts the whole mutation with the view untouched.
func (m *Mutator) EditProgress(ctx context.Context, store *viewstate.Store[farm.FieldView], wateredDisplay, fertilizedDisplay, pestsDisplay string) error {
	view := store.Get()
	if view.Progress == nil {
		return fmt.Errorf("field %d has no progress history to edit", view.Field.ID)
	}
	current := *view.Progress

	watered, err := resolveDate(wateredDisplay, current.Watered)
	if err != nil {
		return err
	}
	fertilized, err := resolveDate(fertilizedDisplay, current.Fertilized)
	if err != nil {
		return err
	}
	pests, err := resolveDate(pestsDisplay, current.Pests)
	if err != nil {
		return err
	}

	req := ProgressRequest{Watered: watered, Fertilized: fertilized, Pests: pests}
	log := m.log.With("mutation_id", uuid.NewString(), "progress_id", current.ID)

	err = viewstate.ApplyAndSync(store,
		func(v farm.FieldView) farm.FieldView {
			v.Progress = &farm.ProgressEntry{
				ID:         current.ID,
				Watered:    watered,
				Fertilized: fertilized,
				Pests:      pests,
			}
			return v
		},
		func() (map[string]any, error) { return m.api.UpdateProgress(ctx, current.ID, req) },
		func(v farm.FieldView, raw map[string]any) farm.FieldView {
			entry := farm.NormalizeProgress(raw)
			if entry == nil {
				entry = &farm.ProgressEntry{}
			}
			if entry.ID == 0 {
				entry.ID = current.ID
			}
			if entry.Watered == "" {
				entry.Watered = watered
			}
			if entry.Fertilized == "" {
				entry.Fertilized = fertilized
			}
			if entry.Pests == "" {
				entry.Pests = pests
			}
			v.Progress = entry
			return v
		},
	)
	if err != nil {
		log.Error("edit progress rolled back", "error", err)
		return err
	}
	log.Info("progress history updated")
	return nil
}

// -----------------------------------------------------------------------------
// Crops (my-crops view)
// -----------------------------------------------------------------------------

// EditCrop updates a crop's title and status in the crops list. Only the
// fields the user changed are folded into the held record: the update
// endpoint's response omits the joined field name, so the local record
// survives the merge intact.
func (m *Mutator) EditCrop(ctx context.Context, store *viewstate.Store[[]farm.Crop], cropID int, newTitle, newStatus string) error {
	crops := store.Get()
	current, ok := findCrop(crops, cropID)
	if !ok {
		return fmt.Errorf("crop %d is not part of this view", cropID)
	}

	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		newTitle = current.Title
	}
	if newStatus == "" {
		newStatus = current.Status
	}

	req := CropUpdateRequest{
		Title:        newTitle,
		Status:       newStatus,
		PlantingDate: current.PlantingDate,
		HarvestDate:  current.HarvestDate,
		SoilType:     current.SoilType,
		Sunlight:     current.SunlightPlan,
		Watering:     current.WateringPlan,
	}
	log := m.log.With("mutation_id", uuid.NewString(), "crop_id", cropID)

	err := viewstate.ApplyAndSync(store,
		func(list []farm.Crop) []farm.Crop {
			next := copyCrops(list)
			for i := range next {
				if next[i].ID == cropID {
					next[i].Title = newTitle
					next[i].Status = newStatus
				}
			}
			return next
		},
		func() (map[string]any, error) { return m.api.UpdateCrop(ctx, cropID, req) },
		func(tentative []farm.Crop, _ map[string]any) []farm.Crop { return tentative },
	)
	if err != nil {
		log.Error("edit crop rolled back", "error", err)
		return err
	}
	log.Info("crop updated")
	return nil
}

// DeleteCrop removes a crop from the list immediately and restores the
// list if the backend delete fails.
func (m *Mutator) DeleteCrop(ctx context.Context, store *viewstate.Store[[]farm.Crop], cropID int) error {
	log := m.log.With("mutation_id", uuid.NewString(), "crop_id", cropID)

	err := viewstate.ApplyAndSync(store,
		func(list []farm.Crop) []farm.Crop {
			next := make([]farm.Crop, 0, len(list))
			for _, crop := range list {
				if crop.ID != cropID {
					next = append(next, crop)
				}
			}
			return next
		},
		func() (struct{}, error) { return struct{}{}, m.api.DeleteCrop(ctx, cropID) },
		func(list []farm.Crop, _ struct{}) []farm.Crop { return list },
	)
	if err != nil {
		log.Error("delete crop rolled back", "error", err)
		return err
	}
	log.Info("crop deleted")
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// reconcileTask normalizes a server task record, falling back to the sent
// request for anything the response omitted, and re-attaches the local
// field name.
func reconcileTask(raw map[string]any, sent TaskRequest, fieldName string) farm.Task {
	task := farm.NormalizeTask(raw)
	if task.Description == "" {
		task.Description = sent.Description
	}
	if task.DueDate == "" {
		task.DueDate = sent.DueDate
	}
	if task.FieldID == 0 {
		task.FieldID = sent.FieldID
	}
	task.DisplayFieldName = fieldName
	return task
}

// resolveDate converts a display-form input, keeping the current ISO value
// for empty or unchanged input.
func resolveDate(display, currentISO string) (string, error) {
	if display == "" || display == dates.ToDisplay(currentISO) {
		return currentISO, nil
	}
	return dates.ToISO(display, currentISO)
}

func findTask(tasks []farm.Task, id int) (farm.Task, bool) {
	for _, task := range tasks {
		if task.ID == id {
			return task, true
		}
	}
	return farm.Task{}, false
}

func findCrop(crops []farm.Crop, id int) (farm.Crop, bool) {
	for _, crop := range crops {
		if crop.ID == id {
			return crop, true
		}
	}
	return farm.Crop{}, false
}

// copyTasks clones the slice so a tentative edit never aliases the
// snapshot it may be rolled back to.
func copyTasks(tasks []farm.Task) []farm.Task {
	return append([]farm.Task(nil), tasks...)
}

func copyCrops(crops []farm.Crop) []farm.Crop {
	return append([]farm.Crop(nil), crops...)
}
