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
aggregate.go assembles display-ready view models out of several
independently versioned backend resources.

# Problem Statement

The field-details view needs four resources (field, progress history,
tasks, crop) that live behind four endpoints, disagree on key naming, and
fail independently. Fetching them sequentially makes load latency the sum
of four round-trips; failing the whole view because the tasks endpoint
hiccuped throws away three perfectly good sections.

# Solution

	GET /fields/{id} ──── failure ──▶ error to caller, store untouched
	      │ success
	      ▼
	┌──── fan-out (errgroup) ───────────────────────────┐
	│ progress (if referenced)   tasks        crop      │
	│   err ⇒ nil                err ⇒ []     err ⇒ nil │
	└──────────────── join on all three ────────────────┘
	      ▼
	normalize + derive day counts + join field name
	      ▼
	publish one complete FieldView to the store

The primary field fetch gates everything: its id keys the three sub-fetches
and its failure is the only failure the caller sees. Each sub-fetch is
wrapped so its own failure degrades that one section to its empty value
instead of propagating; the errgroup is a pure join barrier here and load
latency is bounded by the slowest single sub-fetch.

# Stale loads

Every load takes a generation ticket. A load that finished after a newer
load started publishes nothing, so navigating quickly between fields can
never paint an older field's view over a newer one.
*/
package farmapi

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/agroview/pkg/dates"
	"github.com/AleutianAI/agroview/pkg/farm"
	"github.com/AleutianAI/agroview/pkg/viewstate"
)

// Aggregator combines per-resource fetches into view models. Each view
// constructs its own Aggregator; a fresh one carries no memory of earlier
// loads beyond the stale-load generation counter.
type Aggregator struct {
	api *Client
	now func() time.Time
	log *slog.Logger
	gen atomic.Int64
}

// AggregatorOptions configures an Aggregator. The zero value is usable.
type AggregatorOptions struct {
	// Now overrides the clock used for derived day counts. Default:
	// time.Now.
	Now func() time.Time

	// Logger receives per-branch degradation warnings. Default:
	// slog.Default().
	Logger *slog.Logger
}

// NewAggregator creates an Aggregator over the given client.
func NewAggregator(api *Client, opts AggregatorOptions) *Aggregator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{api: api, now: now, log: logger}
}

// LoadFieldView fetches and assembles the complete view for one field and
// publishes it to the store as a single atomic replacement.
//
// Only a failure of the primary field fetch is returned as an error, and
// in that case the store is left untouched. Sub-resource failures degrade
// their own section: missing progress and crop come back nil, failed tasks
// come back as an empty slice.
func (a *Aggregator) LoadFieldView(ctx context.Context, fieldID int, store *viewstate.Store[farm.FieldView]) (farm.FieldView, error) {
	generation := a.gen.Add(1)

	rawField, err := a.api.GetField(ctx, fieldID)
	if err != nil {
		return farm.FieldView{}, err
	}
	field := farm.NormalizeField(rawField)

	var (
		rawProgress map[string]any
		rawTasks    []map[string]any
		rawCrop     map[string]any
	)

	// Pure join barrier: every branch absorbs its own failure, so Wait
	// cannot return an error.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if field.ProgressHistoryID == 0 {
			return nil
		}
		raw, err := a.api.GetProgress(groupCtx, field.ProgressHistoryID)
		if err != nil {
			a.log.Warn("progress fetch degraded", "field_id", fieldID, "error", err)
			return nil
		}
		rawProgress = raw
		return nil
	})
	group.Go(func() error {
		raw, err := a.api.GetTasksByField(groupCtx, field.ID)
		if err != nil {
			a.log.Warn("tasks fetch degraded", "field_id", fieldID, "error", err)
			return nil
		}
		rawTasks = raw
		return nil
	})
	group.Go(func() error {
		raw, err := a.api.GetCropByField(groupCtx, field.ID)
		if err != nil {
			a.log.Warn("crop fetch degraded", "field_id", fieldID, "error", err)
			return nil
		}
		rawCrop = raw
		return nil
	})
	_ = group.Wait()

	view := a.assembleFieldView(field, rawProgress, rawTasks, rawCrop)

	if a.gen.Load() == generation {
		store.Set(view)
	} else {
		a.log.Debug("dropping superseded field view", "field_id", fieldID, "generation", generation)
	}
	return view, nil
}

// assembleFieldView builds a FieldView from fetched raw payloads. Each
// call works on its own scratch state; nothing shared is mutated until the
// store publish.
func (a *Aggregator) assembleFieldView(field farm.Field, rawProgress map[string]any, rawTasks []map[string]any, rawCrop map[string]any) farm.FieldView {
	tasks := farm.NormalizeTasks(rawTasks)
	for i := range tasks {
		tasks[i].DisplayFieldName = field.Name
	}

	var crop *farm.Crop
	if rawCrop != nil {
		normalized := farm.NormalizeCrop(rawCrop)
		normalized.FieldName = field.Name
		crop = &normalized
	}

	view := farm.FieldView{
		Field:    field,
		Crop:     crop,
		Progress: farm.NormalizeProgress(rawProgress),
		Tasks:    tasks,
	}
	if crop != nil {
		now := a.now()
		if crop.PlantingDate != "" {
			view.DaysSincePlanting = dates.DaysSince(crop.PlantingDate, now)
		}
		if crop.HarvestDate != "" {
			view.HarvestCountdown = dates.DaysUntil(crop.HarvestDate, now)
		}
	}
	return view
}

// LoadFieldSummaries builds the fields overview for a user: each field
// joined with its crop's label, status, and days since planting. A field
// whose crop fetch fails renders with StatusUnknown rather than failing
// the overview.
func (a *Aggregator) LoadFieldSummaries(ctx context.Context, userID int) ([]farm.FieldSummary, error) {
	rawFields, err := a.api.GetFieldsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Results land in pre-sized slots so the output order matches the
	// backend's field order regardless of fetch completion order.
	summaries := make([]farm.FieldSummary, len(rawFields))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, rawField := range rawFields {
		field := farm.NormalizeField(rawField)
		summaries[i] = farm.FieldSummary{
			ID:       field.ID,
			Name:     field.Name,
			ImageURL: field.ImageURL,
			Status:   farm.StatusUnknown,
		}
		group.Go(func() error {
			rawCrop, err := a.api.GetCropByField(groupCtx, field.ID)
			if err != nil {
				a.log.Warn("crop fetch degraded", "field_id", field.ID, "error", err)
				return nil
			}
			crop := farm.NormalizeCrop(rawCrop)
			summaries[i].CropName = crop.Title
			if crop.Status != "" {
				summaries[i].Status = crop.Status
			}
			if crop.PlantingDate != "" {
				summaries[i].Days = dates.DaysSince(crop.PlantingDate, a.now())
			}
			return nil
		})
	}
	_ = group.Wait()
	return summaries, nil
}

// LoadCropsOverview builds the my-crops list: every crop across the user's
// fields with the owning field's name joined on. Fields without a crop are
// skipped; a failed crop fetch skips that field only.
func (a *Aggregator) LoadCropsOverview(ctx context.Context, userID int) ([]farm.Crop, error) {
	rawFields, err := a.api.GetFieldsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	slots := make([]*farm.Crop, len(rawFields))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, rawField := range rawFields {
		field := farm.NormalizeField(rawField)
		group.Go(func() error {
			rawCrop, err := a.api.GetCropByField(groupCtx, field.ID)
			if err != nil {
				if !IsNotFound(err) {
					a.log.Warn("crop fetch degraded", "field_id", field.ID, "error", err)
				}
				return nil
			}
			crop := farm.NormalizeCrop(rawCrop)
			crop.FieldName = field.Name
			slots[i] = &crop
			return nil
		})
	}
	_ = group.Wait()

	crops := make([]farm.Crop, 0, len(slots))
	for _, crop := range slots {
		if crop != nil {
			crops = append(crops, *crop)
		}
	}
	return crops, nil
}

// LoadTasksOverview builds the my-tasks list: every task across the user's
// fields with the owning field's name attached for display. Field order is
// preserved; a failed tasks fetch contributes nothing for that field.
func (a *Aggregator) LoadTasksOverview(ctx context.Context, userID int) ([]farm.Task, error) {
	rawFields, err := a.api.GetFieldsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	slots := make([][]farm.Task, len(rawFields))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, rawField := range rawFields {
		field := farm.NormalizeField(rawField)
		group.Go(func() error {
			rawTasks, err := a.api.GetTasksByField(groupCtx, field.ID)
			if err != nil {
				a.log.Warn("tasks fetch degraded", "field_id", field.ID, "error", err)
				return nil
			}
			tasks := farm.NormalizeTasks(rawTasks)
			for j := range tasks {
				tasks[j].DisplayFieldName = field.Name
			}
			slots[i] = tasks
			return nil
		})
	}
	_ = group.Wait()

	var tasks []farm.Task
	for _, fieldTasks := range slots {
		tasks = append(tasks, fieldTasks...)
	}
	return tasks, nil
}
