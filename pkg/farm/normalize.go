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
normalize.go reconciles heterogeneous backend payloads into the canonical
entity shapes.

# Problem Statement

The backend's endpoints disagree on field naming and casing: tasks arrive
with either due_date or dueDate, crops label themselves under title or crop,
fields ship image_url or imageUrl depending on the revision that wrote them.
Before these normalizers existed, each view re-implemented its own fallback
chain and the same payload could render differently in two views.

# Contract

Each normalizer is total over any decoded JSON object: it never fails and
never infers a value from nothing. A key that no alias resolves to yields
the type's zero value. The alias precedence below is fixed and must be
identical at every call site:

	Crop.Title:        title → crop
	Crop.PlantingDate: planting_date → plantingDate
	Crop.HarvestDate:  harvest_date → harvestDate
	Crop.SoilType:     soilType → soil_type
	Crop.SunlightPlan: sunlight → sunlightExposure
	Crop.WateringPlan: watering → wateringPlan
	Task.Description:  description → task → name
	Task.DueDate:      due_date → dueDate
	Field.ImageURL:    image_url → imageUrl
	Field.SizeLabel:   field_size → fieldSize
	Progress.Watered:  watered → wateredDate
	Progress.Fertilized: fertilized → fertilizedDate
	Progress.Pests:    pests → pestInspection → pestInspectionDate
	CommunityPost.Author:  user → userName → author
	CommunityPost.Comment: comment → content → recommendation

The canonical key always leads its alias chain, which makes normalization
idempotent: a canonical payload normalizes to itself.

Callers guard against a missing payload before calling the per-entity
normalizers; only NormalizeProgress accepts nil (and returns nil).
*/
package farm

import "strconv"

// NormalizeField maps a raw field payload to its canonical shape.
func NormalizeField(raw map[string]any) Field {
	return Field{
		ID:                intValue(raw, "id"),
		Name:              stringValue(raw, "name"),
		ImageURL:          stringValue(raw, "image_url", "imageUrl"),
		Location:          stringValue(raw, "location"),
		SizeLabel:         stringValue(raw, "field_size", "fieldSize"),
		Status:            stringValue(raw, "status"),
		ProgressHistoryID: intValue(raw, "progressHistoryId", "progress_history_id"),
	}
}

// NormalizeCrop maps a raw crop payload to its canonical shape.
func NormalizeCrop(raw map[string]any) Crop {
	return Crop{
		ID:           intValue(raw, "id"),
		FieldID:      intValue(raw, "fieldId", "field_id"),
		Title:        stringValue(raw, "title", "crop"),
		PlantingDate: stringValue(raw, "planting_date", "plantingDate"),
		HarvestDate:  stringValue(raw, "harvest_date", "harvestDate"),
		Status:       stringValue(raw, "status"),
		SoilType:     stringValue(raw, "soilType", "soil_type"),
		SunlightPlan: stringValue(raw, "sunlight", "sunlightExposure"),
		WateringPlan: stringValue(raw, "watering", "wateringPlan"),
		FieldName:    stringValue(raw, "field"),
	}
}

// NormalizeTask maps a raw task payload to its canonical shape.
func NormalizeTask(raw map[string]any) Task {
	return Task{
		ID:               intValue(raw, "id"),
		FieldID:          intValue(raw, "fieldId", "field_id"),
		Description:      stringValue(raw, "description", "task", "name"),
		DueDate:          stringValue(raw, "due_date", "dueDate"),
		DisplayFieldName: stringValue(raw, "field"),
	}
}

// NormalizeTasks maps a raw task sequence. A nil input yields an empty,
// non-nil slice so views can range without a guard.
func NormalizeTasks(raws []map[string]any) []Task {
	tasks := make([]Task, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		tasks = append(tasks, NormalizeTask(raw))
	}
	return tasks
}

// NormalizeProgress maps a raw progress payload to its canonical shape.
// It returns nil for a nil payload, which is how an absent progress
// history flows through aggregation.
func NormalizeProgress(raw map[string]any) *ProgressEntry {
	if raw == nil {
		return nil
	}
	return &ProgressEntry{
		ID:         intValue(raw, "id"),
		Watered:    stringValue(raw, "watered", "wateredDate"),
		Fertilized: stringValue(raw, "fertilized", "fertilizedDate"),
		Pests:      stringValue(raw, "pests", "pestInspection", "pestInspectionDate"),
	}
}

// NormalizeCommunityPost maps a raw community recommendation to its
// canonical shape.
func NormalizeCommunityPost(raw map[string]any) CommunityPost {
	return CommunityPost{
		ID:      intValue(raw, "id"),
		UserID:  intValue(raw, "userId", "user_id"),
		Author:  stringValue(raw, "user", "userName", "author"),
		Comment: stringValue(raw, "comment", "content", "recommendation"),
	}
}

// NormalizeCommunityPosts maps a raw recommendation sequence. A nil input
// yields an empty, non-nil slice.
func NormalizeCommunityPosts(raws []map[string]any) []CommunityPost {
	posts := make([]CommunityPost, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		posts = append(posts, NormalizeCommunityPost(raw))
	}
	return posts
}

// -----------------------------------------------------------------------------
// Raw value probing
// -----------------------------------------------------------------------------

// stringValue returns the first non-empty string among the aliased keys.
func stringValue(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// intValue returns the first key holding a usable integer. JSON decoding
// delivers numbers as float64; some backend revisions send IDs as strings.
func intValue(raw map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case int64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return 0
}
