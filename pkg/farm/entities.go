// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package farm defines the canonical, alias-resolved shapes of the
// farm-management entities and the normalizers that produce them.
//
// The backend returns the same entity under diverging key conventions
// (planting_date vs plantingDate, image_url vs imageUrl) depending on the
// endpoint and revision. Every consumer in this repository reads the
// canonical structs below; only the normalizers in normalize.go ever look
// at raw backend keys.
package farm

// Field status values as reported by the backend. A field with no crop
// attached renders as StatusUnknown.
const (
	StatusHealthy   = "Healthy"
	StatusAttention = "Attention"
	StatusCritical  = "Critical"
	StatusUnknown   = "Unknown"
)

// Field is a physical field owned by a user. The owning userId is not part
// of the canonical shape; callers supply it when listing fields.
type Field struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	Location  string `json:"location"`
	SizeLabel string `json:"field_size"`
	Status    string `json:"status"`

	// ProgressHistoryID is an optional foreign key into /progress.
	// Zero means the field carries no progress history.
	ProgressHistoryID int `json:"progressHistoryId,omitempty"`
}

// Crop is the crop planted on a field. The field↔crop relation is 1:1 in
// current usage and is enforced by the caller, not here.
//
// Title is the canonical label. The backend sometimes returns it under the
// alternate key "crop"; normalization prefers an explicit "title" value,
// falls back to "crop", and otherwise leaves it empty.
type Crop struct {
	ID           int    `json:"id"`
	FieldID      int    `json:"fieldId"`
	Title        string `json:"title"`
	PlantingDate string `json:"planting_date"`
	HarvestDate  string `json:"harvest_date"`
	Status       string `json:"status"`
	SoilType     string `json:"soilType"`
	SunlightPlan string `json:"sunlight"`
	WateringPlan string `json:"watering"`

	// FieldName is the resolved name of the owning field, joined locally
	// for display. The crop endpoints never return it; merges must not
	// erase it.
	FieldName string `json:"field"`
}

// ProgressEntry is a field's progress history. Each date is an ISO string
// (YYYY-MM-DDT00:00:00) or empty. At most one entry exists per field.
type ProgressEntry struct {
	ID         int    `json:"id"`
	Watered    string `json:"watered"`
	Fertilized string `json:"fertilized"`
	Pests      string `json:"pests"`
}

// Task is a unit of work scheduled against a field.
type Task struct {
	ID          int    `json:"id"`
	FieldID     int    `json:"fieldId"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`

	// DisplayFieldName is attached locally for rendering only. Mutation
	// payloads are built from separate request structs, so this never
	// travels back to the backend.
	DisplayFieldName string `json:"field"`
}

// FieldView is the display-ready aggregate for a single field: the field
// shell plus whatever sub-resources resolved. Crop and Progress may be nil
// and Tasks may be empty, but the Field section is always populated once
// the field's own fetch has succeeded.
type FieldView struct {
	Field    Field
	Crop     *Crop
	Progress *ProgressEntry
	Tasks    []Task

	// Derived display values, computed from the crop dates at load time.
	// DaysSincePlanting is elapsed days (unclamped); HarvestCountdown is
	// remaining days, clamped at zero.
	DaysSincePlanting int
	HarvestCountdown  int
}

// CommunityPost is one recommendation on the shared community board.
type CommunityPost struct {
	ID      int    `json:"id"`
	UserID  int    `json:"userId"`
	Author  string `json:"user"`
	Comment string `json:"comment"`
}

// FieldSummary is one row of the fields overview: a field joined with its
// crop's label and status.
type FieldSummary struct {
	ID       int
	Name     string
	ImageURL string
	Status   string
	CropName string

	// Days since the crop's planting date, zero when no crop resolved.
	Days int
}
