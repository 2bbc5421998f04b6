// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package farm

import (
	"encoding/json"
	"testing"
)

func TestNormalizeCropAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want Crop
	}{
		{
			name: "alternate keys throughout",
			raw: map[string]any{
				"id":           float64(7),
				"field_id":     float64(3),
				"crop":         "Corn",
				"plantingDate": "2024-01-01T00:00:00",
				"harvestDate":  "2024-06-01T00:00:00",
				"status":       "Healthy",
				"soil_type":    "Loam",
			},
			want: Crop{
				ID: 7, FieldID: 3, Title: "Corn",
				PlantingDate: "2024-01-01T00:00:00",
				HarvestDate:  "2024-06-01T00:00:00",
				Status:       "Healthy", SoilType: "Loam",
			},
		},
		{
			name: "canonical title wins over crop",
			raw:  map[string]any{"title": "Winter Wheat", "crop": "Wheat"},
			want: Crop{Title: "Winter Wheat"},
		},
		{
			name: "empty canonical falls through to alias",
			raw:  map[string]any{"title": "", "crop": "Barley"},
			want: Crop{Title: "Barley"},
		},
		{
			name: "no alias resolves",
			raw:  map[string]any{"id": float64(1)},
			want: Crop{ID: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCrop(tt.raw); got != tt.want {
				t.Errorf("NormalizeCrop = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeTaskAliases(t *testing.T) {
	raw := map[string]any{
		"id":      "42", // some revisions send ids as strings
		"fieldId": float64(3),
		"task":    "Irrigate north plot",
		"dueDate": "2024-05-10T00:00:00",
	}
	got := NormalizeTask(raw)
	want := Task{ID: 42, FieldID: 3, Description: "Irrigate north plot", DueDate: "2024-05-10T00:00:00"}
	if got != want {
		t.Errorf("NormalizeTask = %+v, want %+v", got, want)
	}
}

func TestNormalizeFieldAliases(t *testing.T) {
	raw := map[string]any{
		"id":        float64(5),
		"name":      "North Field",
		"imageUrl":  "https://img/north.jpg",
		"fieldSize": "12 ha",
		"location":  "Valley",
	}
	got := NormalizeField(raw)
	if got.ImageURL != "https://img/north.jpg" || got.SizeLabel != "12 ha" {
		t.Errorf("alias keys not resolved: %+v", got)
	}
	if got.ProgressHistoryID != 0 {
		t.Errorf("absent progressHistoryId = %d, want 0", got.ProgressHistoryID)
	}
}

// Normalizing a canonical payload must be a fixed point: serialize the
// canonical struct, decode it as raw JSON, normalize again.
func TestNormalizeIdempotent(t *testing.T) {
	crop := Crop{
		ID: 7, FieldID: 3, Title: "Corn",
		PlantingDate: "2024-01-01T00:00:00",
		HarvestDate:  "2024-06-01T00:00:00",
		Status:       "Attention", SoilType: "Loam",
		SunlightPlan: "Full sun", WateringPlan: "Weekly",
		FieldName: "North Field",
	}
	data, err := json.Marshal(crop)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if got := NormalizeCrop(raw); got != crop {
		t.Errorf("canonical crop not a fixed point:\n got %+v\nwant %+v", got, crop)
	}
}

func TestNormalizeProgressNil(t *testing.T) {
	if got := NormalizeProgress(nil); got != nil {
		t.Errorf("NormalizeProgress(nil) = %+v, want nil", got)
	}
	got := NormalizeProgress(map[string]any{
		"id":                 float64(9),
		"wateredDate":        "2024-03-01T00:00:00",
		"fertilized":         "2024-02-15T00:00:00",
		"pestInspectionDate": "2024-02-20T00:00:00",
	})
	want := &ProgressEntry{ID: 9, Watered: "2024-03-01T00:00:00", Fertilized: "2024-02-15T00:00:00", Pests: "2024-02-20T00:00:00"}
	if *got != *want {
		t.Errorf("NormalizeProgress = %+v, want %+v", got, want)
	}
}

func TestNormalizeCommunityPostAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want CommunityPost
	}{
		{
			name: "canonical keys",
			raw:  map[string]any{"id": float64(1), "userId": float64(9), "user": "Ana", "comment": "Rotate crops yearly"},
			want: CommunityPost{ID: 1, UserID: 9, Author: "Ana", Comment: "Rotate crops yearly"},
		},
		{
			name: "alternate keys",
			raw:  map[string]any{"id": float64(2), "user_id": float64(4), "userName": "Luis", "content": "Mulch retains moisture"},
			want: CommunityPost{ID: 2, UserID: 4, Author: "Luis", Comment: "Mulch retains moisture"},
		},
		{
			name: "nothing resolves",
			raw:  map[string]any{"id": float64(3)},
			want: CommunityPost{ID: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCommunityPost(tt.raw); got != tt.want {
				t.Errorf("NormalizeCommunityPost = %+v, want %+v", got, tt.want)
			}
		})
	}

	posts := NormalizeCommunityPosts([]map[string]any{{"id": float64(1)}, nil})
	if len(posts) != 1 {
		t.Errorf("NormalizeCommunityPosts = %+v, want one post", posts)
	}
}

func TestNormalizeTasksSkipsNil(t *testing.T) {
	tasks := NormalizeTasks([]map[string]any{
		{"id": float64(1), "description": "a"},
		nil,
		{"id": float64(2), "description": "b"},
	})
	if len(tasks) != 2 || tasks[0].ID != 1 || tasks[1].ID != 2 {
		t.Errorf("NormalizeTasks = %+v", tasks)
	}
	if got := NormalizeTasks(nil); got == nil || len(got) != 0 {
		t.Errorf("NormalizeTasks(nil) = %#v, want empty non-nil slice", got)
	}
}
