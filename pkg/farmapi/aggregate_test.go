// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package farmapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/agroview/pkg/farm"
	"github.com/AleutianAI/agroview/pkg/viewstate"
)

// fixedNow anchors derived day counts in every aggregation test.
var fixedNow = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

// farmBackend is a canned single-user backend: one field with a crop, a
// progress history, and two tasks. Individual routes can be overridden to
// simulate partial failure.
type farmBackend struct {
	mux       *http.ServeMux
	overrides map[string]http.HandlerFunc
}

func newFarmBackend() *farmBackend {
	b := &farmBackend{mux: http.NewServeMux(), overrides: map[string]http.HandlerFunc{}}

	b.mux.HandleFunc("GET /fields/12", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"id": 12, "name": "North Field", "imageUrl": "https://img/north.jpg",
			"location": "Valley", "field_size": "12 ha",
			"progressHistoryId": 4,
		})
	})
	b.mux.HandleFunc("GET /fields/user/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": 12, "name": "North Field", "progressHistoryId": 4},
			{"id": 13, "name": "South Field"},
		})
	})
	b.mux.HandleFunc("GET /progress/4", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"id": 4, "watered": "2024-01-28T00:00:00",
			"fertilizedDate": "2024-01-15T00:00:00",
		})
	})
	b.mux.HandleFunc("GET /tasks/field/12", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": 1, "fieldId": 12, "description": "Irrigate", "due_date": "2024-02-05T00:00:00"},
			{"id": 2, "fieldId": 12, "task": "Weed rows", "dueDate": "2024-02-10T00:00:00"},
		})
	})
	b.mux.HandleFunc("GET /tasks/field/13", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": 3, "fieldId": 13, "description": "Fix fence", "due_date": "2024-02-20T00:00:00"},
		})
	})
	b.mux.HandleFunc("GET /crop-fields/field/12", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"id": 7, "fieldId": 12, "crop": "Corn", "status": "Healthy",
			"planting_date": "2024-01-01T00:00:00", "harvestDate": "2024-04-01T00:00:00",
		})
	})
	b.mux.HandleFunc("GET /crop-fields/field/13", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	return b
}

func (b *farmBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if fn, ok := b.overrides[r.Method+" "+r.URL.Path]; ok {
		fn(w, r)
		return
	}
	b.mux.ServeHTTP(w, r)
}

func (b *farmBackend) fail(route string) {
	b.overrides[route] = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}
}

func newTestAggregator(t *testing.T, backend http.Handler) *Aggregator {
	t.Helper()
	client, _ := newClientFor(t, backend)
	return NewAggregator(client, AggregatorOptions{Now: func() time.Time { return fixedNow }})
}

func TestLoadFieldViewComplete(t *testing.T) {
	agg := newTestAggregator(t, newFarmBackend())
	store := viewstate.NewStore(farm.FieldView{})

	view, err := agg.LoadFieldView(context.Background(), 12, store)
	require.NoError(t, err)

	assert.Equal(t, "North Field", view.Field.Name)
	assert.Equal(t, "https://img/north.jpg", view.Field.ImageURL)

	require.NotNil(t, view.Crop)
	assert.Equal(t, "Corn", view.Crop.Title)
	assert.Equal(t, "North Field", view.Crop.FieldName)
	assert.Equal(t, 31, view.DaysSincePlanting)
	assert.Equal(t, 60, view.HarvestCountdown)

	require.NotNil(t, view.Progress)
	assert.Equal(t, "2024-01-28T00:00:00", view.Progress.Watered)
	assert.Equal(t, "2024-01-15T00:00:00", view.Progress.Fertilized)

	require.Len(t, view.Tasks, 2)
	assert.Equal(t, "Weed rows", view.Tasks[1].Description)
	assert.Equal(t, "North Field", view.Tasks[0].DisplayFieldName)

	// One atomic publish of the complete view.
	assert.Equal(t, view, store.Get())
}

func TestLoadFieldViewDegradesFailedSections(t *testing.T) {
	backend := newFarmBackend()
	backend.fail("GET /tasks/field/12")
	agg := newTestAggregator(t, backend)
	store := viewstate.NewStore(farm.FieldView{})

	view, err := agg.LoadFieldView(context.Background(), 12, store)
	require.NoError(t, err, "a sub-resource failure must not fail the view")
	assert.Empty(t, view.Tasks)
	assert.NotNil(t, view.Crop)
	assert.NotNil(t, view.Progress)
}

func TestLoadFieldViewPrimaryFailure(t *testing.T) {
	backend := newFarmBackend()
	backend.fail("GET /fields/12")
	agg := newTestAggregator(t, backend)

	initial := farm.FieldView{Field: farm.Field{ID: 99, Name: "previous view"}}
	store := viewstate.NewStore(initial)

	_, err := agg.LoadFieldView(context.Background(), 12, store)
	require.Error(t, err)
	assert.Equal(t, initial, store.Get(), "a failed primary fetch must leave the store untouched")
}

func TestLoadFieldViewSkipsUnreferencedProgress(t *testing.T) {
	backend := newFarmBackend()
	var progressHits atomic.Int32
	backend.overrides["GET /fields/12"] = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": 12, "name": "North Field"})
	}
	backend.overrides["GET /progress/4"] = func(w http.ResponseWriter, r *http.Request) {
		progressHits.Add(1)
		writeJSON(w, map[string]any{"id": 4})
	}
	agg := newTestAggregator(t, backend)
	store := viewstate.NewStore(farm.FieldView{})

	view, err := agg.LoadFieldView(context.Background(), 12, store)
	require.NoError(t, err)
	assert.Nil(t, view.Progress)
	assert.Equal(t, int32(0), progressHits.Load(), "no progressHistoryId means no progress fetch")
}

func TestLoadFieldViewDropsSupersededLoad(t *testing.T) {
	backend := newFarmBackend()
	var hits atomic.Int32
	firstArrived := make(chan struct{})
	release := make(chan struct{})
	backend.overrides["GET /fields/12"] = func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			// First load stalls until the second one has finished.
			close(firstArrived)
			<-release
			writeJSON(w, map[string]any{"id": 12, "name": "older revision"})
			return
		}
		writeJSON(w, map[string]any{"id": 12, "name": "newer revision"})
	}
	agg := newTestAggregator(t, backend)
	store := viewstate.NewStore(farm.FieldView{})

	type loadResult struct {
		view farm.FieldView
		err  error
	}
	firstDone := make(chan loadResult, 1)
	go func() {
		view, err := agg.LoadFieldView(context.Background(), 12, store)
		firstDone <- loadResult{view, err}
	}()
	<-firstArrived

	second, err := agg.LoadFieldView(context.Background(), 12, store)
	require.NoError(t, err)
	require.Equal(t, "newer revision", second.Field.Name)

	close(release)
	first := <-firstDone
	require.NoError(t, first.err)
	assert.Equal(t, "older revision", first.view.Field.Name)

	// The stalled load completed last but must not overwrite the newer one.
	assert.Equal(t, "newer revision", store.Get().Field.Name,
		"a superseded load must publish nothing")
}

func TestLoadFieldSummaries(t *testing.T) {
	agg := newTestAggregator(t, newFarmBackend())

	summaries, err := agg.LoadFieldSummaries(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "North Field", summaries[0].Name)
	assert.Equal(t, "Corn", summaries[0].CropName)
	assert.Equal(t, farm.StatusHealthy, summaries[0].Status)
	assert.Equal(t, 31, summaries[0].Days)

	// Field without a crop renders as unknown, not as a failure.
	assert.Equal(t, "South Field", summaries[1].Name)
	assert.Equal(t, farm.StatusUnknown, summaries[1].Status)
	assert.Empty(t, summaries[1].CropName)
}

func TestLoadCropsOverview(t *testing.T) {
	agg := newTestAggregator(t, newFarmBackend())

	crops, err := agg.LoadCropsOverview(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, crops, 1, "fields without a crop are skipped")
	assert.Equal(t, "Corn", crops[0].Title)
	assert.Equal(t, "North Field", crops[0].FieldName)
}

func TestLoadTasksOverview(t *testing.T) {
	agg := newTestAggregator(t, newFarmBackend())

	tasks, err := agg.LoadTasksOverview(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	// Field order preserved: North Field's tasks before South Field's.
	assert.Equal(t, "North Field", tasks[0].DisplayFieldName)
	assert.Equal(t, "North Field", tasks[1].DisplayFieldName)
	assert.Equal(t, "South Field", tasks[2].DisplayFieldName)
}

func TestLoadTasksOverviewDegrades(t *testing.T) {
	backend := newFarmBackend()
	backend.fail("GET /tasks/field/12")
	agg := newTestAggregator(t, backend)

	tasks, err := agg.LoadTasksOverview(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Fix fence", tasks[0].Description)
}
