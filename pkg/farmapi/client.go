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
Package farmapi talks to the farm-management backend.

client.go holds the thin per-resource HTTP wrappers. Each wrapper maps one
endpoint to one method, returns the decoded JSON payload as-is (raw maps;
normalization into canonical shapes happens in the aggregation layer), and
converts failures into typed APIError values.

# Endpoints

	GET    /fields/{id}
	GET    /fields/user/{userId}
	POST   /fields
	GET    /progress/{progressHistoryId}
	PUT    /progress/{id}
	GET    /tasks/field/{fieldId}
	POST   /tasks
	PUT    /tasks/{id}
	DELETE /tasks/{id}
	GET    /crop-fields/field/{fieldId}
	PUT    /crop-fields/{id}
	DELETE /crop-fields/{id}
	GET    /community-recommendations

All dates cross this boundary as YYYY-MM-DDT00:00:00 strings, never as
time.Time values.

# Retry

Transport failures and 5xx responses are retried up to RetryAttempts times
at this layer only; the aggregation and mutation layers above never retry
(a rolled-back optimistic edit stays rolled back).

# Validation

Mutation payloads are validated locally (go-playground/validator tags)
before any bytes hit the wire; an invalid payload is an
APIErrorInvalidPayload with no network side effects.
*/
package farmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultRetryAttempts matches the backend deployment's expected transient
// failure window; one initial try plus this many retries.
const DefaultRetryAttempts = 2

// Client is the thin HTTP wrapper over the farm backend. It is safe for
// concurrent use; the fan-out loaders issue several calls at once.
type Client struct {
	baseURL  string
	http     *http.Client
	retries  int
	log      *slog.Logger
	validate *validator.Validate
}

// Options configures a Client. The zero value is usable.
type Options struct {
	// HTTPClient overrides the transport. Default: 10s timeout client.
	HTTPClient *http.Client

	// RetryAttempts is the number of retries after the first attempt for
	// transport-level failures. Zero selects DefaultRetryAttempts; a
	// negative value disables retries.
	RetryAttempts int

	// Logger receives request-level debug and warning logs.
	// Default: slog.Default().
	Logger *slog.Logger
}

// NewClient creates a Client for the given base URL, e.g.
// "http://localhost:8080/api/v1".
func NewClient(baseURL string, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	retries := opts.RetryAttempts
	if retries == 0 {
		retries = DefaultRetryAttempts
	}
	if retries < 0 {
		retries = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		retries:  retries,
		log:      logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// -----------------------------------------------------------------------------
// Request payloads
// -----------------------------------------------------------------------------

// CreateFieldRequest is the POST /fields body.
type CreateFieldRequest struct {
	UserID    int    `json:"userId" validate:"required,gt=0"`
	ImageURL  string `json:"imageUrl"`
	Name      string `json:"name" validate:"required"`
	Location  string `json:"location" validate:"required"`
	FieldSize string `json:"fieldSize" validate:"required"`
}

// TaskRequest is the body for both POST /tasks and PUT /tasks/{id}. The
// backend expects camelCase keys here regardless of what it returns.
type TaskRequest struct {
	FieldID     int    `json:"fieldId" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"dueDate" validate:"required"`
}

// ProgressRequest is the PUT /progress/{id} body. Empty strings are legal:
// a date the user never recorded stays empty.
type ProgressRequest struct {
	Watered    string `json:"watered"`
	Fertilized string `json:"fertilized"`
	Pests      string `json:"pests"`
}

// CropUpdateRequest is the PUT /crop-fields/{id} body. The full record is
// sent; the response is known to omit the locally joined field name.
type CropUpdateRequest struct {
	Title        string `json:"title" validate:"required"`
	Status       string `json:"status" validate:"required"`
	PlantingDate string `json:"plantingDate,omitempty"`
	HarvestDate  string `json:"harvestDate,omitempty"`
	SoilType     string `json:"soilType,omitempty"`
	Sunlight     string `json:"sunlight,omitempty"`
	Watering     string `json:"watering,omitempty"`
}

// -----------------------------------------------------------------------------
// Fields
// -----------------------------------------------------------------------------

// GetField fetches one field record by id.
func (c *Client) GetField(ctx context.Context, id int) (map[string]any, error) {
	var out map[string]any
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/fields/%d", id), nil, &out,
		fmt.Sprintf("field %d", id))
	return out, err
}

// GetFieldsByUser fetches all fields owned by a user.
func (c *Client) GetFieldsByUser(ctx context.Context, userID int) ([]map[string]any, error) {
	var out []map[string]any
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/fields/user/%d", userID), nil, &out,
		fmt.Sprintf("fields of user %d", userID))
	return out, err
}

// CreateField creates a field and returns the created record.
func (c *Client) CreateField(ctx context.Context, req CreateFieldRequest) (map[string]any, error) {
	if err := c.checkPayload(req, "new field"); err != nil {
		return nil, err
	}
	var out map[string]any
	err := c.doJSON(ctx, http.MethodPost, "/fields", req, &out, "new field")
	return out, err
}

// -----------------------------------------------------------------------------
// Progress history
// -----------------------------------------------------------------------------

// GetProgress fetches a progress-history record by its own id (the field's
// progressHistoryId, not the field id).
func (c *Client) GetProgress(ctx context.Context, id int) (map[string]any, error) {
	var out map[string]any
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/progress/%d", id), nil, &out,
		fmt.Sprintf("progress %d", id))
	return out, err
}

// UpdateProgress replaces a progress-history record.
func (c *Client) UpdateProgress(ctx context.Context, id int, req ProgressRequest) (map[string]any, error) {
	var out map[string]any
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/progress/%d", id), req, &out,
		fmt.Sprintf("progress %d", id))
	return out, err
}

// -----------------------------------------------------------------------------
// Tasks
// -----------------------------------------------------------------------------

// GetTasksByField fetches the tasks scheduled against a field.
func (c *Client) GetTasksByField(ctx context.Context, fieldID int) ([]map[string]any, error) {
	var out []map[string]any
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/tasks/field/%d", fieldID), nil, &out,
		fmt.Sprintf("tasks of field %d", fieldID))
	return out, err
}

// CreateTask creates a task and returns the created record.
func (c *Client) CreateTask(ctx context.Context, req TaskRequest) (map[string]any, error) {
	if err := c.checkPayload(req, "new task"); err != nil {
		return nil, err
	}
	var out map[string]any
	err := c.doJSON(ctx, http.MethodPost, "/tasks", req, &out, "new task")
	return out, err
}

// UpdateTask replaces a task and returns the updated record.
func (c *Client) UpdateTask(ctx context.Context, id int, req TaskRequest) (map[string]any, error) {
	resource := fmt.Sprintf("task %d", id)
	if err := c.checkPayload(req, resource); err != nil {
		return nil, err
	}
	var out map[string]any
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), req, &out, resource)
	return out, err
}

// DeleteTask removes a task. The backend answers with no content.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil,
		fmt.Sprintf("task %d", id))
}

// -----------------------------------------------------------------------------
// Crops
// -----------------------------------------------------------------------------

// GetCropByField fetches the crop planted on a field, or a NotFound error
// when the field has none.
func (c *Client) GetCropByField(ctx context.Context, fieldID int) (map[string]any, error) {
	var out map[string]any
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/crop-fields/field/%d", fieldID), nil, &out,
		fmt.Sprintf("crop of field %d", fieldID))
	return out, err
}

// UpdateCrop replaces a crop record and returns the backend's response.
// Callers must not assume the response carries locally joined data.
func (c *Client) UpdateCrop(ctx context.Context, id int, req CropUpdateRequest) (map[string]any, error) {
	resource := fmt.Sprintf("crop %d", id)
	if err := c.checkPayload(req, resource); err != nil {
		return nil, err
	}
	var out map[string]any
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/crop-fields/%d", id), req, &out, resource)
	return out, err
}

// DeleteCrop removes a crop.
func (c *Client) DeleteCrop(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/crop-fields/%d", id), nil, nil,
		fmt.Sprintf("crop %d", id))
}

// -----------------------------------------------------------------------------
// Community
// -----------------------------------------------------------------------------

// GetCommunityRecommendations fetches the shared community board. The
// board is global, not scoped to a user.
func (c *Client) GetCommunityRecommendations(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	err := c.doJSON(ctx, http.MethodGet, "/community-recommendations", nil, &out,
		"community recommendations")
	return out, err
}

// -----------------------------------------------------------------------------
// Transport
// -----------------------------------------------------------------------------

// checkPayload validates a request body locally. Failures never reach the
// network.
func (c *Client) checkPayload(payload any, resource string) error {
	if err := c.validate.Struct(payload); err != nil {
		return &APIError{
			Type:     APIErrorInvalidPayload,
			Resource: resource,
			Message:  "request payload failed validation",
			Err:      err,
		}
	}
	return nil
}

// doJSON issues one JSON request with retries and decodes the response into
// out (out may be nil for no-content endpoints).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, resource string) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return &APIError{Type: APIErrorInvalidPayload, Resource: resource,
				Message: "could not encode request body", Err: err}
		}
	}

	requestID := uuid.NewString()
	log := c.log.With("request_id", requestID, "method", method, "path", path)

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			log.Warn("retrying request", "attempt", attempt, "error", lastErr)
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return &APIError{Type: APIErrorTransport, Resource: resource,
				Message: "could not build request", Err: err}
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return &APIError{Type: APIErrorContextCancelled, Resource: resource,
					Message: "request cancelled", Err: err}
			}
			lastErr = err
			continue
		}

		done, err := c.consumeResponse(resp, out, resource)
		if done {
			return err
		}
		lastErr = err
	}

	return &APIError{Type: APIErrorTransport, Resource: resource,
		Message: fmt.Sprintf("backend unreachable after %d attempts", c.retries+1), Err: lastErr}
}

// consumeResponse reads one response. done=false means the attempt may be
// retried (server-side failure).
func (c *Client) consumeResponse(resp *http.Response, out any, resource string) (done bool, err error) {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return true, &APIError{Type: APIErrorNotFound, Resource: resource, Message: "not found"}
	case resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return false, fmt.Errorf("backend returned status %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return true, &APIError{Type: APIErrorTransport, Resource: resource,
			Message: fmt.Sprintf("backend rejected request with status %d: %s",
				resp.StatusCode, strings.TrimSpace(string(data)))}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return true, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return true, &APIError{Type: APIErrorInvalidResponse, Resource: resource,
			Message: "could not decode response body", Err: err}
	}
	return true, nil
}
