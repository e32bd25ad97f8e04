package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantsassist-client/internal/api"
	"grantsassist-client/internal/common/config"
	"grantsassist-client/internal/common/errors"
	"grantsassist-client/internal/common/jsonval"
	"grantsassist-client/internal/common/logger"
	"grantsassist-client/internal/credentials"
	"grantsassist-client/internal/models"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

// recordingBackend captures every request and replays canned responses.
type recordingBackend struct {
	requests []recordedRequest
	handler  http.HandlerFunc
}

func (b *recordingBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.requests = append(b.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Body:   string(body),
	})
	b.handler(w, r)
}

func newAppsService(t *testing.T, backend *recordingBackend) (*ApplicationsService, func()) {
	t.Helper()
	server := httptest.NewServer(backend)
	client, err := api.NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 5000}, credentials.NewMemoryStore(), logger.NewTestLogger(t))
	require.NoError(t, err)
	return NewApplicationsService(client, logger.NewTestLogger(t)), server.Close
}

func applicationJSON(id string, status models.ApplicationStatus, completeness float64) string {
	app := models.Application{
		ID:                id,
		ProgramID:         "p1",
		Status:            status,
		CompletenessScore: completeness,
		CreatedAt:         "2026-08-01T09:00:00",
		UpdatedAt:         "2026-08-02T09:00:00",
	}
	if status.IsSubmittedOrLater() {
		at := "2026-08-20T10:00:00"
		app.SubmittedAt = &at
	}
	out, _ := json.Marshal(app)
	return string(out)
}

func TestSubmitBelowThresholdMakesNoRequest(t *testing.T) {
	backend := &recordingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an incomplete application")
	}}
	svc, done := newAppsService(t, backend)
	defer done()

	app := models.Application{ID: "a1", Status: models.StatusInProgress, CompletenessScore: 79}
	_, err := svc.Submit(context.Background(), app, nil)

	var vErr *errors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "PRECONDITION_NOT_MET", vErr.Code)
	assert.Empty(t, backend.requests)
}

func TestSubmitNonEditableMakesNoRequest(t *testing.T) {
	backend := &recordingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for a submitted application")
	}}
	svc, done := newAppsService(t, backend)
	defer done()

	app := models.Application{ID: "a1", Status: models.StatusSubmitted, CompletenessScore: 100}
	_, err := svc.Submit(context.Background(), app, nil)

	var vErr *errors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, backend.requests)
}

func TestSubmitSavesFormBeforeSubmitting(t *testing.T) {
	responses := []string{
		applicationJSON("a1", models.StatusInProgress, 85),
		applicationJSON("a1", models.StatusSubmitted, 85),
	}
	call := 0
	backend := &recordingBackend{}
	backend.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(responses[call]))
		call++
	}
	svc, done := newAppsService(t, backend)
	defer done()

	var form jsonval.Value
	require.NoError(t, json.Unmarshal([]byte(`{"project_title":"Clinic expansion"}`), &form))

	app := models.Application{ID: "a1", Status: models.StatusReadyToSubmit, CompletenessScore: 85}
	submitted, err := svc.Submit(context.Background(), app, &form)
	require.NoError(t, err)

	require.Len(t, backend.requests, 2)

	save := backend.requests[0]
	assert.Equal(t, http.MethodPatch, save.Method)
	assert.Equal(t, "/api/applications/a1", save.Path)
	assert.JSONEq(t, `{"status":"in_progress","form_data":{"project_title":"Clinic expansion"}}`, save.Body)

	submit := backend.requests[1]
	assert.Equal(t, http.MethodPatch, submit.Method)
	assert.JSONEq(t, `{"status":"submitted"}`, submit.Body)

	assert.Equal(t, models.StatusSubmitted, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)
}

func TestSubmitWithoutFormSkipsSave(t *testing.T) {
	backend := &recordingBackend{}
	backend.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(applicationJSON("a1", models.StatusSubmitted, 90)))
	}
	svc, done := newAppsService(t, backend)
	defer done()

	app := models.Application{ID: "a1", Status: models.StatusInProgress, CompletenessScore: 90}
	_, err := svc.Submit(context.Background(), app, nil)
	require.NoError(t, err)

	require.Len(t, backend.requests, 1)
	assert.JSONEq(t, `{"status":"submitted"}`, backend.requests[0].Body)
}

func TestSubmitStopsWhenSaveFails(t *testing.T) {
	backend := &recordingBackend{}
	backend.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	svc, done := newAppsService(t, backend)
	defer done()

	var form jsonval.Value
	require.NoError(t, json.Unmarshal([]byte(`{"a":1}`), &form))

	app := models.Application{ID: "a1", Status: models.StatusInProgress, CompletenessScore: 85}
	_, err := svc.Submit(context.Background(), app, &form)

	assert.True(t, errors.IsCode(err, errors.ErrCodeServerError))
	assert.Len(t, backend.requests, 1, "submit request not sent after failed save")
}

func TestSaveMovesDraftToInProgress(t *testing.T) {
	backend := &recordingBackend{}
	backend.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(applicationJSON("a1", models.StatusInProgress, 40)))
	}
	svc, done := newAppsService(t, backend)
	defer done()

	app := models.Application{ID: "a1", Status: models.StatusDraft, CompletenessScore: 10}
	saved, err := svc.Save(context.Background(), app, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, saved.Status)

	require.Len(t, backend.requests, 1)
	assert.JSONEq(t, `{"status":"in_progress"}`, backend.requests[0].Body)
}

func TestSaveRejectsNonEditable(t *testing.T) {
	backend := &recordingBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}}
	svc, done := newAppsService(t, backend)
	defer done()

	app := models.Application{ID: "a1", Status: models.StatusUnderReview}
	_, err := svc.Save(context.Background(), app, nil)

	var vErr *errors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestDeleteGuard(t *testing.T) {
	backend := &recordingBackend{}
	backend.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
	svc, done := newAppsService(t, backend)
	defer done()

	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, models.Application{ID: "a1", Status: models.StatusDraft}))
	require.Len(t, backend.requests, 1)
	assert.Equal(t, http.MethodDelete, backend.requests[0].Method)

	err := svc.Delete(ctx, models.Application{ID: "a2", Status: models.StatusSubmitted})
	var vErr *errors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, backend.requests, 1, "guarded delete never reached the server")
}

func TestValidateForm(t *testing.T) {
	svc := NewApplicationsService(nil, logger.NewNoOpLogger())
	program := models.GrantProgram{RequiredFields: []string{"project_title", "budget"}}

	complete := jsonval.Object(
		jsonval.Member{Key: "project_title", Value: jsonval.String("Clinic expansion")},
		jsonval.Member{Key: "budget", Value: jsonval.Int(50000)},
	)
	assert.NoError(t, svc.ValidateForm(&complete, program))

	missing := jsonval.Object(
		jsonval.Member{Key: "project_title", Value: jsonval.String("Clinic expansion")},
	)
	err := svc.ValidateForm(&missing, program)
	var vErr *errors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "FORM_VALIDATION_FAILED", vErr.Code)
	assert.Contains(t, vErr.Detail, "budget")

	assert.Error(t, svc.ValidateForm(nil, program))
	assert.NoError(t, svc.ValidateForm(nil, models.GrantProgram{}))
}
