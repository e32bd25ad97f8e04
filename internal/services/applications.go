package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"grantsassist-client/internal/api"
	"grantsassist-client/internal/common/errors"
	"grantsassist-client/internal/common/jsonval"
	"grantsassist-client/internal/common/logger"
	"grantsassist-client/internal/models"
)

// ApplicationsService covers the application lifecycle: create, save,
// submit, delete. Save and submit enforce the client-side guards before
// any request leaves the process.
type ApplicationsService struct {
	client *api.Client
	log    logger.Logger
}

func NewApplicationsService(client *api.Client, log logger.Logger) *ApplicationsService {
	return &ApplicationsService{client: client, log: log}
}

// List fetches the user's applications, optionally filtered by status.
func (s *ApplicationsService) List(ctx context.Context, status *models.ApplicationStatus) (*models.ApplicationListResponse, error) {
	var resp models.ApplicationListResponse
	if err := s.client.Do(ctx, api.ListApplications(status), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get fetches a single application by ID.
func (s *ApplicationsService) Get(ctx context.Context, appID string) (*models.Application, error) {
	var app models.Application
	if err := s.client.Do(ctx, api.GetApplication(appID), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Create starts a new draft application for the given program.
func (s *ApplicationsService) Create(ctx context.Context, programID string) (*models.Application, error) {
	var app models.Application
	if err := s.client.Do(ctx, api.CreateApplication(programID), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Save persists form data on an editable application. Saving always
// moves the application to in_progress, including from draft and from
// ready_to_submit.
func (s *ApplicationsService) Save(ctx context.Context, app models.Application, form *jsonval.Value) (*models.Application, error) {
	if !app.Status.IsEditable() {
		return nil, errors.NewPreconditionNotMetError(
			fmt.Sprintf("application in status %s cannot be edited", app.Status))
	}

	status := models.StatusInProgress
	update := models.ApplicationUpdate{Status: &status, FormData: form}

	var saved models.Application
	if err := s.client.Do(ctx, api.UpdateApplication(app.ID, update), &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Submit submits an application. The completeness guard runs before any
// network activity: an application under the submission threshold is
// rejected locally. A non-nil form is saved first; when the save
// succeeds but the submit fails, the application is left in_progress
// with the saved data intact.
func (s *ApplicationsService) Submit(ctx context.Context, app models.Application, form *jsonval.Value) (*models.Application, error) {
	if !app.Status.IsEditable() {
		return nil, errors.NewPreconditionNotMetError(
			fmt.Sprintf("application in status %s cannot be submitted", app.Status))
	}
	if app.CompletenessScore < models.MinSubmitCompleteness {
		return nil, errors.NewPreconditionNotMetError(
			fmt.Sprintf("completeness %.0f is below the required %.0f", app.CompletenessScore, models.MinSubmitCompleteness))
	}

	if form != nil {
		saved, err := s.Save(ctx, app, form)
		if err != nil {
			return nil, err
		}
		app = *saved
	}

	status := models.StatusSubmitted
	update := models.ApplicationUpdate{Status: &status}

	var submitted models.Application
	if err := s.client.Do(ctx, api.UpdateApplication(app.ID, update), &submitted); err != nil {
		return nil, err
	}

	s.log.Info("application submitted", map[string]interface{}{
		"application_id": submitted.ID,
		"program_id":     submitted.ProgramID,
	})
	return &submitted, nil
}

// Delete removes an application. Only editable applications may be
// deleted; the guard runs locally so a submitted application never
// produces a delete request.
func (s *ApplicationsService) Delete(ctx context.Context, app models.Application) error {
	if !app.Status.IsEditable() {
		return errors.NewPreconditionNotMetError(
			fmt.Sprintf("application in status %s cannot be deleted", app.Status))
	}
	return s.client.Do(ctx, api.DeleteApplication(app.ID), nil)
}

// ValidateForm checks the form data against the program's required
// fields. It returns nil when every required field is present, or a
// form validation error naming the failures.
func (s *ApplicationsService) ValidateForm(form *jsonval.Value, program models.GrantProgram) error {
	if len(program.RequiredFields) == 0 {
		return nil
	}

	schema := map[string]interface{}{
		"type":     "object",
		"required": program.RequiredFields,
	}

	var document interface{}
	if form != nil {
		document = form.ToInterface()
	} else {
		document = map[string]interface{}{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return errors.NewFormValidationError(err.Error())
	}
	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, desc.String())
	}
	return errors.NewFormValidationError(strings.Join(messages, "; "))
}
