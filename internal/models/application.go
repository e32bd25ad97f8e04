// internal/models/application.go
package models

import (
	"fmt"
	"time"

	"grantsassist-client/internal/common/jsonval"
)

// ApplicationStatus is the lifecycle state of a grant application.
type ApplicationStatus string

const (
	StatusDraft         ApplicationStatus = "draft"
	StatusInProgress    ApplicationStatus = "in_progress"
	StatusReadyToSubmit ApplicationStatus = "ready_to_submit"
	StatusSubmitted     ApplicationStatus = "submitted"
	StatusUnderReview   ApplicationStatus = "under_review"
	StatusApproved      ApplicationStatus = "approved"
	StatusDenied        ApplicationStatus = "denied"
)

// AllStatuses lists every application status.
var AllStatuses = []ApplicationStatus{
	StatusDraft,
	StatusInProgress,
	StatusReadyToSubmit,
	StatusSubmitted,
	StatusUnderReview,
	StatusApproved,
	StatusDenied,
}

func (s ApplicationStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsEditable reports whether the application can still be changed by the
// user. Everything from submission onward is server-owned.
func (s ApplicationStatus) IsEditable() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusReadyToSubmit:
		return true
	default:
		return false
	}
}

// IsFinal reports whether the application has reached a terminal decision.
func (s ApplicationStatus) IsFinal() bool {
	return s == StatusApproved || s == StatusDenied
}

// IsSubmittedOrLater reports whether the application has passed the
// submission boundary. submitted_at must be set exactly for these states.
func (s ApplicationStatus) IsSubmittedOrLater() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusDenied:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the client may request the given
// transition. Saving moves any editable application to in_progress;
// submitting moves it to submitted. States beyond submitted are
// server-driven and only ever observed.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if !s.IsEditable() {
		return false
	}
	return next == StatusInProgress || next == StatusSubmitted
}

// MinSubmitCompleteness is the completeness score an application must
// reach before it may be submitted.
const MinSubmitCompleteness = 80.0

// Application is one user's application for a grant program.
type Application struct {
	ID                string            `json:"id"`
	ProgramID         string            `json:"program_id"`
	ProgramName       string            `json:"program_name,omitempty"`
	Status            ApplicationStatus `json:"status"`
	CompletenessScore float64           `json:"completeness_score"` // 0-100
	CreatedAt         string            `json:"created_at"`         // ISO-8601
	UpdatedAt         string            `json:"updated_at"`
	SubmittedAt       *string           `json:"submitted_at,omitempty"`
}

// CanSubmit reports whether the application meets the client-side
// submission preconditions.
func (a Application) CanSubmit() bool {
	return a.Status.IsEditable() && a.CompletenessScore >= MinSubmitCompleteness
}

// CreatedTime and UpdatedTime parse the server timestamps.
func (a Application) CreatedTime() (time.Time, error) { return parseTimestamp(a.CreatedAt) }
func (a Application) UpdatedTime() (time.Time, error) { return parseTimestamp(a.UpdatedAt) }

// Validate checks the cross-field invariants of a fetched application:
// submitted_at is set exactly when the status is submitted or later, and
// updated_at never precedes created_at.
func (a Application) Validate() error {
	if !a.Status.IsValid() {
		return fmt.Errorf("unknown application status %q", a.Status)
	}
	hasSubmittedAt := a.SubmittedAt != nil && *a.SubmittedAt != ""
	if a.Status.IsSubmittedOrLater() != hasSubmittedAt {
		return fmt.Errorf("status %s inconsistent with submitted_at presence", a.Status)
	}
	created, err := a.CreatedTime()
	if err != nil {
		return err
	}
	updated, err := a.UpdatedTime()
	if err != nil {
		return err
	}
	if updated.Before(created) {
		return fmt.Errorf("updated_at %s precedes created_at %s", a.UpdatedAt, a.CreatedAt)
	}
	return nil
}

// ApplicationListResponse is the wire envelope for application lists.
type ApplicationListResponse struct {
	Total int           `json:"total"`
	Items []Application `json:"items"`
}

// ApplicationCreate is the body of a create request.
type ApplicationCreate struct {
	ProgramID string `json:"program_id"`
}

// ApplicationUpdate is the body of a PATCH request. Nil fields are
// omitted and left untouched server-side.
type ApplicationUpdate struct {
	Status   *ApplicationStatus `json:"status,omitempty"`
	FormData *jsonval.Value     `json:"form_data,omitempty"`
}
