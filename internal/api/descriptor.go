// Package api implements the typed request layer: endpoint descriptors,
// the HTTP client, and response classification against the error
// taxonomy.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"grantsassist-client/internal/common/errors"
	"grantsassist-client/internal/models"
)

// QueryItem is one query parameter. Items keep their declaration order
// when the URL is built.
type QueryItem struct {
	Key   string
	Value string
}

// RequestDescriptor describes one API operation as pure data:
// constructing one performs no I/O.
type RequestDescriptor struct {
	Path         string
	Method       string
	Headers      map[string]string
	Query        []QueryItem
	Body         []byte
	RequiresAuth bool
}

type endpointKind int

const (
	epRegister endpointKind = iota
	epLogin
	epAppleSignIn
	epCurrentUser
	epListPrograms
	epGetProgram
	epListCategories
	epListApplications
	epCreateApplication
	epGetApplication
	epUpdateApplication
	epDeleteApplication
	epCheckEligibility
	epCheckProgramEligibility
	epGetProfile
	epUpdateProfile
	epRegisterDevice
	epUnregisterDevice
	epGetPreferences
	epUpdatePreferences
)

// Endpoint is a tagged description of one API operation together with
// its typed parameters. Use the constructor matching the operation;
// Descriptor performs the single exhaustive match over the tag.
type Endpoint struct {
	kind endpointKind

	register      models.RegisterRequest
	username      string
	password      string
	apple         models.AppleSignInRequest
	programFilter models.ProgramFilter
	id            string
	statusFilter  *models.ApplicationStatus
	appCreate     models.ApplicationCreate
	appUpdate     models.ApplicationUpdate
	profileUpdate models.ProfileUpdate
	device        models.DeviceRegistration
	prefs         models.NotificationPreferences
}

func Register(req models.RegisterRequest) Endpoint {
	return Endpoint{kind: epRegister, register: req}
}

// Login is the single form-urlencoded operation in the system, and the
// only unauthenticated write besides registration.
func Login(username, password string) Endpoint {
	return Endpoint{kind: epLogin, username: username, password: password}
}

func AppleSignIn(req models.AppleSignInRequest) Endpoint {
	return Endpoint{kind: epAppleSignIn, apple: req}
}

func CurrentUser() Endpoint {
	return Endpoint{kind: epCurrentUser}
}

func ListPrograms(filter models.ProgramFilter) Endpoint {
	return Endpoint{kind: epListPrograms, programFilter: filter}
}

func GetProgram(programID string) Endpoint {
	return Endpoint{kind: epGetProgram, id: programID}
}

func ListCategories() Endpoint {
	return Endpoint{kind: epListCategories}
}

func ListApplications(status *models.ApplicationStatus) Endpoint {
	return Endpoint{kind: epListApplications, statusFilter: status}
}

func CreateApplication(programID string) Endpoint {
	return Endpoint{kind: epCreateApplication, appCreate: models.ApplicationCreate{ProgramID: programID}}
}

func GetApplication(appID string) Endpoint {
	return Endpoint{kind: epGetApplication, id: appID}
}

func UpdateApplication(appID string, update models.ApplicationUpdate) Endpoint {
	return Endpoint{kind: epUpdateApplication, id: appID, appUpdate: update}
}

func DeleteApplication(appID string) Endpoint {
	return Endpoint{kind: epDeleteApplication, id: appID}
}

func CheckEligibility() Endpoint {
	return Endpoint{kind: epCheckEligibility}
}

func CheckProgramEligibility(programID string) Endpoint {
	return Endpoint{kind: epCheckProgramEligibility, id: programID}
}

func GetProfile() Endpoint {
	return Endpoint{kind: epGetProfile}
}

func UpdateProfile(update models.ProfileUpdate) Endpoint {
	return Endpoint{kind: epUpdateProfile, profileUpdate: update}
}

func RegisterDevice(reg models.DeviceRegistration) Endpoint {
	return Endpoint{kind: epRegisterDevice, device: reg}
}

func UnregisterDevice(reg models.DeviceRegistration) Endpoint {
	return Endpoint{kind: epUnregisterDevice, device: reg}
}

func GetPreferences() Endpoint {
	return Endpoint{kind: epGetPreferences}
}

func UpdatePreferences(prefs models.NotificationPreferences) Endpoint {
	return Endpoint{kind: epUpdatePreferences, prefs: prefs}
}

// Operation returns a stable name for logging and metrics labels.
func (e Endpoint) Operation() string {
	switch e.kind {
	case epRegister:
		return "auth.register"
	case epLogin:
		return "auth.login"
	case epAppleSignIn:
		return "auth.apple"
	case epCurrentUser:
		return "auth.me"
	case epListPrograms:
		return "programs.list"
	case epGetProgram:
		return "programs.get"
	case epListCategories:
		return "programs.categories"
	case epListApplications:
		return "applications.list"
	case epCreateApplication:
		return "applications.create"
	case epGetApplication:
		return "applications.get"
	case epUpdateApplication:
		return "applications.update"
	case epDeleteApplication:
		return "applications.delete"
	case epCheckEligibility:
		return "eligibility.check"
	case epCheckProgramEligibility:
		return "eligibility.check_program"
	case epGetProfile:
		return "users.profile.get"
	case epUpdateProfile:
		return "users.profile.update"
	case epRegisterDevice:
		return "notifications.device.register"
	case epUnregisterDevice:
		return "notifications.device.unregister"
	case epGetPreferences:
		return "notifications.preferences.get"
	case epUpdatePreferences:
		return "notifications.preferences.update"
	}
	return "unknown"
}

// Descriptor builds the request descriptor for this operation. The only
// possible failure is body serialization, reported as an EncodingError.
func (e Endpoint) Descriptor() (RequestDescriptor, error) {
	switch e.kind {
	case epRegister:
		return jsonDescriptor(http.MethodPost, "/api/auth/register", e.register, false)

	case epLogin:
		form := url.Values{}
		form.Set("username", e.username)
		form.Set("password", e.password)
		return RequestDescriptor{
			Path:   "/api/auth/token",
			Method: http.MethodPost,
			Headers: map[string]string{
				"Content-Type": "application/x-www-form-urlencoded",
			},
			Body:         []byte(form.Encode()),
			RequiresAuth: false,
		}, nil

	case epAppleSignIn:
		return jsonDescriptor(http.MethodPost, "/api/auth/apple", e.apple, false)

	case epCurrentUser:
		return RequestDescriptor{Path: "/api/auth/me", Method: http.MethodGet, RequiresAuth: true}, nil

	case epListPrograms:
		query := []QueryItem{}
		if e.programFilter.Category != nil {
			query = append(query, QueryItem{Key: "category", Value: string(*e.programFilter.Category)})
		}
		if e.programFilter.Search != "" {
			query = append(query, QueryItem{Key: "search", Value: e.programFilter.Search})
		}
		query = append(query, QueryItem{Key: "active_only", Value: strconv.FormatBool(e.programFilter.ActiveOnly)})
		return RequestDescriptor{
			Path:         "/api/programs/",
			Method:       http.MethodGet,
			Query:        query,
			RequiresAuth: true,
		}, nil

	case epGetProgram:
		return RequestDescriptor{
			Path:         fmt.Sprintf("/api/programs/%s", e.id),
			Method:       http.MethodGet,
			RequiresAuth: true,
		}, nil

	case epListCategories:
		return RequestDescriptor{Path: "/api/programs/categories", Method: http.MethodGet, RequiresAuth: true}, nil

	case epListApplications:
		var query []QueryItem
		if e.statusFilter != nil {
			query = append(query, QueryItem{Key: "status", Value: string(*e.statusFilter)})
		}
		return RequestDescriptor{
			Path:         "/api/applications/",
			Method:       http.MethodGet,
			Query:        query,
			RequiresAuth: true,
		}, nil

	case epCreateApplication:
		return jsonDescriptor(http.MethodPost, "/api/applications/", e.appCreate, true)

	case epGetApplication:
		return RequestDescriptor{
			Path:         fmt.Sprintf("/api/applications/%s", e.id),
			Method:       http.MethodGet,
			RequiresAuth: true,
		}, nil

	case epUpdateApplication:
		return jsonDescriptor(http.MethodPatch, fmt.Sprintf("/api/applications/%s", e.id), e.appUpdate, true)

	case epDeleteApplication:
		return RequestDescriptor{
			Path:         fmt.Sprintf("/api/applications/%s", e.id),
			Method:       http.MethodDelete,
			RequiresAuth: true,
		}, nil

	case epCheckEligibility:
		return RequestDescriptor{Path: "/api/eligibility/check", Method: http.MethodGet, RequiresAuth: true}, nil

	case epCheckProgramEligibility:
		return RequestDescriptor{
			Path:         fmt.Sprintf("/api/eligibility/check/%s", e.id),
			Method:       http.MethodGet,
			RequiresAuth: true,
		}, nil

	case epGetProfile:
		return RequestDescriptor{Path: "/api/users/profile", Method: http.MethodGet, RequiresAuth: true}, nil

	case epUpdateProfile:
		return jsonDescriptor(http.MethodPatch, "/api/users/profile", e.profileUpdate, true)

	case epRegisterDevice:
		return jsonDescriptor(http.MethodPost, "/api/notifications/device", e.device, true)

	case epUnregisterDevice:
		return jsonDescriptor(http.MethodDelete, "/api/notifications/device", e.device, true)

	case epGetPreferences:
		return RequestDescriptor{Path: "/api/notifications/preferences", Method: http.MethodGet, RequiresAuth: true}, nil

	case epUpdatePreferences:
		return jsonDescriptor(http.MethodPatch, "/api/notifications/preferences", e.prefs, true)
	}

	return RequestDescriptor{}, errors.NewInvalidRequestError(fmt.Sprintf("unknown endpoint kind %d", e.kind))
}

func jsonDescriptor(method, path string, body interface{}, requiresAuth bool) (RequestDescriptor, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return RequestDescriptor{}, errors.NewEncodingError(err)
	}
	return RequestDescriptor{
		Path:         path,
		Method:       method,
		Body:         encoded,
		RequiresAuth: requiresAuth,
	}, nil
}
