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
	"grantsassist-client/internal/common/logger"
	"grantsassist-client/internal/credentials"
	"grantsassist-client/internal/models"
)

func TestProfileUpdateSendsOnlyChangedFields(t *testing.T) {
	var patchBody []byte
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			patchBody, _ = io.ReadAll(r.Body)
		}
		w.Write([]byte(`{"id":"prof1","full_name":"Dana Fields","city":"Des Moines","sam_registered":false}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := api.NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 5000}, credentials.NewMemoryStore(), logger.NewTestLogger(t))
	require.NoError(t, err)
	svc := NewProfileService(client, logger.NewTestLogger(t))

	city := "Des Moines"
	profile, err := svc.Update(context.Background(), models.ProfileUpdate{City: &city})
	require.NoError(t, err)

	assert.JSONEq(t, `{"city":"Des Moines"}`, string(patchBody), "nil fields omitted from the patch")
	require.NotNil(t, profile.FullName)
	assert.Equal(t, "Dana Fields", *profile.FullName)
	assert.Equal(t, 20, profile.CompletenessScore())
}

func TestProfileGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(models.UserProfile{ID: "prof1"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := api.NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 5000}, credentials.NewMemoryStore(), logger.NewTestLogger(t))
	require.NoError(t, err)
	svc := NewProfileService(client, logger.NewTestLogger(t))

	profile, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "prof1", profile.ID)
	assert.Equal(t, 0, profile.CompletenessScore())
}
