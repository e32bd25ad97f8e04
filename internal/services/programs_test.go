package services

import (
	"context"
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

func newProgramsService(t *testing.T, handler http.Handler) (*ProgramsService, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	client, err := api.NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 5000}, credentials.NewMemoryStore(), logger.NewTestLogger(t))
	require.NoError(t, err)
	return NewProgramsService(client, logger.NewTestLogger(t)), server.Close
}

func TestListPrograms(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/programs/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "healthcare", r.URL.Query().Get("category"))
		w.Write([]byte(`{"total":1,"items":[{"id":"p1","name":"Rural Health Grant","category":"healthcare","rolling_deadline":false}]}`))
	})
	svc, done := newProgramsService(t, mux)
	defer done()

	category := models.CategoryHealthcare
	resp, err := svc.List(context.Background(), models.ProgramFilter{Category: &category, ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Rural Health Grant", resp.Items[0].Name)
	assert.True(t, resp.Items[0].Active())
}

func TestCategories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/programs/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"categories":[{"id":"healthcare","name":"Healthcare"},{"id":"education","name":"Education"}]}`))
	})
	svc, done := newProgramsService(t, mux)
	defer done()

	resp, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Categories, 2)
	assert.Equal(t, "healthcare", resp.Categories[0].ID)
}

func TestLoadDiscoverySwallowsEligibilityFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/programs/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":0,"items":[]}`))
	})
	mux.HandleFunc("/api/eligibility/check", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc, done := newProgramsService(t, mux)
	defer done()

	page, err := svc.LoadDiscovery(context.Background(), models.ProgramFilter{})
	require.NoError(t, err, "discovery succeeds even when the eligibility prefetch fails")
	assert.NotNil(t, page.Programs)
	assert.Nil(t, page.Eligibility)
}

func TestLoadDiscoverySortsEligibility(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/programs/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":0,"items":[]}`))
	})
	mux.HandleFunc("/api/eligibility/check", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_programs":3,"eligible_count":2,"items":[
			{"program_id":"p1","eligible":true,"match_score":55,"missing_requirements":[]},
			{"program_id":"p2","eligible":true,"match_score":90,"missing_requirements":[]},
			{"program_id":"p3","eligible":false,"match_score":70,"missing_requirements":["ein"]}
		]}`))
	})
	svc, done := newProgramsService(t, mux)
	defer done()

	page, err := svc.LoadDiscovery(context.Background(), models.ProgramFilter{})
	require.NoError(t, err)
	require.NotNil(t, page.Eligibility)
	assert.Equal(t, "p2", page.Eligibility.Items[0].ProgramID)
	assert.Equal(t, "p3", page.Eligibility.Items[1].ProgramID)
	assert.Equal(t, "p1", page.Eligibility.Items[2].ProgramID)
}

func TestLoadDiscoveryFailsWhenProgramsFail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/programs/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc, done := newProgramsService(t, mux)
	defer done()

	_, err := svc.LoadDiscovery(context.Background(), models.ProgramFilter{})
	assert.Error(t, err)
}
