package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLevelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  MatchLevel
	}{
		{score: 100, want: MatchExcellent},
		{score: 90, want: MatchExcellent},
		{score: 80, want: MatchExcellent},
		{score: 79.9, want: MatchGood},
		{score: 70, want: MatchGood},
		{score: 60, want: MatchGood},
		{score: 59.9, want: MatchFair},
		{score: 50, want: MatchFair},
		{score: 40, want: MatchFair},
		{score: 39, want: MatchPoor},
		{score: 20, want: MatchPoor},
		{score: 0, want: MatchPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchLevelForScore(tt.score), "score %v", tt.score)
	}
}

func checkResponse(scores ...float64) EligibilityCheckResponse {
	resp := EligibilityCheckResponse{TotalPrograms: len(scores)}
	for i, score := range scores {
		resp.Items = append(resp.Items, EligibilityResult{
			ProgramID:  string(rune('a' + i)),
			MatchScore: score,
		})
	}
	return resp
}

func TestTopMatchesFiltersAndCaps(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   []float64
	}{
		{name: "below threshold dropped", scores: []float64{90, 70, 50, 30}, want: []float64{90, 70}},
		{name: "capped at three", scores: []float64{95, 90, 85, 80, 75}, want: []float64{95, 90, 85}},
		{name: "threshold is inclusive", scores: []float64{60, 59.9}, want: []float64{60}},
		{name: "unsorted input", scores: []float64{61, 99, 70}, want: []float64{99, 70, 61}},
		{name: "no good matches", scores: []float64{40, 20}, want: []float64{}},
		{name: "empty", scores: nil, want: []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := checkResponse(tt.scores...).TopMatches()
			got := make([]float64, 0, len(top))
			for _, r := range top {
				got = append(got, r.MatchScore)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTopMatchesDoesNotMutateInput(t *testing.T) {
	resp := checkResponse(30, 90, 60)
	resp.TopMatches()
	assert.Equal(t, 30.0, resp.Items[0].MatchScore)
}

func TestSortByScoreDescending(t *testing.T) {
	resp := checkResponse(50, 90, 70)
	resp.SortByScore()
	assert.Equal(t, []float64{90, 70, 50}, []float64{
		resp.Items[0].MatchScore,
		resp.Items[1].MatchScore,
		resp.Items[2].MatchScore,
	})
}

func TestHasGoodMatches(t *testing.T) {
	assert.True(t, checkResponse(30, 60).HasGoodMatches())
	assert.False(t, checkResponse(30, 59).HasGoodMatches())
	assert.False(t, checkResponse().HasGoodMatches())
}

func TestEligibilityResultWire(t *testing.T) {
	payload := `{"program_id":"p1","eligible":true,"match_score":85.0,"missing_requirements":["sam_registration"],"notes":"strong fit"}`

	var result EligibilityResult
	require.NoError(t, json.Unmarshal([]byte(payload), &result))

	assert.Equal(t, "p1", result.ProgramID)
	assert.True(t, result.Eligible)
	assert.Equal(t, 85.0, result.MatchScore)
	assert.Equal(t, MatchExcellent, result.MatchLevel())
	assert.Equal(t, []string{"sam_registration"}, result.MissingRequirements)
	require.NotNil(t, result.Notes)
	assert.Equal(t, "strong fit", *result.Notes)
}
