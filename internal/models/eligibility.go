// internal/models/eligibility.go
package models

import "sort"

// MatchLevel is the coarse classification bucket derived from a match score.
type MatchLevel string

const (
	MatchExcellent MatchLevel = "excellent" // [80, 100]
	MatchGood      MatchLevel = "good"      // [60, 80)
	MatchFair      MatchLevel = "fair"      // [40, 60)
	MatchPoor      MatchLevel = "poor"      // [0, 40)
)

// GoodMatchThreshold is the score at or above which a result counts as a
// good match.
const GoodMatchThreshold = 60.0

// MaxTopMatches caps how many results TopMatches returns.
const MaxTopMatches = 3

// MatchLevelForScore buckets a match score. Pure and total over [0, 100].
func MatchLevelForScore(score float64) MatchLevel {
	switch {
	case score >= 80:
		return MatchExcellent
	case score >= 60:
		return MatchGood
	case score >= 40:
		return MatchFair
	default:
		return MatchPoor
	}
}

// EligibilityResult is one program's eligibility outcome for the current
// user. Results are recomputed server-side on every check and never
// persisted client-side beyond the response lifetime.
type EligibilityResult struct {
	ProgramID           string   `json:"program_id"`
	Eligible            bool     `json:"eligible"`
	MatchScore          float64  `json:"match_score"` // 0-100
	MissingRequirements []string `json:"missing_requirements"`
	Notes               *string  `json:"notes,omitempty"`
}

// MatchLevel derives the classification bucket for this result.
func (r EligibilityResult) MatchLevel() MatchLevel {
	return MatchLevelForScore(r.MatchScore)
}

// EligibilityCheckResponse is the wire envelope of a check-all request.
type EligibilityCheckResponse struct {
	TotalPrograms int                 `json:"total_programs"`
	EligibleCount int                 `json:"eligible_count"`
	Items         []EligibilityResult `json:"items"`
}

// SortByScore orders results by descending match score in place.
func (r *EligibilityCheckResponse) SortByScore() {
	sort.SliceStable(r.Items, func(i, j int) bool {
		return r.Items[i].MatchScore > r.Items[j].MatchScore
	})
}

// TopMatches returns the results scoring at or above the good-match
// threshold, best first, capped at MaxTopMatches.
func (r EligibilityCheckResponse) TopMatches() []EligibilityResult {
	matches := make([]EligibilityResult, 0, MaxTopMatches)
	sorted := make([]EligibilityResult, len(r.Items))
	copy(sorted, r.Items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchScore > sorted[j].MatchScore
	})
	for _, result := range sorted {
		if result.MatchScore < GoodMatchThreshold {
			break
		}
		matches = append(matches, result)
		if len(matches) == MaxTopMatches {
			break
		}
	}
	return matches
}

// HasGoodMatches reports whether any result meets the good-match threshold.
func (r EligibilityCheckResponse) HasGoodMatches() bool {
	for _, result := range r.Items {
		if result.MatchScore >= GoodMatchThreshold {
			return true
		}
	}
	return false
}
