// internal/models/program.go
package models

import "time"

// GrantCategory enumerates the categories of grants supported.
type GrantCategory string

const (
	CategoryHealthcare    GrantCategory = "healthcare"
	CategorySmallBusiness GrantCategory = "small_business"
	CategoryEducation     GrantCategory = "education"
	CategoryNonprofit     GrantCategory = "nonprofit"
	CategoryAgriculture   GrantCategory = "agriculture"
	CategoryTechnology    GrantCategory = "technology"
	CategoryHousing       GrantCategory = "housing"
)

// AllCategories lists every grant category in display order.
var AllCategories = []GrantCategory{
	CategoryHealthcare,
	CategorySmallBusiness,
	CategoryEducation,
	CategoryNonprofit,
	CategoryAgriculture,
	CategoryTechnology,
	CategoryHousing,
}

func (c GrantCategory) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// GrantProgram is one grant program as returned by the server. Programs
// are immutable once fetched; a new list fetch replaces them wholesale.
type GrantProgram struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Agency             string        `json:"agency,omitempty"`
	Category           GrantCategory `json:"category"`
	MinAward           *float64      `json:"min_award,omitempty"`
	MaxAward           *float64      `json:"max_award,omitempty"`
	MatchRequired      *float64      `json:"match_required,omitempty"` // percentage, 0-100
	Description        string        `json:"description,omitempty"`
	EligibilitySummary string        `json:"eligibility_summary,omitempty"`
	RequiredFields     []string      `json:"required_fields,omitempty"`
	Deadline           *string       `json:"deadline,omitempty"` // ISO-8601
	RollingDeadline    bool          `json:"rolling_deadline"`
	ProgramURL         string        `json:"program_url,omitempty"`
	IsActive           *bool         `json:"is_active,omitempty"`
}

// Active reports whether the program accepts applications. The server
// omits the flag for active programs, so absence means active.
func (p GrantProgram) Active() bool {
	return p.IsActive == nil || *p.IsActive
}

// DeadlineTime parses the fixed deadline, if any.
func (p GrantProgram) DeadlineTime() (time.Time, bool) {
	if p.Deadline == nil || *p.Deadline == "" {
		return time.Time{}, false
	}
	t, err := parseTimestamp(*p.Deadline)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DeadlineSoon reports whether the fixed deadline falls within the given
// window from now. Rolling programs have no fixed deadline and are never
// deadline-soon.
func (p GrantProgram) DeadlineSoon(now time.Time, within time.Duration) bool {
	if p.RollingDeadline {
		return false
	}
	deadline, ok := p.DeadlineTime()
	if !ok {
		return false
	}
	return deadline.After(now) && deadline.Before(now.Add(within))
}

// ProgramListResponse is the wire envelope for program list requests.
type ProgramListResponse struct {
	Total int            `json:"total"`
	Items []GrantProgram `json:"items"`
}

// CategoryInfo is one entry of the category listing.
type CategoryInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryListResponse is the wire shape of the category listing.
type CategoryListResponse struct {
	Categories []CategoryInfo `json:"categories"`
}

// ProgramFilter narrows a program list request.
type ProgramFilter struct {
	Category   *GrantCategory
	Search     string
	ActiveOnly bool
}
