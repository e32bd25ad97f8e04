// internal/models/profile.go
package models

// UserProfile is the reusable applicant record: sparse, mostly optional
// fields that feed grant applications. Saved only as a whole via the
// profile update operation.
type UserProfile struct {
	ID                    string   `json:"id"`
	FullName              *string  `json:"full_name,omitempty"`
	OrganizationName      *string  `json:"organization_name,omitempty"`
	OrganizationType      *string  `json:"organization_type,omitempty"`
	Address               *string  `json:"address,omitempty"`
	City                  *string  `json:"city,omitempty"`
	State                 *string  `json:"state,omitempty"`
	ZipCode               *string  `json:"zip_code,omitempty"`
	CongressionalDistrict *string  `json:"congressional_district,omitempty"`
	Phone                 *string  `json:"phone,omitempty"`
	Website               *string  `json:"website,omitempty"`
	EIN                   *string  `json:"ein,omitempty"`
	UEINumber             *string  `json:"uei_number,omitempty"`
	SAMRegistered         bool     `json:"sam_registered"`
	DUNSNumber            *string  `json:"duns_number,omitempty"`
	IsVeteran             *bool    `json:"is_veteran,omitempty"`
	IsMinorityOwned       *bool    `json:"is_minority_owned,omitempty"`
	IsWomanOwned          *bool    `json:"is_woman_owned,omitempty"`
	IsRural               *bool    `json:"is_rural,omitempty"`
	AnnualRevenue         *float64 `json:"annual_revenue,omitempty"`
	EmployeeCount         *int     `json:"employee_count,omitempty"`
	YearsInOperation      *int     `json:"years_in_operation,omitempty"`
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

// keyFields returns the ten fields that count toward completeness.
func (p UserProfile) keyFields() []*string {
	return []*string{
		p.FullName,
		p.OrganizationName,
		p.OrganizationType,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.Phone,
		p.EIN,
		p.UEINumber,
	}
}

// CompletenessScore is the percentage of key fields populated, rounded
// down to an integer.
func (p UserProfile) CompletenessScore() int {
	fields := p.keyFields()
	populated := 0
	for _, f := range fields {
		if nonEmpty(f) {
			populated++
		}
	}
	return populated * 100 / len(fields)
}

// HasBasicInfo reports whether the minimum personal info is present.
func (p UserProfile) HasBasicInfo() bool {
	return nonEmpty(p.FullName)
}

// HasOrganizationInfo reports whether an organization is named.
func (p UserProfile) HasOrganizationInfo() bool {
	return nonEmpty(p.OrganizationName)
}

// HasFederalIDs reports whether at least one federal identifier is present.
func (p UserProfile) HasFederalIDs() bool {
	return nonEmpty(p.EIN) || nonEmpty(p.UEINumber)
}

// ProfileUpdate is the body of a profile PATCH. Nil fields are omitted;
// the server replaces the record field-by-field from what is sent.
type ProfileUpdate struct {
	FullName         *string  `json:"full_name,omitempty"`
	OrganizationName *string  `json:"organization_name,omitempty"`
	OrganizationType *string  `json:"organization_type,omitempty"`
	Address          *string  `json:"address,omitempty"`
	City             *string  `json:"city,omitempty"`
	State            *string  `json:"state,omitempty"`
	ZipCode          *string  `json:"zip_code,omitempty"`
	Phone            *string  `json:"phone,omitempty"`
	Website          *string  `json:"website,omitempty"`
	EIN              *string  `json:"ein,omitempty"`
	UEINumber        *string  `json:"uei_number,omitempty"`
	SAMRegistered    *bool    `json:"sam_registered,omitempty"`
	IsVeteran        *bool    `json:"is_veteran,omitempty"`
	IsMinorityOwned  *bool    `json:"is_minority_owned,omitempty"`
	IsWomanOwned     *bool    `json:"is_woman_owned,omitempty"`
	IsRural          *bool    `json:"is_rural,omitempty"`
	AnnualRevenue    *float64 `json:"annual_revenue,omitempty"`
	EmployeeCount    *int     `json:"employee_count,omitempty"`
	YearsInOperation *int     `json:"years_in_operation,omitempty"`
}
