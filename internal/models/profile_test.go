package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCompletenessScore(t *testing.T) {
	empty := UserProfile{}
	assert.Equal(t, 0, empty.CompletenessScore())

	partial := UserProfile{
		FullName:         strPtr("Dana Fields"),
		OrganizationName: strPtr("Fields Farm Co-op"),
		City:             strPtr("Des Moines"),
		State:            strPtr("IA"),
	}
	assert.Equal(t, 40, partial.CompletenessScore())

	full := UserProfile{
		FullName:         strPtr("Dana Fields"),
		OrganizationName: strPtr("Fields Farm Co-op"),
		OrganizationType: strPtr("nonprofit"),
		Address:          strPtr("1 Main St"),
		City:             strPtr("Des Moines"),
		State:            strPtr("IA"),
		ZipCode:          strPtr("50309"),
		Phone:            strPtr("515-555-0100"),
		EIN:              strPtr("12-3456789"),
		UEINumber:        strPtr("ABCDE12345"),
	}
	assert.Equal(t, 100, full.CompletenessScore())
}

func TestEmptyStringsDoNotCount(t *testing.T) {
	p := UserProfile{FullName: strPtr(""), City: strPtr("Austin")}
	assert.Equal(t, 10, p.CompletenessScore())
}

func TestNonKeyFieldsDoNotCount(t *testing.T) {
	p := UserProfile{
		Website:    strPtr("https://example.org"),
		DUNSNumber: strPtr("123456789"),
	}
	assert.Equal(t, 0, p.CompletenessScore())
}

func TestHasFederalIDs(t *testing.T) {
	assert.False(t, UserProfile{}.HasFederalIDs())
	assert.True(t, UserProfile{EIN: strPtr("12-3456789")}.HasFederalIDs())
	assert.True(t, UserProfile{UEINumber: strPtr("ABCDE12345")}.HasFederalIDs())
}
