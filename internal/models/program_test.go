package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActiveDefaultsToTrue(t *testing.T) {
	assert.True(t, GrantProgram{}.Active())

	inactive := false
	assert.False(t, GrantProgram{IsActive: &inactive}.Active())

	active := true
	assert.True(t, GrantProgram{IsActive: &active}.Active())
}

func TestDeadlineSoon(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	window := 30 * 24 * time.Hour

	within := "2026-08-15T00:00:00Z"
	past := "2026-07-01T00:00:00Z"
	far := "2026-12-01T00:00:00Z"

	tests := []struct {
		name    string
		program GrantProgram
		want    bool
	}{
		{name: "within window", program: GrantProgram{Deadline: &within}, want: true},
		{name: "already passed", program: GrantProgram{Deadline: &past}, want: false},
		{name: "beyond window", program: GrantProgram{Deadline: &far}, want: false},
		{name: "no deadline", program: GrantProgram{}, want: false},
		{name: "rolling never soon", program: GrantProgram{RollingDeadline: true, Deadline: &within}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.program.DeadlineSoon(now, window))
		})
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range AllCategories {
		assert.True(t, c.IsValid(), string(c))
	}
	assert.False(t, GrantCategory("defense").IsValid())
}
