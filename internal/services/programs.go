// Package services holds the domain-level operations built on the API
// client: program discovery, application lifecycle, eligibility checks,
// profile management and notification settings.
package services

import (
	"context"

	"grantsassist-client/internal/api"
	"grantsassist-client/internal/common/logger"
	"grantsassist-client/internal/models"
)

// ProgramsService covers grant program discovery.
type ProgramsService struct {
	client *api.Client
	log    logger.Logger
}

func NewProgramsService(client *api.Client, log logger.Logger) *ProgramsService {
	return &ProgramsService{client: client, log: log}
}

// List fetches programs matching the filter.
func (s *ProgramsService) List(ctx context.Context, filter models.ProgramFilter) (*models.ProgramListResponse, error) {
	var resp models.ProgramListResponse
	if err := s.client.Do(ctx, api.ListPrograms(filter), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get fetches a single program by ID.
func (s *ProgramsService) Get(ctx context.Context, programID string) (*models.GrantProgram, error) {
	var program models.GrantProgram
	if err := s.client.Do(ctx, api.GetProgram(programID), &program); err != nil {
		return nil, err
	}
	return &program, nil
}

// Categories fetches the category listing.
func (s *ProgramsService) Categories(ctx context.Context) (*models.CategoryListResponse, error) {
	var resp models.CategoryListResponse
	if err := s.client.Do(ctx, api.ListCategories(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DiscoveryPage is the initial discovery view: the program list plus
// eligibility results when the prefetch succeeded.
type DiscoveryPage struct {
	Programs    *models.ProgramListResponse
	Eligibility *models.EligibilityCheckResponse
}

// LoadDiscovery loads the program list and opportunistically prefetches
// eligibility results. The program list is required; an eligibility
// failure is logged and swallowed, leaving Eligibility nil.
func (s *ProgramsService) LoadDiscovery(ctx context.Context, filter models.ProgramFilter) (*DiscoveryPage, error) {
	programs, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := &DiscoveryPage{Programs: programs}

	var eligibility models.EligibilityCheckResponse
	if err := s.client.Do(ctx, api.CheckEligibility(), &eligibility); err != nil {
		s.log.Debug("eligibility prefetch failed", map[string]interface{}{"error": err.Error()})
		return page, nil
	}
	eligibility.SortByScore()
	page.Eligibility = &eligibility

	return page, nil
}
