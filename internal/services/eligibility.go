package services

import (
	"context"

	"grantsassist-client/internal/api"
	"grantsassist-client/internal/common/logger"
	"grantsassist-client/internal/models"
)

// EligibilityService runs the server-side eligibility checks.
type EligibilityService struct {
	client *api.Client
	log    logger.Logger
}

func NewEligibilityService(client *api.Client, log logger.Logger) *EligibilityService {
	return &EligibilityService{client: client, log: log}
}

// CheckAll checks the current user against every active program. Results
// come back sorted best first.
func (s *EligibilityService) CheckAll(ctx context.Context) (*models.EligibilityCheckResponse, error) {
	var resp models.EligibilityCheckResponse
	if err := s.client.Do(ctx, api.CheckEligibility(), &resp); err != nil {
		return nil, err
	}
	resp.SortByScore()
	return &resp, nil
}

// CheckProgram checks the current user against one program.
func (s *EligibilityService) CheckProgram(ctx context.Context, programID string) (*models.EligibilityResult, error) {
	var result models.EligibilityResult
	if err := s.client.Do(ctx, api.CheckProgramEligibility(programID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
