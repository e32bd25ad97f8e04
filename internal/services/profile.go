package services

import (
	"context"

	"grantsassist-client/internal/api"
	"grantsassist-client/internal/common/logger"
	"grantsassist-client/internal/models"
)

// ProfileService manages the user's grant-seeker profile.
type ProfileService struct {
	client *api.Client
	log    logger.Logger
}

func NewProfileService(client *api.Client, log logger.Logger) *ProfileService {
	return &ProfileService{client: client, log: log}
}

// Get fetches the current user's profile.
func (s *ProfileService) Get(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.client.Do(ctx, api.GetProfile(), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update applies a partial profile update and returns the new profile.
func (s *ProfileService) Update(ctx context.Context, update models.ProfileUpdate) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.client.Do(ctx, api.UpdateProfile(update), &profile); err != nil {
		return nil, err
	}
	s.log.Debug("profile updated", map[string]interface{}{
		"completeness": profile.CompletenessScore(),
	})
	return &profile, nil
}
