package services

import (
	"context"

	"grantsassist-client/internal/api"
	"grantsassist-client/internal/common/logger"
	"grantsassist-client/internal/models"
)

// NotificationsService manages device registrations and notification
// preferences.
type NotificationsService struct {
	client *api.Client
	log    logger.Logger
}

func NewNotificationsService(client *api.Client, log logger.Logger) *NotificationsService {
	return &NotificationsService{client: client, log: log}
}

// RegisterDevice registers a push token for the current user.
func (s *NotificationsService) RegisterDevice(ctx context.Context, reg models.DeviceRegistration) error {
	return s.client.Do(ctx, api.RegisterDevice(reg), nil)
}

// UnregisterDevice removes a previously registered push token.
func (s *NotificationsService) UnregisterDevice(ctx context.Context, reg models.DeviceRegistration) error {
	return s.client.Do(ctx, api.UnregisterDevice(reg), nil)
}

// Preferences fetches the user's notification preferences.
func (s *NotificationsService) Preferences(ctx context.Context) (*models.NotificationPreferences, error) {
	var prefs models.NotificationPreferences
	if err := s.client.Do(ctx, api.GetPreferences(), &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpdatePreferences replaces the user's notification preferences.
func (s *NotificationsService) UpdatePreferences(ctx context.Context, prefs models.NotificationPreferences) (*models.NotificationPreferences, error) {
	var updated models.NotificationPreferences
	if err := s.client.Do(ctx, api.UpdatePreferences(prefs), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
