package models

// DevicePlatform identifies the push platform of a registered device.
type DevicePlatform string

const (
	PlatformIOS     DevicePlatform = "ios"
	PlatformAndroid DevicePlatform = "android"
)

// DeviceRegistration is the body of device register/unregister requests.
type DeviceRegistration struct {
	DeviceToken string         `json:"device_token"`
	Platform    DevicePlatform `json:"platform"`
}

// NotificationPreferences is the user's notification opt-in record.
type NotificationPreferences struct {
	DeadlineReminders  bool `json:"deadline_reminders"`
	ApplicationUpdates bool `json:"application_updates"`
	NewGrantAlerts     bool `json:"new_grant_alerts"`
}
