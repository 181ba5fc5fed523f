package models

// Settings holds the process-wide configuration mutable at runtime.
// AlertThresholdDays parameterizes expiry classification and takes effect on
// the next classification call; status is never cached.
type Settings struct {
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	SoundEnabled         bool   `json:"soundEnabled"`
	AlertThresholdDays   int    `json:"alertThresholdDays"`
	DefaultCategory      string `json:"defaultCategory"`
	Currency             string `json:"currency"`
	Language             string `json:"language"`
}

// DefaultSettings returns the settings applied at startup before any user or
// config-file override.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: true,
		SoundEnabled:         true,
		AlertThresholdDays:   3,
		DefaultCategory:      "Other",
		Currency:             "USD",
		Language:             "en",
	}
}
