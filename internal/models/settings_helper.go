package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/moodcal/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingReminderEnabled:
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", constants.SettingReminderEnabled, err)
			}
			settings.ReminderEnabled = enabled
		case constants.SettingReminderTime:
			settings.ReminderTime = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:        settings.Timezone,
		constants.SettingReminderEnabled: strconv.FormatBool(settings.ReminderEnabled),
		constants.SettingReminderTime:    settings.ReminderTime,
	}
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{
		Timezone:        constants.DefaultTimezone,
		ReminderEnabled: constants.DefaultReminderEnabled,
		ReminderTime:    constants.DefaultReminderTime,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.ReminderTime == "" {
		settings.ReminderTime = constants.DefaultReminderTime
	}
}
