package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/models"
)

// GetSettings reads the settings document, filling in defaults for any key
// that has never been written.
func GetSettings(p Provider) (models.Settings, error) {
	merged := models.SettingsToMap(models.DefaultSettings())

	raw, ok, err := p.Get(constants.SettingsKey)
	if err != nil {
		return models.Settings{}, err
	}
	if ok {
		stored := map[string]string{}
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			return models.Settings{}, fmt.Errorf("parsing settings: %w", err)
		}
		for k, v := range stored {
			merged[k] = v
		}
	}

	settings, err := models.MapToSettings(merged)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func SaveSettings(p Provider, settings models.Settings) error {
	data, err := json.Marshal(models.SettingsToMap(settings))
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	return p.Set(constants.SettingsKey, string(data))
}

// EnsureDefaultSettings writes the default settings when none are stored yet.
func EnsureDefaultSettings(p Provider) error {
	if _, ok, err := p.Get(constants.SettingsKey); err != nil || ok {
		return err
	}
	return SaveSettings(p, models.DefaultSettings())
}
