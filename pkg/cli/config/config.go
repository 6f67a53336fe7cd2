package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

// SettingsFile is the TOML document applied to the settings store at startup.
//
//	[[setting]]
//	key = "model_temp"
//	value = "0.2"
type SettingsFile struct {
	Settings []SettingEntry `toml:"setting"`
}

// SettingEntry is one key/value pair of a settings file
type SettingEntry struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

// Validate checks if the SettingEntry is valid
func (e *SettingEntry) Validate() error {
	if strings.TrimSpace(e.Key) == "" {
		return goerr.Wrap(ErrInvalidConfig, "setting key is required")
	}

	switch e.Key {
	case model.SettingTemperature, model.SettingRepeatPenalty:
		v, err := strconv.ParseFloat(e.Value, 64)
		if err != nil || v < 0 {
			return goerr.Wrap(ErrInvalidConfig, "setting value must be a non-negative number",
				goerr.V("key", e.Key), goerr.V("value", e.Value))
		}
	case model.SettingMaxTokens, model.SettingGPULayers:
		v, err := strconv.Atoi(e.Value)
		if err != nil || v < 0 {
			return goerr.Wrap(ErrInvalidConfig, "setting value must be a non-negative integer",
				goerr.V("key", e.Key), goerr.V("value", e.Value))
		}
	}
	return nil
}

// Validate checks if the SettingsFile is valid
func (f *SettingsFile) Validate() error {
	keys := make(map[string]bool)
	for _, e := range f.Settings {
		if err := e.Validate(); err != nil {
			return goerr.Wrap(err, "invalid setting")
		}
		if keys[e.Key] {
			return goerr.Wrap(ErrInvalidConfig, "duplicate setting key", goerr.V("key", e.Key))
		}
		keys[e.Key] = true
	}
	return nil
}

// Apply writes every entry to repo. Existing values are overwritten.
func (f *SettingsFile) Apply(ctx context.Context, repo interfaces.SettingRepository) error {
	for _, e := range f.Settings {
		if err := repo.Put(ctx, &model.Setting{Key: e.Key, Value: e.Value}); err != nil {
			return goerr.Wrap(err, "failed to apply setting", goerr.V("key", e.Key))
		}
	}
	return nil
}

// LoadSettingsFile loads and validates a settings file
func LoadSettingsFile(path string) (*SettingsFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "settings file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read settings file", goerr.V(ConfigPathKey, path))
	}

	var file SettingsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML settings: "+err.Error(), goerr.V(ConfigPathKey, path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "settings validation failed", goerr.V(ConfigPathKey, path))
	}

	return &file, nil
}
