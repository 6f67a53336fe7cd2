package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

// SettingsUseCase reads and writes the key/value configuration store.
type SettingsUseCase struct {
	repo interfaces.SettingRepository
}

// NewSettingsUseCase creates a new SettingsUseCase
func NewSettingsUseCase(repo interfaces.SettingRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get returns the stored setting, or ErrSettingNotFound.
func (uc *SettingsUseCase) Get(ctx context.Context, key string) (*model.Setting, error) {
	s, err := uc.repo.Get(ctx, key)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get setting", goerr.V(SettingKeyKey, key))
	}
	if s == nil {
		return nil, goerr.Wrap(ErrSettingNotFound, "setting is not stored", goerr.V(SettingKeyKey, key))
	}
	return s, nil
}

// Set stores value under key. Generation keys must hold a value of the
// right numeric type.
func (uc *SettingsUseCase) Set(ctx context.Context, key, value string) (*model.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, goerr.Wrap(ErrInvalidSetting, "setting key is empty")
	}
	if err := validateSetting(key, value); err != nil {
		return nil, err
	}

	s := &model.Setting{Key: key, Value: value}
	if err := uc.repo.Put(ctx, s); err != nil {
		return nil, goerr.Wrap(err, "failed to put setting", goerr.V(SettingKeyKey, key))
	}
	return s, nil
}

// List returns all stored settings ordered by key.
func (uc *SettingsUseCase) List(ctx context.Context) ([]*model.Setting, error) {
	settings, err := uc.repo.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list settings")
	}
	return settings, nil
}

// Generation resolves the generation parameters. A store failure falls
// back to the defaults so that a case can still run.
func (uc *SettingsUseCase) Generation(ctx context.Context) model.GenerationSettings {
	settings, err := uc.repo.List(ctx)
	if err != nil {
		logging.From(ctx).Warn("failed to read settings, using defaults", "error", err.Error())
		return model.DefaultGenerationSettings()
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	return model.ParseGenerationSettings(values)
}

func validateSetting(key, value string) error {
	var err error
	switch key {
	case model.SettingTemperature, model.SettingRepeatPenalty:
		var v float64
		if v, err = strconv.ParseFloat(value, 64); err == nil && v < 0 {
			err = goerr.New("must not be negative")
		}
	case model.SettingMaxTokens, model.SettingGPULayers:
		var v int
		if v, err = strconv.Atoi(value); err == nil && v < 0 {
			err = goerr.New("must not be negative")
		}
	default:
		return nil
	}

	if err != nil {
		return goerr.Wrap(ErrInvalidSetting, "invalid value for "+key+": "+err.Error(),
			goerr.V(SettingKeyKey, key),
			goerr.V("value", value))
	}
	return nil
}
