package model

import (
	"strconv"
	"time"
)

// Setting keys read by the case pipeline
const (
	SettingTemperature   = "model_temp"
	SettingRepeatPenalty = "model_repeat"
	SettingMaxTokens     = "model_tokens"
	SettingGPULayers     = "gpu_layers"
)

// Setting is one persisted key/value preference.
type Setting struct {
	Key       string    `json:"key" toml:"key"`
	Value     string    `json:"value" toml:"value"`
	UpdatedAt time.Time `json:"updated_at" toml:"-"`
}

// GenerationSettings are the generation parameters resolved once per request.
type GenerationSettings struct {
	Temperature   float64 `json:"temperature"`
	RepeatPenalty float64 `json:"repeat_penalty"`
	MaxTokens     int     `json:"max_tokens"`
	GPULayers     int     `json:"gpu_layers"`
}

// DefaultGenerationSettings returns the values used when a key is unset.
func DefaultGenerationSettings() GenerationSettings {
	return GenerationSettings{
		Temperature:   0.1,
		RepeatPenalty: 1.3,
		MaxTokens:     1024,
		GPULayers:     10,
	}
}

// ParseGenerationSettings resolves settings from raw key/value pairs.
// Missing, unparsable and non-positive values fall back to the defaults.
func ParseGenerationSettings(values map[string]string) GenerationSettings {
	s := DefaultGenerationSettings()
	if v, err := strconv.ParseFloat(values[SettingTemperature], 64); err == nil && v >= 0 {
		s.Temperature = v
	}
	if v, err := strconv.ParseFloat(values[SettingRepeatPenalty], 64); err == nil && v > 0 {
		s.RepeatPenalty = v
	}
	if v, err := strconv.Atoi(values[SettingMaxTokens]); err == nil && v > 0 {
		s.MaxTokens = v
	}
	if v, err := strconv.Atoi(values[SettingGPULayers]); err == nil && v >= 0 {
		s.GPULayers = v
	}
	return s
}

// IsKnownSetting reports whether key is one of the generation setting keys.
func IsKnownSetting(key string) bool {
	switch key {
	case SettingTemperature, SettingRepeatPenalty, SettingMaxTokens, SettingGPULayers:
		return true
	default:
		return false
	}
}
