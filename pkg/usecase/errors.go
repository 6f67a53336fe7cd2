package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Request errors
	ErrEmptyRequest = errors.New("request has no ECG or report")

	// Setting errors
	ErrSettingNotFound = errors.New("setting not found")
	ErrInvalidSetting  = errors.New("invalid setting")
)

// Context keys for error values
const (
	SettingKeyKey = "setting_key"
)
