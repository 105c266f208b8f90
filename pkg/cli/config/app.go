package config

import (
	"os"
	"time"

	"github.com/kwikkconnect/kwikkconnect/pkg/service/chat"
	"github.com/kwikkconnect/kwikkconnect/pkg/service/notify"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the optional TOML tuning file for the collaboration core
type AppConfig struct {
	Summary SummaryConfig `toml:"summary"`
	Notify  NotifyConfig  `toml:"notify"`
}

// SummaryConfig tunes the summary trigger scheduler
type SummaryConfig struct {
	// Threshold is the count trigger: qualifying messages per summary
	Threshold int `toml:"threshold"`
	// IdleSeconds is the debounced time trigger window
	IdleSeconds int `toml:"idle_seconds"`
}

// NotifyConfig tunes the notification dispatcher
type NotifyConfig struct {
	// DismissSeconds is the auto-dismiss delay for non-critical alerts
	DismissSeconds int `toml:"dismiss_seconds"`
}

// DefaultAppConfig returns the built-in tuning values
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Summary: SummaryConfig{
			Threshold:   chat.DefaultSummaryThreshold,
			IdleSeconds: int(chat.DefaultIdleWindow / time.Second),
		},
		Notify: NotifyConfig{
			DismissSeconds: int(notify.DefaultDismissAfter / time.Second),
		},
	}
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if a.Summary.Threshold < 1 {
		return goerr.New("summary threshold must be positive", goerr.V("threshold", a.Summary.Threshold))
	}
	if a.Summary.IdleSeconds < 1 {
		return goerr.New("summary idle window must be positive", goerr.V("idle_seconds", a.Summary.IdleSeconds))
	}
	if a.Notify.DismissSeconds < 1 {
		return goerr.New("notification dismiss delay must be positive", goerr.V("dismiss_seconds", a.Notify.DismissSeconds))
	}
	return nil
}

// IdleWindow returns the time trigger window as a duration
func (a *AppConfig) IdleWindow() time.Duration {
	return time.Duration(a.Summary.IdleSeconds) * time.Second
}

// DismissAfter returns the auto-dismiss delay as a duration
func (a *AppConfig) DismissAfter() time.Duration {
	return time.Duration(a.Notify.DismissSeconds) * time.Second
}

// LoadAppConfiguration loads the tuning config from a TOML file.
// An empty path yields the defaults. Unset fields fall back to
// the defaults before validation.
func LoadAppConfiguration(path string) (*AppConfig, error) {
	config := DefaultAppConfig()
	if path == "" {
		return config, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return config, nil
}
