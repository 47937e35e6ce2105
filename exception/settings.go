package exception

import (
	"sync/atomic"

	"github.com/thanhminhmr/go-exception/configuration"
	"github.com/thanhminhmr/go-exception/internal"
)

// Settings tunes chain walking and stack capture for the whole process.
type Settings struct {
	// MaxChainDepth bounds every walk over a cause chain. Longer chains are rendered up
	// to the bound and then marked as truncated.
	MaxChainDepth int `env:"MAX_CHAIN_DEPTH" validate:"min=1,max=100000"`

	// StackDepth bounds the number of frames captured at construction. Zero disables
	// stack capture.
	StackDepth int `env:"STACK_DEPTH" validate:"min=0,max=256"`
}

// DefaultSettings are in effect until ApplySettings is called.
var DefaultSettings = Settings{
	MaxChainDepth: 1000,
	StackDepth:    32,
}

const settingsPrefix = "EXCEPTION"

func init() {
	configuration.SetDefault("EXCEPTION_MAX_CHAIN_DEPTH", "1000")
	configuration.SetDefault("EXCEPTION_STACK_DEPTH", "32")
}

// LoadSettings reads the settings from the EXCEPTION_* environment without applying them.
func LoadSettings() (Settings, error) {
	var loaded Settings
	if err := configuration.Load(&loaded, settingsPrefix); err != nil {
		return DefaultSettings, New("invalid exception settings", err)
	}
	return loaded, nil
}

// ApplySettings validates settings and makes them the settings of the process. Invalid
// settings are rejected and the current ones stay in effect.
//
//	settings, err := exception.LoadSettings()
//	if err == nil {
//		err = exception.ApplySettings(settings)
//	}
func ApplySettings(settings Settings) error {
	if err := internal.Validator.Struct(settings); err != nil {
		return New("invalid exception settings", err)
	}
	currentSettings.Store(&settings)
	return nil
}

var currentSettings atomic.Pointer[Settings]

func settings() Settings {
	if current := currentSettings.Load(); current != nil {
		return *current
	}
	return DefaultSettings
}
