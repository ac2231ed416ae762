package cocoabridge

import (
	"github.com/wippyai/cocoa-bridge/alfred"
	"github.com/wippyai/cocoa-bridge/loader"
)

// Config is the bridge configuration. Field tags follow the config file
// keys.
type Config struct {
	Libraries LibrariesConfig `mapstructure:"libraries"`
	Log       LogConfig       `mapstructure:"log"`
	Render    RenderConfig    `mapstructure:"render"`
}

// LibrariesConfig controls where the runtime libraries are loaded from.
type LibrariesConfig struct {
	SearchPaths []string `mapstructure:"search_paths"`
	ObjC        string   `mapstructure:"objc"`
	Foundation  string   `mapstructure:"foundation"`
	AppKit      string   `mapstructure:"appkit"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type RenderConfig struct {
	Indent string `mapstructure:"indent"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Log:    LogConfig{Level: "warn"},
		Render: RenderConfig{Indent: alfred.DefaultIndent},
	}
}

// Loader converts the library settings for loader.Load.
func (c LibrariesConfig) Loader() loader.Config {
	cfg := loader.Config{SearchPaths: c.SearchPaths}
	for name, v := range map[string]string{
		loader.ObjC:       c.ObjC,
		loader.Foundation: c.Foundation,
		loader.AppKit:     c.AppKit,
	} {
		if v == "" {
			continue
		}
		if cfg.Overrides == nil {
			cfg.Overrides = make(map[string]string)
		}
		cfg.Overrides[name] = v
	}
	return cfg
}
