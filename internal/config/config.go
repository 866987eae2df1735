// Package config holds redline's configuration: the HTTP server, input limits, and rendering defaults.
//
// Configuration is read from a YAML file (see Load). Every field has a default, so an empty file is valid. Command-line flags override file values.
package config

import "time"

// LogLevel controls log verbosity.
type LogLevel string

// Log levels.
const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a known level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// ColorMode selects when terminal output is colorized.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto" // color when stdout is a terminal
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether m is a known mode.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// Config is the top-level configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Limits   LimitsConfig   `yaml:"limits"`
	Render   RenderConfig   `yaml:"render"`
	Document DocumentConfig `yaml:"document"`
}

// ServerConfig configures `redline serve`.
type ServerConfig struct {
	ListenAddr   string        `yaml:"listen_addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	LogLevel     LogLevel      `yaml:"log_level"`
}

// LimitsConfig bounds the input accepted from callers. Diffing costs O((N+M)·D) time.
type LimitsConfig struct {
	// MaxTokens is the largest number of tokens accepted per text. 0 disables the limit.
	MaxTokens int `yaml:"max_tokens"`

	// MaxPatches is the largest number of patches accepted per request. 0 disables the limit.
	MaxPatches int `yaml:"max_patches"`

	// MaxBodyBytes is the largest HTTP request body accepted.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// RenderConfig holds terminal rendering defaults.
type RenderConfig struct {
	Color     ColorMode `yaml:"color"`
	CharLevel bool      `yaml:"char_level"`
	Width     int       `yaml:"width"` // 0 detects the terminal width
}

// DocumentConfig configures JSON document diffs.
type DocumentConfig struct {
	Workers int `yaml:"workers"` // fields diffed concurrently
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:   ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			LogLevel:     LogInfo,
		},
		Limits: LimitsConfig{
			MaxTokens:    50000,
			MaxPatches:   1000,
			MaxBodyBytes: 8 << 20,
		},
		Render: RenderConfig{
			Color: ColorAuto,
		},
		Document: DocumentConfig{
			Workers: 4,
		},
	}
}
