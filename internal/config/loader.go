package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path over Default and returns the validated result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over Default and validates the result. Unknown keys are an error. An empty document yields Default.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values. It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.ListenAddr == "" {
		errs = append(errs, errors.New("server.listen_addr is required"))
	}
	if cfg.Server.ReadTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout %v must not be negative", cfg.Server.ReadTimeout))
	}
	if cfg.Server.WriteTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.write_timeout %v must not be negative", cfg.Server.WriteTimeout))
	}
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Limits.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("limits.max_tokens %d must not be negative", cfg.Limits.MaxTokens))
	}
	if cfg.Limits.MaxPatches < 0 {
		errs = append(errs, fmt.Errorf("limits.max_patches %d must not be negative", cfg.Limits.MaxPatches))
	}
	if cfg.Limits.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_body_bytes %d must be positive", cfg.Limits.MaxBodyBytes))
	}

	if cfg.Render.Color != "" && !cfg.Render.Color.IsValid() {
		errs = append(errs, fmt.Errorf("render.color %q is invalid; valid values: auto, always, never", cfg.Render.Color))
	}
	if cfg.Render.Width < 0 {
		errs = append(errs, fmt.Errorf("render.width %d must not be negative", cfg.Render.Width))
	}

	if cfg.Document.Workers < 1 {
		errs = append(errs, fmt.Errorf("document.workers %d must be at least 1", cfg.Document.Workers))
	}

	return errors.Join(errs...)
}
