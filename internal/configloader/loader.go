// Package configloader resolves the gowsfmt configuration. It discovers
// config files in XDG-style locations, layers them with environment
// variables and command-line flags, and validates the result.
package configloader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yaklabco/gowsfmt/internal/logging"
	"github.com/yaklabco/gowsfmt/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is a config file path from --config. It is layered above
	// the discovered files.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded, lowest
	// precedence first.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOWSFMT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gowsfmt.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gowsfmt/config.yaml)
//  6. System config (/etc/gowsfmt/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	layers := []*config.Config{config.NewConfig()}

	files := []struct {
		layer  string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, f := range files {
		if f.ignore || f.path == "" {
			continue
		}

		cfg, err := loadConfigFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", f.layer, err)
		}

		logger.Debug("loaded config", "layer", f.layer, logging.FieldConfigFile, f.path)
		layers = append(layers, cfg)
		result.LoadedFrom = append(result.LoadedFrom, f.path)
	}

	if !opts.IgnoreEnv {
		getenv := opts.Getenv
		if getenv == nil {
			getenv = os.Getenv
		}

		envCfg := &config.Config{}
		if err := loadFromEnv(envCfg, getenv); err != nil {
			return nil, &ValidationError{Field: "environment", Message: err.Error(), Err: err}
		}
		layers = append(layers, envCfg)
	}

	layers = append(layers, opts.CLIConfig)
	cfg := MergeAll(layers...)

	validation := Validate(cfg)
	if err := validation.Err(); err != nil {
		return nil, err
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile reads a YAML or TOML config file. Unknown keys are errors
// in both formats.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: "cannot read file", Err: err}
	}

	if !IsTOMLConfig(path) {
		cfg, err := config.FromYAML(content)
		if err != nil {
			return nil, &ValidationError{FilePath: path, Message: err.Error(), Err: err}
		}
		return cfg, nil
	}

	cfg, unknown, err := config.FromTOML(content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error(), Err: err}
	}

	if len(unknown) > 0 {
		return nil, &ValidationError{
			FilePath: path,
			Value:    unknown,
			Message:  "unknown keys: " + strings.Join(unknown, ", "),
		}
	}

	return cfg, nil
}
