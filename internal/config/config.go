// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/gatewaynode/flashbrain/internal/issue"
	"github.com/gatewaynode/flashbrain/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "flashbrain"
	// EnvPrefix prefixes environment overrides (FLASHBRAIN_CONTENT_ROOT, ...).
	EnvPrefix = "FLASHBRAIN"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the primary config file extension.
	ConfigFileExt = "cue"
	// ConfigFileExtTOML is the alternative config file extension.
	ConfigFileExtTOML = "toml"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the flashbrain configuration directory
// ($XDG_CONFIG_HOME/flashbrain on Linux, the platform equivalent elsewhere).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	if xdg.ConfigHome == "" {
		return "", fmt.Errorf("failed to determine config home directory")
	}
	return filepath.Join(xdg.ConfigHome, AppName), nil
}

// ConfigFilePath returns the path of the primary (CUE) config file.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading. Precedence, lowest
// first: defaults, config file, FLASHBRAIN_* environment variables. Flag
// overrides are applied by the CLI afterwards.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("content_root", string(defaults.ContentRoot))
	v.SetDefault("root_candidates", defaults.RootCandidates)
	v.SetDefault("precedence", string(defaults.Precedence))
	v.SetDefault("log_level", string(defaults.LogLevel))
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		// An explicit --config path must exist.
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'flashbrain config dump' to print a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadFileIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", configFileError(opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		// config.cue wins over config.toml; missing files mean defaults
		for _, ext := range []string{ConfigFileExt, ConfigFileExtTOML} {
			path := filepath.Join(cfgDir, ConfigFileName+"."+ext)
			if !fileExists(path) {
				continue
			}
			if err := loadFileIntoViper(v, path); err != nil {
				return nil, "", configFileError(path, err)
			}
			resolvedPath = path
			break
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check FLASHBRAIN_* environment variables for typos").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func configFileError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file syntax is valid").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'flashbrain config --help' for configuration options").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadFileIntoViper validates a CUE or TOML config file against #Config and
// merges it into Viper. Both formats go through the same schema: TOML is
// decoded and re-encoded as JSON first.
func loadFileIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var result *cueutil.ParseResult[map[string]any]
	if strings.EqualFold(filepath.Ext(path), "."+ConfigFileExtTOML) {
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		asJSON, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		result, err = cueutil.ParseJSON[map[string]any](configSchema, asJSON, "#Config",
			cueutil.WithFilename(path), cueutil.WithConcrete(false))
		if err != nil {
			return err
		}
	} else {
		result, err = cueutil.ParseCUE[map[string]any](configSchema, data, "#Config",
			cueutil.WithFilename(path), cueutil.WithConcrete(false))
		if err != nil {
			return err
		}
	}

	// Merge preserves defaults and leaves room for env overrides
	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GenerateCUE renders a configuration as a config.cue document.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// flashbrain configuration\n\n")
	if cfg.ContentRoot != "" {
		fmt.Fprintf(&sb, "content_root: %q\n", cfg.ContentRoot)
	} else {
		sb.WriteString("// content_root: \"/path/to/static/classes\"\n")
	}
	if len(cfg.RootCandidates) > 0 {
		sb.WriteString("root_candidates: [\n")
		for _, c := range cfg.RootCandidates {
			fmt.Fprintf(&sb, "\t%q,\n", c)
		}
		sb.WriteString("]\n")
	}
	fmt.Fprintf(&sb, "precedence: %q\n", cfg.Precedence)
	fmt.Fprintf(&sb, "log_level:  %q\n", cfg.LogLevel)
	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose:      %t\n", cfg.UI.Verbose)
	sb.WriteString("}\n")
	sb.WriteString("\nwatch: {\n")
	fmt.Fprintf(&sb, "\tdebounce: %q\n", cfg.Watch.Debounce.String())
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateTOML renders a configuration as a config.toml document.
func GenerateTOML(cfg *Config) (string, error) {
	doc := map[string]any{
		"precedence": string(cfg.Precedence),
		"log_level":  string(cfg.LogLevel),
		"ui": map[string]any{
			"color_scheme": string(cfg.UI.ColorScheme),
			"verbose":      cfg.UI.Verbose,
		},
		"watch": map[string]any{
			"debounce": cfg.Watch.Debounce.String(),
		},
	}
	if cfg.ContentRoot != "" {
		doc["content_root"] = string(cfg.ContentRoot)
	}
	if len(cfg.RootCandidates) > 0 {
		doc["root_candidates"] = cfg.RootCandidates
	}
	out, err := toml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return string(out), nil
}
