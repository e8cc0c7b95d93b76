// Package config provides the configuration of po-compiler and its loading.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// RepoConfigFile is the name of the configuration file in the
	// repository root.
	RepoConfigFile = "po-compiler.yaml"
	// UserConfigFile is the name of the configuration file in the home
	// directory.
	UserConfigFile = ".po-compiler.yaml"
	// DefaultLanguagesDir holds the plugin's translation files.
	DefaultLanguagesDir = "languages"
)

// Config holds the settings of the compile command.
type Config struct {
	LanguagesDir    string `yaml:"languages_dir"`
	IncludeHeader   *bool  `yaml:"include_header,omitempty"`
	Verify          *bool  `yaml:"verify,omitempty"`
	FallbackCharset string `yaml:"fallback_charset,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LanguagesDir: DefaultLanguagesDir,
	}
}

// IncludeHeaderEnabled reports whether the header entry goes into MO files.
func (c *Config) IncludeHeaderEnabled() bool {
	return c.IncludeHeader != nil && *c.IncludeHeader
}

// VerifyEnabled reports whether written MO files are read back.
func (c *Config) VerifyEnabled() bool {
	return c.Verify != nil && *c.Verify
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.LanguagesDir == "" {
		return errors.New("languages_dir is required")
	}
	return nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("fail to parse %s: %w", path, err)
	}
	return cfg, nil
}

// mergeConfigs returns base with the fields set in override replaced.
func mergeConfigs(base, override *Config) *Config {
	merged := *base
	if override == nil {
		return &merged
	}
	if override.LanguagesDir != "" {
		merged.LanguagesDir = override.LanguagesDir
	}
	if override.IncludeHeader != nil {
		merged.IncludeHeader = override.IncludeHeader
	}
	if override.Verify != nil {
		merged.Verify = override.Verify
	}
	if override.FallbackCharset != "" {
		merged.FallbackCharset = override.FallbackCharset
	}
	return &merged
}

// LoadConfig loads the configuration. If file is given, only that file is
// read and it must exist. Otherwise ~/.po-compiler.yaml and
// <repoRoot>/po-compiler.yaml are merged over the defaults, the latter
// taking precedence. Missing files are skipped.
func LoadConfig(file, repoRoot string) (*Config, error) {
	cfg := Default()

	if file != "" {
		log.Debugf("loading configuration from %s", file)
		fileCfg, err := loadConfigFromFile(file)
		if err != nil {
			return nil, err
		}
		return validated(mergeConfigs(cfg, fileCfg))
	}

	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, UserConfigFile))
	}
	if repoRoot != "" {
		paths = append(paths, filepath.Join(repoRoot, RepoConfigFile))
	}
	for _, path := range paths {
		fileCfg, err := loadConfigFromFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		log.Debugf("loaded configuration from %s", path)
		cfg = mergeConfigs(cfg, fileCfg)
	}
	return validated(cfg)
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
