// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for settleport.
type Config struct {
	DataDir  string `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`

	// DefaultState pre-selects the jurisdiction dropdown.
	DefaultState string `mapstructure:"default_state" yaml:"default_state"`

	// AllowPasteOnConfirm permits pasting into the payment confirmation
	// field. Off by default: the confirmation exists to catch typos, and a
	// pasted value confirms nothing.
	AllowPasteOnConfirm bool `mapstructure:"allow_paste_on_confirm" yaml:"allow_paste_on_confirm"`

	// RequireFullScrollRead requires the claimant to scroll the release
	// text to the bottom before signing is accepted.
	RequireFullScrollRead bool `mapstructure:"require_full_scroll_read" yaml:"require_full_scroll_read"`

	// Simulated collaborator latencies and the cap on how long the portal
	// waits for either collaborator before surfacing a retryable error.
	VerifyDelayMs   int `mapstructure:"verify_delay_ms" yaml:"verify_delay_ms"`
	SubmitDelayMs   int `mapstructure:"submit_delay_ms" yaml:"submit_delay_ms"`
	SubmitTimeoutMs int `mapstructure:"submit_timeout_ms" yaml:"submit_timeout_ms"`

	// ReceiptDir is where confirmation documents are written. Empty means
	// the current working directory.
	ReceiptDir string `mapstructure:"receipt_dir" yaml:"receipt_dir"`
}

// Defaults returns the built-in configuration values, before any config
// file or environment override.
func Defaults() Config {
	return Config{
		DataDir:         ".settleport",
		LogLevel:        "info",
		DefaultState:    "Florida",
		VerifyDelayMs:   800,
		SubmitDelayMs:   1500,
		SubmitTimeoutMs: 10000,
	}
}

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("settleport")

	v.SetDefault("data_dir", ".settleport")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("default_state", "Florida")
	v.SetDefault("allow_paste_on_confirm", false)
	v.SetDefault("require_full_scroll_read", false)
	v.SetDefault("verify_delay_ms", 800)
	v.SetDefault("submit_delay_ms", 1500)
	v.SetDefault("submit_timeout_ms", 10000)
	v.SetDefault("receipt_dir", "")

	// Setup ENV binding with SETTLEPORT_ prefix
	v.SetEnvPrefix("SETTLEPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better bool/int parsing
	bindings := map[string]string{
		"data_dir":                 "SETTLEPORT_DATA_DIR",
		"log_level":                "SETTLEPORT_LOG_LEVEL",
		"log_file":                 "SETTLEPORT_LOG_FILE",
		"default_state":            "SETTLEPORT_DEFAULT_STATE",
		"allow_paste_on_confirm":   "SETTLEPORT_ALLOW_PASTE_ON_CONFIRM",
		"require_full_scroll_read": "SETTLEPORT_REQUIRE_FULL_SCROLL_READ",
		"verify_delay_ms":          "SETTLEPORT_VERIFY_DELAY_MS",
		"submit_delay_ms":          "SETTLEPORT_SUBMIT_DELAY_MS",
		"submit_timeout_ms":        "SETTLEPORT_SUBMIT_TIMEOUT_MS",
		"receipt_dir":              "SETTLEPORT_RECEIPT_DIR",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/settleport/settleport.yml or $XDG_CONFIG_HOME/settleport/settleport.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "settleport", "settleport.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "settleport", "settleport.yml")
}

// ProjectPath returns the project-local config path.
// Returns ./settleport.yml in the current working directory.
func ProjectPath() string {
	return "settleport.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ProjectPath(), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
