package domain

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Review   ReviewConfig `toml:"review"`
	Git      GitConfig    `toml:"git"`
	Log      LogConfig    `toml:"log"`
}

// ReviewConfig holds review system settings from [review] section.
type ReviewConfig struct {
	BaseBranch string `toml:"base_branch,omitempty"` // Branch review requests merge into
	TokenEnv   string `toml:"token_env,omitempty"`   // Environment variable holding the access token
	APIURL     string `toml:"api_url,omitempty"`     // Enterprise API base URL (empty = github.com)
	UploadURL  string `toml:"upload_url,omitempty"`  // Enterprise upload URL (defaults to APIURL)
}

// GitConfig holds version control settings from [git] section.
type GitConfig struct {
	Remote string `toml:"remote,omitempty"` // Remote used for pushes and review requests
	Push   string `toml:"push,omitempty"`   // Push mode: "simulate" or "git"
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Push modes.
const (
	PushSimulate = "simulate"
	PushGit      = "git"
)

// Default configuration values.
const (
	DefaultBaseBranch = "main"
	DefaultTokenEnv   = "GITHUB_TOKEN"
	DefaultRemote     = "origin"
	DefaultPushMode   = PushSimulate
	DefaultLogLevel   = "info"
)

// ConfigFileName is the config file name, both in the board directory and
// in the global config directory.
const ConfigFileName = "config.toml"

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Review: ReviewConfig{
			BaseBranch: DefaultBaseBranch,
			TokenEnv:   DefaultTokenEnv,
		},
		Git: GitConfig{
			Remote: DefaultRemote,
			Push:   DefaultPushMode,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// IsValidPushMode returns true if mode is a known push mode.
func IsValidPushMode(mode string) bool {
	return mode == PushSimulate || mode == PushGit
}

// RenderConfigTemplate renders the commented config file for cfg.
func RenderConfigTemplate(cfg *Config) string {
	tmpl := template.Must(template.New("config").Parse(configTemplateContent))
	var buf bytes.Buffer
	// Execution can only fail on a broken template, which Must already rejects.
	_ = tmpl.Execute(&buf, cfg)
	return strings.TrimLeft(buf.String(), "\n")
}
