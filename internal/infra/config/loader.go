// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/git-board/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	boardDir      string // Path to .projectboard directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/git-board)
}

// NewLoader creates a new Loader.
func NewLoader(boardDir string) *Loader {
	return &Loader{
		boardDir:      boardDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(boardDir, globalConfDir string) *Loader {
	return &Loader{
		boardDir:      boardDir,
		globalConfDir: globalConfDir,
	}
}

// DefaultGlobalConfigDir returns the global config directory under
// $XDG_CONFIG_HOME, or ~/.config when it is unset.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Precedence: repository config, then global config, then defaults.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.loadGlobalFile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	repo, err := l.loadFile(domain.ConfigPath(l.boardDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if repo != nil {
		base = mergeConfigs(base, repo)
	}
	return base, nil
}

// LoadGlobal returns the global configuration merged over defaults.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	global, err := l.loadGlobalFile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	return base, nil
}

func (l *Loader) loadGlobalFile() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "review":
			for k, v := range m {
				s, _ := v.(string)
				switch k {
				case "base_branch":
					res.Review.BaseBranch = s
				case "token_env":
					res.Review.TokenEnv = s
				case "api_url":
					res.Review.APIURL = s
				case "upload_url":
					res.Review.UploadURL = s
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [review]: %s", k))
				}
			}
		case "git":
			for k, v := range m {
				s, _ := v.(string)
				switch k {
				case "remote":
					res.Git.Remote = s
				case "push":
					if domain.IsValidPushMode(s) {
						res.Git.Push = s
					} else {
						warnings = append(warnings, fmt.Sprintf("invalid value for [git] push: %q (want %q or %q)", s, domain.PushSimulate, domain.PushGit))
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [git]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Review: base.Review,
		Git:    base.Git,
		Log:    base.Log,
	}
	result.Warnings = append(result.Warnings, base.Warnings...)
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Review.BaseBranch != "" {
		result.Review.BaseBranch = override.Review.BaseBranch
	}
	if override.Review.TokenEnv != "" {
		result.Review.TokenEnv = override.Review.TokenEnv
	}
	if override.Review.APIURL != "" {
		result.Review.APIURL = override.Review.APIURL
	}
	if override.Review.UploadURL != "" {
		result.Review.UploadURL = override.Review.UploadURL
	}
	if override.Git.Remote != "" {
		result.Git.Remote = override.Git.Remote
	}
	if override.Git.Push != "" {
		result.Git.Push = override.Git.Push
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}
