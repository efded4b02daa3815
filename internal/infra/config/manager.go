package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/git-board/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	boardDir      string // Path to .projectboard directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/git-board)
}

// NewManager creates a new Manager.
func NewManager(boardDir string) *Manager {
	return &Manager{
		boardDir:      boardDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(boardDir, globalConfDir string) *Manager {
	return &Manager{
		boardDir:      boardDir,
		globalConfDir: globalConfDir,
	}
}

// RepoConfigInfo returns information about the repository config file.
func (m *Manager) RepoConfigInfo() domain.ConfigInfo {
	return readConfigInfo(domain.ConfigPath(m.boardDir))
}

// GlobalConfigInfo returns information about the global config file.
func (m *Manager) GlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return readConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

func readConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitRepoConfig creates the repository config file from the default template.
func (m *Manager) InitRepoConfig(cfg *domain.Config) error {
	if err := os.MkdirAll(m.boardDir, 0o750); err != nil {
		return err
	}
	return writeConfig(domain.ConfigPath(m.boardDir), cfg)
}

// InitGlobalConfig creates the global config file from the default template.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return err
	}
	return writeConfig(filepath.Join(m.globalConfDir, domain.ConfigFileName), cfg)
}

// writeConfig renders cfg into path unless the file already exists.
func writeConfig(path string, cfg *domain.Config) error {
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}
	return os.WriteFile(path, []byte(domain.RenderConfigTemplate(cfg)), 0o600)
}
