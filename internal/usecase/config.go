package usecase

import (
	"context"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/git-board/internal/domain"
)

// ShowConfigOutput contains the effective configuration and the files it came from.
type ShowConfigOutput struct {
	Effective    *domain.Config    // Merged repo + global + defaults
	Rendered     string            // Effective config encoded as TOML
	GlobalConfig domain.ConfigInfo // Global config file info
	RepoConfig   domain.ConfigInfo // Repository config file info
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configLoader  domain.ConfigLoader
	configManager domain.ConfigManager
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configLoader domain.ConfigLoader, configManager domain.ConfigManager) *ShowConfig {
	return &ShowConfig{
		configLoader:  configLoader,
		configManager: configManager,
	}
}

// Execute loads the effective configuration.
func (uc *ShowConfig) Execute(_ context.Context) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	rendered, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return &ShowConfigOutput{
		Effective:    cfg,
		Rendered:     string(rendered),
		GlobalConfig: uc.configManager.GlobalConfigInfo(),
		RepoConfig:   uc.configManager.RepoConfigInfo(),
	}, nil
}

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Global bool // If true, initialize global config; otherwise repository config
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig writes a configuration file template with the default values.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute creates a configuration file with the default template.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	var err error
	var path string

	if in.Global {
		path = uc.configManager.GlobalConfigInfo().Path
		err = uc.configManager.InitGlobalConfig(domain.NewDefaultConfig())
	} else {
		path = uc.configManager.RepoConfigInfo().Path
		err = uc.configManager.InitRepoConfig(domain.NewDefaultConfig())
	}
	if err != nil {
		return nil, err
	}

	return &InitConfigOutput{Path: path}, nil
}
