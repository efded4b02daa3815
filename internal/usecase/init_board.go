package usecase

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase/shared"
)

// InitBoardInput contains the input parameters for InitBoard.
type InitBoardInput struct {
	BoardDir string // Path to the .projectboard directory
	RepoRoot string // Working tree root; empty when not inside a git repository
}

// InitBoardOutput contains the output from InitBoard.
// Fields are ordered to minimize memory padding.
type InitBoardOutput struct {
	Project           *domain.Project
	BoardDir          string
	DatabasePath      string
	Columns           []domain.Column
	Warnings          []string
	GitignoreNeedsAdd bool // True if .projectboard/ is not in .gitignore
}

// InitBoard creates the board for a repository.
type InitBoard struct {
	store         domain.Store
	configManager domain.ConfigManager
	logger        domain.Logger
}

// NewInitBoard creates a new InitBoard use case.
func NewInitBoard(store domain.Store, configManager domain.ConfigManager, logger domain.Logger) *InitBoard {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &InitBoard{store: store, configManager: configManager, logger: logger}
}

// Execute creates the board directory, database, default columns, project
// row and default configuration.
func (uc *InitBoard) Execute(ctx context.Context, in InitBoardInput) (*InitBoardOutput, error) {
	if in.RepoRoot == "" {
		return nil, domain.ErrNotGitRepository
	}
	if _, err := os.Stat(in.BoardDir); err == nil {
		return nil, domain.ErrAlreadyInitialized
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("check board directory: %w", err)
	}

	if err := os.MkdirAll(in.BoardDir, 0o750); err != nil {
		return nil, fmt.Errorf("create board directory: %w", err)
	}
	project, cols, err := uc.populate(ctx, in.RepoRoot)
	if err != nil {
		// Leave no half-built board behind.
		if rmErr := os.RemoveAll(in.BoardDir); rmErr != nil {
			uc.logger.Error(0, "init", fmt.Sprintf("remove %s failed: %v", in.BoardDir, rmErr))
		}
		return nil, err
	}

	uc.logger.Info(0, "init", fmt.Sprintf("board created for %s", project.Name))
	warnings := shared.RecordActivity(ctx, uc.store, uc.logger, 0,
		domain.EventProjectInitialized, "Project: "+project.Name)

	return &InitBoardOutput{
		Project:           project,
		BoardDir:          in.BoardDir,
		DatabasePath:      domain.DatabasePath(in.BoardDir),
		Columns:           cols,
		Warnings:          warnings,
		GitignoreNeedsAdd: !isBoardInGitignore(in.RepoRoot),
	}, nil
}

// populate fills a freshly created board directory.
func (uc *InitBoard) populate(ctx context.Context, repoRoot string) (*domain.Project, []domain.Column, error) {
	if err := uc.store.Initialize(ctx); err != nil {
		return nil, nil, fmt.Errorf("initialize store: %w", err)
	}
	if err := uc.store.CreateDefaultColumns(ctx); err != nil {
		return nil, nil, fmt.Errorf("create columns: %w", err)
	}
	cols, err := uc.store.ListColumns(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list columns: %w", err)
	}
	project, err := uc.store.CreateProject(ctx, filepath.Base(repoRoot), repoRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("create project: %w", err)
	}
	if err := uc.configManager.InitRepoConfig(domain.NewDefaultConfig()); err != nil {
		return nil, nil, fmt.Errorf("write config: %w", err)
	}
	return project, cols, nil
}

// isBoardInGitignore checks if .projectboard/ is listed in the root .gitignore.
func isBoardInGitignore(repoRoot string) bool {
	f, err := os.Open(filepath.Join(repoRoot, ".gitignore"))
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSuffix(strings.TrimSpace(scanner.Text()), "/")
		if strings.TrimPrefix(line, "/") == domain.BoardDirName {
			return true
		}
	}
	return false
}
