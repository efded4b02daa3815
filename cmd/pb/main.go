// Package main is the entry point for the pb CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/runoshun/git-board/internal/app"
	"github.com/runoshun/git-board/internal/cli"
	"github.com/runoshun/git-board/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	container, err := app.New(cwd, app.Options{Getenv: os.Getenv})
	if err != nil {
		// help and version still work outside a repository
		if errors.Is(err, domain.ErrNotGitRepository) {
			return runWithoutContainer(err)
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	return cli.NewRootCommand(container, version).Execute()
}

// runWithoutContainer executes commands that need no repository and
// reports gitErr for everything else.
func runWithoutContainer(gitErr error) error {
	if canRunWithoutGit(os.Args[1:]) {
		return cli.NewRootCommand(nil, version).Execute()
	}
	return gitErr
}

func canRunWithoutGit(args []string) bool {
	if len(args) == 0 {
		return false
	}
	if args[0] == "help" || args[0] == "completion" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
