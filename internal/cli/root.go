// Package cli provides the command-line interface for git-board.
package cli

import (
	"fmt"

	"github.com/runoshun/git-board/internal/app"
	"github.com/runoshun/git-board/internal/tui"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup    = "setup"
	groupTask     = "task"
	groupWorkflow = "workflow"
)

// launchBoardFunc is a function variable for launching the board TUI, allowing it to be mocked in tests.
var launchBoardFunc = launchBoard

// NewRootCommand creates the root command for git-board.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "pb",
		Short: "Git-aware project board",
		Long: `git-board is a local task board bound to a git working tree.

Tasks move through Backlog → Doing → Review → Done and each step performs
the matching git work: start creates and checks out a feature branch, done
commits staged changes and pushes, submit opens a pull request (or records a
compare link to open one by hand).

Run without arguments to open the interactive board.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if c == nil {
				return fmt.Errorf("board requires a git repository")
			}
			return launchBoardFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupWorkflow, Title: "Workflow:"},
	)

	grouped := func(group string, cmds ...*cobra.Command) []*cobra.Command {
		for _, cmd := range cmds {
			cmd.GroupID = group
		}
		return cmds
	}

	root.AddCommand(grouped(groupSetup,
		newInitCommand(c),
		newConfigCommand(c),
	)...)
	root.AddCommand(grouped(groupTask,
		newAddCommand(c),
		newListCommand(c),
		newShowCommand(c),
		newMoveCommand(c),
		newCommentCommand(c),
		newIdeaCommand(c),
		newIdeasCommand(c),
		newIdeaRmCommand(c),
		newPromoteCommand(c),
		newBoardCommand(c),
		newExportCommand(c),
		newLogCommand(c),
	)...)
	root.AddCommand(grouped(groupWorkflow,
		newStartCommand(c),
		newDoneCommand(c),
		newSubmitCommand(c),
		newReviewCommand(c),
	)...)

	return root
}

// newBoardCommand creates the board command.
func newBoardCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Long: `Open the interactive board.

The board shows a snapshot of all columns. It never changes tasks;
press r to reload after running commands in another terminal.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchBoardFunc(c)
		},
	}
}

// launchBoard runs the board TUI until the user quits.
func launchBoard(c *app.Container) error {
	return tui.Run(c.ListTasksUseCase())
}
