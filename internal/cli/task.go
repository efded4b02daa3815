package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/runoshun/git-board/internal/app"
	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase"
	"github.com/spf13/cobra"
)

// timeLayout is used wherever absolute timestamps are printed.
const timeLayout = "2006-01-02 15:04:05"

// newAddCommand creates the add command for creating tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Description string
		Assignee    string
	}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new task",
		Long: `Create a new task in the Backlog column.

The branch is not created until the task is started with 'pb start <id>'.

Examples:
  # Create a task
  pb add "Add login page"

  # Create a task with a description
  pb add "Fix crash on empty config" -d "Happens when config.toml is empty"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.NewTaskUseCase().Execute(cmd.Context(), usecase.NewTaskInput{
				Title:       strings.Join(args, " "),
				Description: opts.Description,
				Assignee:    opts.Assignee,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s\n", out.Task.ID, out.Task.Title)
			printWarnings(cmd, out.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&opts.Assignee, "assignee", "a", "", "Task assignee")

	return cmd
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list [column]",
		Short: "List tasks by column",
		Long: `List tasks grouped by column, in board order.

Within a column the most recently created task comes first.
Column names are matched case-insensitively.

Examples:
  # List the whole board
  pb list

  # List one column
  pb list doing
  pb list "to do"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.ListTasksInput{}
			if len(args) > 0 {
				input.Column = args[0]
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			printTaskList(cmd.OutOrStdout(), out, c.Clock.Now())
			return nil
		},
	}
}

// printTaskList prints tasks grouped by column.
func printTaskList(w io.Writer, out *usecase.ListTasksOutput, now time.Time) {
	if out.Total() == 0 {
		_, _ = fmt.Fprintln(w, "No tasks.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	for i, col := range out.Columns {
		if i > 0 {
			_, _ = fmt.Fprintln(tw)
		}
		_, _ = fmt.Fprintf(tw, "%s (%d)\n", col.Column.Name, len(col.Tasks))
		if len(col.Tasks) == 0 {
			_, _ = fmt.Fprintln(tw, "  -")
			continue
		}
		for _, task := range col.Tasks {
			branch := "-"
			if task.HasBranch() {
				branch = task.BranchName
			}
			_, _ = fmt.Fprintf(tw, "  #%d\t%s\t%s\t%s\n",
				task.ID,
				task.Title,
				branch,
				humanize.RelTime(task.Updated, now, "ago", "from now"),
			)
		}
	}
}

// newShowCommand creates the show command for displaying task details.
func newShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display task details",
		Long: `Display detailed information about a task.

Output includes the column, branch, review link and comments.

Examples:
  pb show 12
  pb show "#12"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			printTaskDetails(cmd.OutOrStdout(), out, c.Clock.Now())
			return nil
		},
	}
}

// newMoveCommand creates the move command.
func newMoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <column>",
		Short: "Move a task to another column",
		Long: `Move a task to another column.

This only changes the column. No branch is created, nothing is committed
or pushed; use start, done and submit for that.

Examples:
  pb move 12 review
  pb move 12 "To Do"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			out, err := c.MoveTaskUseCase().Execute(cmd.Context(), usecase.MoveTaskInput{
				TaskID: taskID,
				Column: strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved task #%d: %s → %s\n", out.Task.ID, out.From, out.To)
			printWarnings(cmd, out.Warnings)
			return nil
		},
	}
}

// newCommentCommand creates the comment command.
func newCommentCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <id> <text>",
		Short: "Add a comment to a task",
		Long: `Add a comment to a task.

The author is taken from git's user.name.

Examples:
  pb comment 12 "Waiting on API review"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			out, err := c.AddCommentUseCase().Execute(cmd.Context(), usecase.AddCommentInput{
				TaskID:  taskID,
				Message: strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added comment to task #%d (by %s)\n", taskID, out.Comment.Author)
			printWarnings(cmd, out.Warnings)
			return nil
		},
	}
}

// printTaskDetails prints task details in a formatted output.
func printTaskDetails(w io.Writer, out *usecase.ShowTaskOutput, now time.Time) {
	task := out.Task

	_, _ = fmt.Fprintf(w, "# Task %d: %s\n\n", task.ID, task.Title)

	if task.Description != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", task.Description)
	}

	_, _ = fmt.Fprintf(w, "Column: %s\n", out.Column)

	if task.HasBranch() {
		_, _ = fmt.Fprintf(w, "Branch: %s\n", task.BranchName)
	} else {
		_, _ = fmt.Fprintln(w, "Branch: none")
	}

	switch {
	case !task.HasReviewRequest():
		_, _ = fmt.Fprintln(w, "PR: none")
	case task.PRFallback:
		_, _ = fmt.Fprintf(w, "PR: %s (manual follow-up required)\n", task.PRURL)
	default:
		_, _ = fmt.Fprintf(w, "PR: %s\n", task.PRURL)
	}

	if task.Assignee != "" {
		_, _ = fmt.Fprintf(w, "Assignee: %s\n", task.Assignee)
	}

	_, _ = fmt.Fprintf(w, "Created: %s (%s)\n", task.Created.Format(timeLayout), humanize.RelTime(task.Created, now, "ago", "from now"))
	_, _ = fmt.Fprintf(w, "Updated: %s (%s)\n", task.Updated.Format(timeLayout), humanize.RelTime(task.Updated, now, "ago", "from now"))

	if len(out.Comments) > 0 {
		_, _ = fmt.Fprintln(w, "\nComments:")
		separator := "  ─────────────────"
		for _, comment := range out.Comments {
			_, _ = fmt.Fprintln(w, separator)
			_, _ = fmt.Fprintf(w, "  [%s] %s\n", comment.Created.Format(timeLayout), comment.Author)
			for _, line := range strings.Split(comment.Text, "\n") {
				_, _ = fmt.Fprintf(w, "  %s\n", line)
			}
		}
	}
}

// resolveTaskID resolves the task ID from arguments or the current feature branch.
func resolveTaskID(args []string, git domain.Git) (int64, error) {
	if len(args) > 0 {
		id, err := parseTaskID(args[0])
		if err != nil {
			return 0, fmt.Errorf("invalid task ID: %w", err)
		}
		return id, nil
	}

	if git == nil {
		return 0, fmt.Errorf("task ID is required (not on a feature branch)")
	}

	branch, err := git.CurrentBranch()
	if err != nil {
		return 0, fmt.Errorf("failed to detect current branch: %w", err)
	}

	id, ok := domain.ParseBranchTaskID(branch)
	if !ok {
		return 0, fmt.Errorf("task ID is required (current branch '%s' is not a feature branch)", branch)
	}

	return id, nil
}

// parseTaskID parses a task ID, accepting a leading '#'.
func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("task ID must be positive")
	}
	return id, nil
}

// printWarnings reports non-fatal problems on stderr.
func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
}
