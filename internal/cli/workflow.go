package cli

import (
	"fmt"

	"github.com/runoshun/git-board/internal/app"
	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase"
	"github.com/spf13/cobra"
)

// newStartCommand creates the start command.
func newStartCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start work on a task",
		Long: `Start work on a task.

This command will:
1. Create the branch feature/<id>-<slug> from HEAD (or reuse the task's branch)
2. Check the branch out, keeping uncommitted changes
3. Move the task to Doing

If creating or checking out the branch fails, the task is left unchanged.

Examples:
  pb start 12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			out, err := c.StartTaskUseCase().Execute(cmd.Context(), usecase.StartTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.BranchCreated {
				_, _ = fmt.Fprintf(w, "Created branch %s\n", out.Branch)
			} else {
				_, _ = fmt.Fprintf(w, "Checked out branch %s\n", out.Branch)
			}
			_, _ = fmt.Fprintf(w, "Task #%d moved to %s\n", out.Task.ID, domain.ColumnDoing)
			printWarnings(cmd, out.Warnings)
			return nil
		},
	}
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Message string
	}

	cmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Complete a task",
		Long: `Complete a task.

This command will:
1. Commit staged changes, if any (default message "Closes #<id>: <title>")
2. Push the task's branch, if it has one
3. Move the task to Done

If no ID is given, the task is detected from the current feature branch.

Examples:
  pb done 12
  pb done -m "Add login page"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := resolveTaskID(args, c.Git)
			if err != nil {
				return err
			}

			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{
				TaskID:  taskID,
				Message: opts.Message,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.CommitHash != "" {
				_, _ = fmt.Fprintf(w, "Committed %s: %s\n", domain.ShortHash(out.CommitHash), out.CommitMessage)
			}
			if out.PushedBranch != "" {
				_, _ = fmt.Fprintf(w, "Pushed %s\n", out.PushedBranch)
			}
			_, _ = fmt.Fprintf(w, "Task #%d moved to %s\n", out.Task.ID, domain.ColumnDone)
			printWarnings(cmd, out.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "Commit message for staged changes")

	return cmd
}

// newSubmitCommand creates the submit command.
func newSubmitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "submit [id]",
		Short: "Push a task's branch and request review",
		Long: `Push a task's branch, open a pull request and move the task to Review.

When no pull request can be opened (no access token, unsupported host,
network failure) a compare link is recorded instead and the task still
moves to Review. The link is marked as needing a manual follow-up.

If no ID is given, the task is detected from the current feature branch.

Examples:
  pb submit 12
  pb submit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := resolveTaskID(args, c.Git)
			if err != nil {
				return err
			}

			out, err := c.SubmitTaskUseCase().Execute(cmd.Context(), usecase.SubmitTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Pushed %s\n", out.Task.BranchName)
			if out.Link.Fallback {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", out.ReviewErr)
				_, _ = fmt.Fprintf(w, "Manual follow-up required: %s\n", out.Link.URL)
			} else {
				_, _ = fmt.Fprintf(w, "Opened pull request: %s\n", out.Link.URL)
			}
			_, _ = fmt.Fprintf(w, "Task #%d moved to %s\n", out.Task.ID, domain.ColumnReview)
			printWarnings(cmd, out.Warnings)
			return nil
		},
	}
}

// newReviewCommand creates the review command.
func newReviewCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "review [id]",
		Short: "Show the review status of a task",
		Long: `Show the review status of a submitted task.

A recorded compare link means no pull request exists yet and one must be
opened by hand. For opened pull requests the current state is queried when
an access token is configured; a merged pull request moves the task to Done.

If no ID is given, the task is detected from the current feature branch.

Examples:
  pb review 12`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := resolveTaskID(args, c.Git)
			if err != nil {
				return err
			}

			out, err := c.ReviewTaskUseCase().Execute(cmd.Context(), usecase.ReviewTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case out.Fallback:
				_, _ = fmt.Fprintf(w, "Task #%d: manual follow-up required\n  %s\n", out.Task.ID, out.Task.PRURL)
			case out.State == "":
				_, _ = fmt.Fprintf(w, "Task #%d: pull request %s (state unknown)\n", out.Task.ID, out.Task.PRURL)
			default:
				_, _ = fmt.Fprintf(w, "Task #%d: pull request %s is %s\n", out.Task.ID, out.Task.PRURL, out.State)
			}
			if out.MovedToDone {
				_, _ = fmt.Fprintf(w, "Task #%d moved to %s\n", out.Task.ID, domain.ColumnDone)
			}
			printWarnings(cmd, out.Warnings)
			return nil
		},
	}
}
