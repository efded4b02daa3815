package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/runoshun/git-board/internal/app"
	"github.com/runoshun/git-board/internal/usecase"
	"github.com/spf13/cobra"
)

// newIdeaCommand creates the idea command for capturing ideas.
func newIdeaCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "idea <content>",
		Short: "Capture an idea",
		Long: `Capture an idea that is not a task yet.

Ideas stay off the board until promoted with 'pb promote <id>'.

Examples:
  pb idea "Cache the remote URL lookup"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.NewIdeaUseCase().Execute(cmd.Context(), usecase.NewIdeaInput{
				Content: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Captured idea #%d: %s\n", out.Idea.ID, out.Idea.Content)
			printWarnings(cmd, out.Warnings)
			return nil
		},
	}
}

// newIdeasCommand creates the ideas command.
func newIdeasCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "ideas",
		Short: "List ideas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListIdeasUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Ideas) == 0 {
				_, _ = fmt.Fprintln(w, "No ideas.")
				return nil
			}

			now := c.Clock.Now()
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for _, idea := range out.Ideas {
				_, _ = fmt.Fprintf(tw, "#%d\t%s\t%s\n",
					idea.ID, idea.Content, humanize.RelTime(idea.Created, now, "ago", "from now"))
			}
			return tw.Flush()
		},
	}
}

// newIdeaRmCommand creates the idea-rm command.
func newIdeaRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "idea-rm <id>",
		Short: "Delete an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ideaID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid idea ID: %w", err)
			}

			out, err := c.DeleteIdeaUseCase().Execute(cmd.Context(), usecase.DeleteIdeaInput{IdeaID: ideaID})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted idea #%d\n", out.Idea.ID)
			printWarnings(cmd, out.Warnings)
			return nil
		},
	}
}

// newPromoteCommand creates the promote command.
func newPromoteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "promote <id>",
		Short: "Turn an idea into a Backlog task",
		Long: `Turn an idea into a task in the Backlog column.

The idea's content becomes the task title and the idea is removed.

Examples:
  pb promote 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ideaID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid idea ID: %w", err)
			}

			out, err := c.PromoteIdeaUseCase().Execute(cmd.Context(), usecase.PromoteIdeaInput{IdeaID: ideaID})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Promoted idea #%d to task #%d: %s\n", out.Idea.ID, out.Task.ID, out.Task.Title)
			printWarnings(cmd, out.Warnings)
			return nil
		},
	}
}
