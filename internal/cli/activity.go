package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/runoshun/git-board/internal/app"
	"github.com/runoshun/git-board/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogCommand creates the log command for the activity log.
func newLogCommand(c *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent board activity",
		Long: `Show the activity log, most recent first.

Every lifecycle operation appends one entry. Use -n to change how many
entries are shown; a negative value shows everything.

Examples:
  pb log
  pb log -n 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowActivityUseCase().Execute(cmd.Context(), usecase.ShowActivityInput{Limit: limit})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Entries) == 0 {
				_, _ = fmt.Fprintln(w, "No activity.")
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for _, entry := range out.Entries {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Created.Format(timeLayout), entry.Event, entry.Metadata)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", usecase.DefaultActivityLimit, "Number of entries to show (negative = all)")

	return cmd
}
