package cli

import (
	"fmt"
	"os"

	"github.com/runoshun/git-board/internal/app"
	"github.com/runoshun/git-board/internal/usecase"
	"github.com/spf13/cobra"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		Output string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks",
		Long: `Export all tasks in board order.

Formats:
  csv       ID,Title,Description,Column,Created,Updated,Branch,PR
  markdown  one section per column (alias: md)
  json      list of task records
  yaml      list of task records (alias: yml)

Examples:
  pb export
  pb export -f markdown -o board.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := usecase.ParseExportFormat(opts.Format)
			if err != nil {
				return err
			}

			out, err := c.ExportTasksUseCase().Execute(cmd.Context(), usecase.ExportTasksInput{Format: format})
			if err != nil {
				return err
			}

			if opts.Output == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
				return nil
			}
			if err := os.WriteFile(opts.Output, []byte(out.Content), 0o644); err != nil { //nolint:gosec // Export is meant to be shared
				return fmt.Errorf("write export: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", out.Count, opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", string(usecase.ExportCSV), "Output format: csv, markdown, json, yaml")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
