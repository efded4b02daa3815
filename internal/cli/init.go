package cli

import (
	"fmt"
	"strings"

	"github.com/runoshun/git-board/internal/app"
	"github.com/runoshun/git-board/internal/usecase"
	"github.com/spf13/cobra"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a board for this repository",
		Long: `Initialize a board for this repository.

This command creates the .projectboard/ directory with:
- board.sqlite: the board database with the five default columns
- config.toml: commented default configuration

Preconditions:
- Current directory must be inside a git repository

Error conditions:
- Already initialized: "board already initialized in this repository"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitBoardUseCase().Execute(cmd.Context(), usecase.InitBoardInput{
				BoardDir: c.Config.BoardDir,
				RepoRoot: c.Config.RepoRoot,
			})
			if err != nil {
				return err
			}

			names := make([]string, 0, len(out.Columns))
			for _, col := range out.Columns {
				names = append(names, col.Name)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Initialized board %q in %s\n", out.Project.Name, out.BoardDir)
			_, _ = fmt.Fprintf(w, "Columns: %s\n", strings.Join(names, ", "))
			if out.GitignoreNeedsAdd {
				_, _ = fmt.Fprintln(w, "\nHint: add .projectboard/ to .gitignore to keep the board out of commits")
			}
			printWarnings(cmd, out.Warnings)
			return nil
		},
	}
}
