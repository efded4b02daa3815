package cli

import (
	"fmt"
	"io"

	"github.com/runoshun/git-board/internal/app"
	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command. Without a subcommand it shows the configuration.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration and the files it was loaded from.

Configuration is merged in this order (later wins):
  1. Built-in defaults
  2. Global config ($XDG_CONFIG_HOME/git-board/config.toml)
  3. Repository config (.projectboard/config.toml)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			printConfigSource(w, "global", out.GlobalConfig)
			printConfigSource(w, "repo", out.RepoConfig)
			_, _ = fmt.Fprintln(w, "\n[Effective Config]")
			_, _ = fmt.Fprint(w, out.Rendered)
			printWarnings(cmd, out.Effective.Warnings)
			return nil
		},
	}

	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// printConfigSource prints one config file's path and whether it exists.
func printConfigSource(w io.Writer, label string, info domain.ConfigInfo) {
	state := "not found"
	if info.Exists {
		state = "loaded"
	}
	_, _ = fmt.Fprintf(w, "  %-6s %s (%s)\n", label, info.Path, state)
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		Long: `Write a commented config file with the default values.

By default the repository config (.projectboard/config.toml) is written.
Use --global to write the global config instead. Existing files are never
overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{Global: global})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Write the global config")

	return cmd
}
