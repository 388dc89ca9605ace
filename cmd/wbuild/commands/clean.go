package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/wbuild/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the build output and caches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tools, _ := cmd.Flags().GetBool("tools")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{}

			switch {
			case all:
				opts.Build = true
				opts.Tools = true
			case tools:
				opts.Tools = true
			default:
				// Default behavior: clean build artifacts
				opts.Build = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("tools", "t", false, "Clean the downloaded tool cache")
	cmd.Flags().BoolP("all", "a", false, "Clean build output, build records and tools")

	return cmd
}
