package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/wbuild/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Compile the crate and bundle it into a worker script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := buildOptions(cmd, args)
			opts.NoOpt, _ = cmd.Flags().GetBool("no-opt")
			opts.SkipCompile, _ = cmd.Flags().GetBool("skip-compile")
			opts.Typescript, _ = cmd.Flags().GetBool("typescript")

			res, err := c.app.Build(cmd.Context(), opts)
			if err != nil {
				return err
			}

			c.out.Success(fmt.Sprintf("built %s", res.Crate), fmt.Sprintf("(%s) %s", res.Profile, res.BundlePath))
			for _, m := range res.Modules {
				c.out.Item(m.Path, fmt.Sprintf("%d bytes, %d exports, %d imports", m.Size, m.Exports, m.Imports))
			}
			if !res.Changed {
				c.out.Notice("bundle unchanged since the last build")
			}
			return nil
		},
	}
	cmd.Flags().StringP("profile", "p", "release", "Build profile: dev, release, profiling or a custom cargo profile")
	cmd.Flags().Bool("no-opt", false, "Skip wasm-opt")
	cmd.Flags().Bool("skip-compile", false, "Reuse the existing compiler output")
	cmd.Flags().Bool("typescript", false, "Emit TypeScript declarations")
	return cmd
}

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Verify the locked dependency versions without building",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Check(cmd.Context(), buildOptions(cmd, args)); err != nil {
				return err
			}
			c.out.Success("dependencies are compatible")
			return nil
		},
	}
	cmd.Flags().StringP("profile", "p", "release", "Build profile: dev, release, profiling or a custom cargo profile")
	return cmd
}

func buildOptions(cmd *cobra.Command, args []string) app.BuildOptions {
	var opts app.BuildOptions
	if len(args) > 0 {
		opts.Dir = args[0]
	}
	opts.Profile, _ = cmd.Flags().GetString("profile")
	opts.Mode, _ = cmd.Flags().GetString("mode")
	return opts
}
