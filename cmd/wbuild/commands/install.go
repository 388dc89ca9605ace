package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/wbuild/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the pinned external tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, _ := cmd.Flags().GetString("mode")
			statuses, err := c.app.Install(cmd.Context(), mode)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				c.out.Item(s.Tool.Tool.Name, s.Version+" "+s.Tool.Path)
			}
			return nil
		},
	}
}

func (c *CLI) newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a worker project from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, _ := cmd.Flags().GetString("template")
			mode, _ := cmd.Flags().GetString("mode")
			if err := c.app.NewProject(cmd.Context(), app.NewProjectOptions{
				Name:     args[0],
				Template: template,
				Mode:     mode,
			}); err != nil {
				return err
			}
			c.out.Success("created " + args[0])
			return nil
		},
	}
	cmd.Flags().String("template", "", "Template repository, overrides wbuild.yaml")
	return cmd
}
