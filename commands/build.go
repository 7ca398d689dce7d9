package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sunwei/blogsite/sitelib"
)

func newBuildCmd(c *commandeer) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the site into the publish dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.build(cmd)
		},
	}
}

func (c *commandeer) build(cmd *cobra.Command) error {
	cfg, err := c.buildCfg()
	if err != nil {
		return err
	}

	s, err := sitelib.Build(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	stats := s.Stats()
	fmt.Fprintf(c.out, "Built %d pages, copied %d static files to %s\n", stats.Pages, stats.StaticFiles, s.PublishDir())

	if n := c.logger.Warnings(); n > 0 {
		fmt.Fprintf(c.out, "%d warnings\n", n)
	}

	return nil
}
