package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sunwei/blogsite/sitelib"
	"gopkg.in/yaml.v2"
)

func newConfigCmd(c *commandeer) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved site configuration",
		Long: `Print the site configuration as the templates see it: the config file
over the defaults, with the flags and the environment applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.buildCfg()
			if err != nil {
				return err
			}

			provider, _, err := sitelib.LoadConfig(cfg)
			if err != nil {
				return err
			}

			b, err := yaml.Marshal(provider.Get(""))
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}

			_, err = c.out.Write(b)
			return err
		},
	}
}
