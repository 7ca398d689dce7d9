// Package commands implements the blogsite command line.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sunwei/blogsite/log"
	"github.com/sunwei/blogsite/sitelib"
)

// EnvPrefix is the prefix of the environment variables that set flags,
// e.g. BLOGSITE_SOURCE.
const EnvPrefix = "BLOGSITE"

// Execute runs the command line with args and returns the exit code.
func Execute(args []string) int {
	root := newRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

type commandeer struct {
	v *viper.Viper

	out    io.Writer
	logger *log.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &commandeer{v: viper.New(), out: out}

	root := &cobra.Command{
		Use:   "blogsite",
		Short: "blogsite builds a static blog",
		Long: `blogsite renders the Markdown posts below content/ with the layouts
below layouts/ into a static site in public/.

GA_TRACKING_CODE, from the environment or a .env file, is injected into
the ga_tracking_code config key before rendering.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd, errOut)
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringP("source", "s", "", "filesystem path to read files relative from")
	pf.String("config", "", "config file (default is config.toml|yaml|yml|json or _config.yml)")
	pf.String("env-file", "", "env file layered below the process environment (default is .env if present)")
	pf.StringP("destination", "d", "", "filesystem path to write files to")
	pf.StringP("baseURL", "b", "", "hostname (and path) to the root, e.g. https://example.org/")
	pf.BoolP("buildDrafts", "D", false, "include content marked as draft")
	pf.BoolP("buildFuture", "F", false, "include content with publishdate in the future")
	pf.Bool("minify", false, "minify any supported output format")
	pf.BoolP("verbose", "v", false, "verbose output")

	root.AddCommand(
		newBuildCmd(c),
		newConfigCmd(c),
		newServeCmd(c),
	)

	// build is the default command.
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return c.build(cmd)
	}

	return root
}

func (c *commandeer) init(cmd *cobra.Command, errOut io.Writer) error {
	v := c.v
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	c.logger = log.New(errOut, v.GetBool("verbose"))
	log.SetDefault(c.logger)

	return nil
}

// buildCfg creates the build configuration from the flags and the
// BLOGSITE_ environment.
func (c *commandeer) buildCfg() (sitelib.BuildCfg, error) {
	v := c.v

	source := v.GetString("source")
	if source == "" {
		source = "."
	}
	workingDir, err := filepath.Abs(source)
	if err != nil {
		return sitelib.BuildCfg{}, err
	}

	overrides := make(map[string]any)
	if v.IsSet("destination") && v.GetString("destination") != "" {
		overrides["publishDir"] = v.GetString("destination")
	}
	if v.IsSet("baseURL") && v.GetString("baseURL") != "" {
		overrides["baseURL"] = v.GetString("baseURL")
	}
	for _, key := range []string{"buildDrafts", "buildFuture"} {
		if v.IsSet(key) {
			overrides[key] = v.GetBool(key)
		}
	}
	if v.IsSet("minify") {
		overrides["minify.minifyOutput"] = v.GetBool("minify")
	}

	return sitelib.BuildCfg{
		WorkingDir: workingDir,
		ConfigFile: v.GetString("config"),
		EnvFile:    v.GetString("env-file"),
		Overrides:  overrides,
		Logger:     c.logger,
	}, nil
}
