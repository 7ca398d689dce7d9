package sitelib

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bep/clocks"
	"github.com/spf13/afero"
	"github.com/sunwei/blogsite/common/paths"
	"github.com/sunwei/blogsite/config"
	"github.com/sunwei/blogsite/log"
)

// DefaultEnvFile is read, if present, from the working dir when no env
// file is named.
const DefaultEnvFile = ".env"

// BuildCfg describes one build: where the project lives, which
// environment it sees and any command line overrides.
type BuildCfg struct {
	// The source file system. Defaults to the OS file system.
	Fs afero.Fs

	// The project's working dir.
	WorkingDir string

	// Config file to use, relative to WorkingDir. Empty means look for the
	// default names.
	ConfigFile string

	// A .env style file layered below the process environment.
	EnvFile string

	// The environment read by the injector. Defaults to the process
	// environment.
	Environ config.Environ

	// Values set after the config file is loaded, e.g. from flags.
	Overrides map[string]any

	Logger *log.Logger

	// The build clock. Defaults to the system clock.
	Clock clocks.Clock
}

func (c *BuildCfg) init() {
	if c.Fs == nil {
		c.Fs = afero.NewOsFs()
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	if c.Clock == nil {
		c.Clock = clocks.System()
	}
	if c.Environ == nil {
		c.Environ = config.OsEnviron{}
	}
}

// LoadConfig loads the configuration for c: the config file over the
// defaults, then the overrides, then the environment injection. The
// injection runs exactly once per loaded configuration.
func LoadConfig(c BuildCfg) (config.Provider, config.SiteConfig, error) {
	c.init()

	cfg, _, err := config.LoadConfig(config.ConfigSourceDescriptor{
		Fs:         c.Fs,
		Filename:   c.ConfigFile,
		WorkingDir: c.WorkingDir,
		Logger:     c.Logger,
	})
	if err != nil {
		return nil, config.SiteConfig{}, err
	}

	for k, v := range c.Overrides {
		cfg.Set(k, v)
	}

	env, err := c.environ()
	if err != nil {
		return nil, config.SiteConfig{}, err
	}

	c.Logger.Process("InjectEnv", "GA_TRACKING_CODE to ga_tracking_code")
	config.InjectEnv(cfg, env)

	sc, err := config.DecodeSiteConfig(cfg)
	if err != nil {
		return nil, sc, err
	}

	if fp, err := config.Fingerprint(sc); err == nil {
		c.Logger.Infof("config fingerprint %x", fp)
	}

	return cfg, sc, nil
}

// environ returns the process environment layered over the env file, if
// any. A named env file must exist.
func (c BuildCfg) environ() (config.Environ, error) {
	name := c.EnvFile
	optional := name == ""
	if optional {
		name = DefaultEnvFile
	}

	filename := paths.AbsPathify(c.WorkingDir, name)
	fileEnv, err := config.LoadEnvFile(c.Fs, filename)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return c.Environ, nil
		}
		return nil, fmt.Errorf("env file %q: %w", filepath.Base(filename), err)
	}

	c.Logger.Process("LoadEnvFile", "read "+filename)

	return config.LayeredEnviron{c.Environ, fileEnv}, nil
}
