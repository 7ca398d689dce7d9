package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/sunwei/blogsite/common/maps"
	"github.com/sunwei/blogsite/log"
	"github.com/sunwei/blogsite/parser/metadecoders"
)

// ConfigFilenames are looked for in the working dir, in order, when no
// config file is named explicitly.
var ConfigFilenames = []string{"config.toml", "config.yaml", "config.yml", "config.json", "_config.yml"}

// ConfigSourceDescriptor describes where to find the config.
type ConfigSourceDescriptor struct {
	Fs afero.Fs

	// Path to the config file to use, e.g. /my/project/config.toml.
	// Relative paths are resolved against WorkingDir.
	Filename string

	// The project's working dir.
	WorkingDir string

	Logger *log.Logger
}

// FromFileToMap returns the config values in filename as a simple map.
func FromFileToMap(fs afero.Fs, filename string) (map[string]any, error) {
	m, err := metadecoders.Default.UnmarshalFileToMap(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", filename, err)
	}
	return m, nil
}

// DefaultSettings are applied below any config file values.
func DefaultSettings() maps.Params {
	return maps.Params{
		"title":          "My Blog",
		"baseURL":        "/",
		"contentDir":     "content",
		"layoutDir":      "layouts",
		"staticDir":      "static",
		"dataDir":        "data",
		"publishDir":     "public",
		"summaryLength":  70,
		"titleCaseStyle": "AP",
		"buildDrafts":    false,
		"buildFuture":    false,
		"enableEmoji":    false,
		"canonifyURLs":   false,
		"disableKinds":   make([]string, 0),
		"ignoreFiles":    make([]string, 0),
		"permalinks": maps.Params{
			"posts": "/:year/:month/:day/:slug/",
			"pages": "/:slug/",
		},
		"minify": maps.Params{
			"minifyOutput": false,
		},
		"params": maps.Params{},
	}
}

// LoadConfig loads the site configuration and applies the defaults.
// It returns the config file used, empty if none was found.
func LoadConfig(d ConfigSourceDescriptor) (Provider, string, error) {
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}

	cfg := New()

	filename, err := d.findConfigFile()
	if err != nil {
		return nil, "", err
	}

	if filename != "" {
		logger.Process("LoadConfig", "read "+filename)
		m, err := FromFileToMap(d.Fs, filename)
		if err != nil {
			return nil, "", err
		}
		// Set overwrites keys of the same name, recursively.
		cfg.Set("", m)
	} else {
		logger.Warnf("no config file found in %q, using defaults", d.WorkingDir)
	}

	cfg.SetDefaults(DefaultSettings())
	cfg.Set("workingDir", d.WorkingDir)

	// A single value, e.g. disableKinds = "404", is a one element list.
	for _, key := range []string{"disableKinds", "ignoreFiles"} {
		cfg.Set(key, GetStringSlicePreserveString(cfg, key))
	}

	return cfg, filename, nil
}

func (d ConfigSourceDescriptor) findConfigFile() (string, error) {
	if d.Filename != "" {
		filename := d.Filename
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(d.WorkingDir, filename)
		}
		if _, err := d.Fs.Stat(filename); err != nil {
			return "", fmt.Errorf("config file %q: %w", d.Filename, err)
		}
		return filename, nil
	}

	for _, name := range ConfigFilenames {
		filename := filepath.Join(d.WorkingDir, name)
		_, err := d.Fs.Stat(filename)
		if err == nil {
			return filename, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	return "", nil
}
