package markup_config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/sunwei/blogsite/config"
	"github.com/sunwei/blogsite/markup/goldmark/goldmark_config"
	"github.com/sunwei/blogsite/markup/highlight"
	"github.com/sunwei/blogsite/markup/tableofcontents"
)

type Config struct {
	// Default markdown handler for md/markdown extensions.
	// Default is "goldmark".
	DefaultMarkdownHandler string

	Highlight highlight.Config

	TableOfContents tableofcontents.Config

	// Content renderers
	Goldmark goldmark_config.Config
}

// Decode decodes the "markup" section of cfg on top of the defaults.
func Decode(cfg config.Provider) (conf Config, err error) {
	conf = Default

	m := cfg.GetParams("markup")
	if m == nil {
		return
	}

	if err = mapstructure.WeakDecode(m, &conf); err != nil {
		return conf, fmt.Errorf("failed to decode markup config: %w", err)
	}

	return
}

var Default = Config{
	DefaultMarkdownHandler: "goldmark",

	Highlight:       highlight.DefaultConfig,
	TableOfContents: tableofcontents.DefaultConfig,
	Goldmark:        goldmark_config.Default,
}
