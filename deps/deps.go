// Package deps holds the dependencies shared by one site build.
package deps

import (
	"fmt"

	"github.com/bep/clocks"
	"github.com/sunwei/blogsite/config"
	"github.com/sunwei/blogsite/helpers"
	"github.com/sunwei/blogsite/log"
	"github.com/sunwei/blogsite/minifiers"
	"github.com/sunwei/blogsite/output"
	"github.com/sunwei/blogsite/publisher"
	"github.com/sunwei/blogsite/sitefs"
	"github.com/sunwei/blogsite/source"
	"github.com/sunwei/blogsite/tpl"
)

// Deps holds dependencies used by many.
// There will be normally only one instance of deps in play
// at a given time, i.e. one per Site built.
type Deps struct {
	// The logger to use.
	Log *log.Logger

	// The PathSpec to use
	*helpers.PathSpec

	// The templates to use.
	tmpl tpl.TemplateHandler

	// The SourceSpec to use
	SourceSpec *source.SourceSpec

	// The ContentSpec to use
	*helpers.ContentSpec

	// The file systems to use.
	Fs *sitefs.Fs

	// The project directories, each rooted at its dir.
	SourceFs sitefs.SourceFilesystems

	// Publishes rendered output below publishDir.
	Publisher *publisher.DestinationPublisher

	templateProvider ResourceProvider

	// The configuration to use. Read only once the build has started.
	Cfg config.Provider

	// The typed site configuration decoded from Cfg.
	SiteConfig config.SiteConfig

	// The build clock, used to decide what is in the future.
	Clock clocks.Clock
}

// DepsCfg contains configuration options that can be used to configure
// a build on a global level, i.e. logging etc.
// Nil values will be given default values.
type DepsCfg struct {
	// The logger to use.
	Logger *log.Logger

	// The file systems to use
	Fs *sitefs.Fs

	// The configuration to use.
	Cfg config.Provider

	// The typed site configuration.
	SiteConfig config.SiteConfig

	// The clock to use, defaults to the system clock.
	Clock clocks.Clock

	// Template handling.
	TemplateProvider ResourceProvider
}

// ResourceProvider is used to create and refresh resources needed.
type ResourceProvider interface {
	Update(deps *Deps) error
}

func (d *Deps) Tmpl() tpl.TemplateHandler {
	return d.tmpl
}

func (d *Deps) SetTmpl(tmpl tpl.TemplateHandler) {
	d.tmpl = tmpl
}

// New initializes a Dep struct.
// Defaults are set for nil values,
// but TemplateProvider and Fs are always required.
func New(cfg DepsCfg) (*Deps, error) {
	var (
		logger = cfg.Logger
		fs     = cfg.Fs
		clock  = cfg.Clock
	)

	if cfg.TemplateProvider == nil {
		panic("Must have a TemplateProvider")
	}

	if fs == nil {
		panic("Must get fs ready: deps.New")
	}

	if logger == nil {
		logger = log.Default()
	}

	if clock == nil {
		clock = clocks.System()
	}

	logger.Process("New PathSpec", "baseURL "+cfg.SiteConfig.BaseURL)
	ps, err := helpers.NewPathSpec(cfg.Cfg)
	if err != nil {
		return nil, fmt.Errorf("create PathSpec: %w", err)
	}

	logger.Process("New content Spec", "content converter provider inside")
	contentSpec, err := helpers.NewContentSpec(cfg.Cfg)
	if err != nil {
		return nil, err
	}

	sourceFs := fs.NewSourceFilesystems(cfg.SiteConfig)

	logger.Process("New source Spec", "with content filesystem and ignoreFiles")
	sp, err := source.NewSourceSpec(sourceFs.Content, fs.AbsPath(cfg.SiteConfig.ContentDir), cfg.SiteConfig.IgnoreFiles)
	if err != nil {
		return nil, err
	}

	min, err := minifiers.New(output.DefaultFormats, cfg.Cfg)
	if err != nil {
		return nil, err
	}

	d := &Deps{
		Log:              logger,
		Fs:               fs,
		SourceFs:         sourceFs,
		templateProvider: cfg.TemplateProvider,
		PathSpec:         ps,
		ContentSpec:      contentSpec,
		SourceSpec:       sp,
		Publisher:        publisher.NewDestinationPublisher(fs.PublishDir, min),
		Cfg:              cfg.Cfg,
		SiteConfig:       cfg.SiteConfig,
		Clock:            clock,
	}

	return d, nil
}

// LoadResources loads the templates.
func (d *Deps) LoadResources() error {
	if err := d.templateProvider.Update(d); err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	return nil
}
