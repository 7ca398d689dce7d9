package sitelib

import (
	"context"
	"fmt"
	"time"

	"github.com/BurntSushi/locker"
	"github.com/sunwei/blogsite/deps"
	"github.com/sunwei/blogsite/sitefs"
)

// Builds of the same working dir run one at a time.
var buildLocker = locker.NewLocker()

// Build loads the configuration described by c, runs the environment
// injection once and builds the site.
func Build(ctx context.Context, c BuildCfg) (*Site, error) {
	c.init()

	buildLocker.Lock(c.WorkingDir)
	defer buildLocker.Unlock(c.WorkingDir)

	start := time.Now()

	cfg, sc, err := LoadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	fs, err := sitefs.NewFrom(c.Fs, cfg)
	if err != nil {
		return nil, err
	}

	s, err := NewSite(deps.DepsCfg{
		Fs:         fs,
		Cfg:        cfg,
		SiteConfig: sc,
		Logger:     c.Logger,
		Clock:      c.Clock,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Build(ctx); err != nil {
		return s, err
	}

	stats := s.Stats()
	c.Logger.Infof("built %d pages, skipped %d, copied %d static files in %s",
		stats.Pages, stats.Skipped, stats.StaticFiles, time.Since(start).Round(time.Millisecond))

	return s, nil
}

// Build builds the site: process the sources, assemble the pages, then
// render and publish.
func (s *Site) Build(ctx context.Context) error {
	s.Log.Process("Site Build", "start")

	if err := s.process(); err != nil {
		return err
	}

	if err := s.assemblePages(); err != nil {
		return err
	}

	if err := s.render(ctx); err != nil {
		return err
	}

	s.Log.Process("Site Build", "done")
	return nil
}

// process loads the layouts, the data files and the documents.
func (s *Site) process() error {
	if err := s.LoadResources(); err != nil {
		return err
	}

	if err := s.loadData(); err != nil {
		return err
	}

	return s.collectPages()
}

func (s *Site) render(ctx context.Context) error {
	if err := s.renderPages(ctx); err != nil {
		return fmt.Errorf("failed to render pages: %w", err)
	}

	if err := s.renderHome(ctx); err != nil {
		return err
	}

	if err := s.renderTopics(ctx); err != nil {
		return err
	}

	if err := s.render404(ctx); err != nil {
		return err
	}

	return s.copyStatic()
}
