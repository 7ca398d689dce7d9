// Package sitelib builds a blog site: it collects the documents, renders
// them with the layouts and publishes the result.
package sitelib

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/sunwei/blogsite/common/maps"
	"github.com/sunwei/blogsite/deps"
	"github.com/sunwei/blogsite/resources/page"
	"github.com/sunwei/blogsite/tpl/tplimpl"
	"go.uber.org/atomic"
)

// Site is one build of a blog. The flow of information is as follows:
//
// 1. The content files are parsed and converted into Pages.
//
// 2. Posts (dated) and pages (undated) get their permalinks from the
// permalinks patterns.
//
// 3. Posts are grouped by topic.
//
// 4. Every Page is passed through the template named by its layout, and
// the list pages through the home, topic and 404 layouts.
//
// 5. The rendered output and the static files are written to the publish
// dir.
type Site struct {
	*deps.Deps

	Info *SiteInfo

	pageMap *contentMap

	posts  page.Pages
	pages  page.Pages
	topics page.PagesGroup

	// As loaded from the /data dirs
	data map[string]any

	permalinks page.PermalinkExpander

	// Publish dir relative file of each document.
	targetPaths map[*page.Page]string

	disabledKinds map[string]bool

	buildDate time.Time

	stats *buildStats
}

type buildStats struct {
	pages       atomic.Uint64
	skipped     atomic.Uint64
	staticFiles atomic.Uint64
}

// BuildStats summarizes a finished build.
type BuildStats struct {
	// Documents and list pages rendered.
	Pages uint64

	// Drafts and future documents left out.
	Skipped uint64

	// Files copied from the static dir.
	StaticFiles uint64

	// All files written to the publish dir.
	FilesWritten uint64
}

// NewSite creates a new Site with the given configuration.
func NewSite(cfg deps.DepsCfg) (*Site, error) {
	if cfg.TemplateProvider == nil {
		cfg.TemplateProvider = tplimpl.DefaultTemplateProvider
	}

	d, err := deps.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create deps: %w", err)
	}

	sc := d.SiteConfig

	permalinks, err := page.NewPermalinkExpander(d.PathSpec.URLize, map[string]string{
		permalinksPosts: sc.Permalinks.Posts,
		permalinksPages: sc.Permalinks.Pages,
	})
	if err != nil {
		return nil, fmt.Errorf("permalinks: %w", err)
	}

	disabled := make(map[string]bool)
	for _, k := range sc.DisableKinds {
		kind := page.GetKind(k)
		if kind == "" || kind == page.KindPost || kind == page.KindPage {
			return nil, fmt.Errorf("disableKinds: unsupported kind %q", k)
		}
		disabled[kind] = true
	}

	s := &Site{
		Deps:          d,
		pageMap:       newContentMap(),
		permalinks:    permalinks,
		disabledKinds: disabled,
		buildDate:     d.Clock.Now(),
		stats:         &buildStats{},
	}

	s.Info = &SiteInfo{
		s:              s,
		title:          sc.Title,
		baseURL:        d.PathSpec.BaseURL,
		params:         sc.Params,
		gaTrackingCode: sc.GATrackingCode,
	}

	return s, nil
}

const (
	permalinksPosts = "posts"
	permalinksPages = "pages"
)

// PublishDir returns the absolute path of the publish dir.
func (s *Site) PublishDir() string {
	return s.Fs.AbsPath(s.SiteConfig.PublishDir)
}

// Stats returns the counters of the last build.
func (s *Site) Stats() BuildStats {
	return BuildStats{
		Pages:        s.stats.pages.Load(),
		Skipped:      s.stats.skipped.Load(),
		StaticFiles:  s.stats.staticFiles.Load(),
		FilesWritten: s.Publisher.FilesWritten(),
	}
}

func (s *Site) isEnabled(kind string) bool {
	return !s.disabledKinds[kind]
}

// SiteInfo is the site as seen from templates, see page.Site.
type SiteInfo struct {
	s *Site

	title          string
	baseURL        string
	params         maps.Params
	gaTrackingCode string
}

var _ page.Site = (*SiteInfo)(nil)

func (s *SiteInfo) Title() string {
	return s.title
}

func (s *SiteInfo) BaseURL() string {
	return s.baseURL
}

func (s *SiteInfo) Params() maps.Params {
	return s.params
}

// Param is a convenience method to do lookups in SiteInfo's Params map.
//
// This method is also implemented on Page.
func (s *SiteInfo) Param(key any) (any, error) {
	keyStr, err := cast.ToStringE(key)
	if err != nil {
		return nil, err
	}
	return maps.GetNestedParam(keyStr, ".", s.params)
}

// Config returns a copy of the resolved configuration mapping.
func (s *SiteInfo) Config() maps.Params {
	root, _ := s.s.Cfg.Get("").(maps.Params)
	return root.Clone()
}

// GATrackingCode returns the injected Google Analytics tracking code.
func (s *SiteInfo) GATrackingCode() string {
	return s.gaTrackingCode
}

func (s *SiteInfo) Posts() page.Pages {
	return s.s.posts
}

func (s *SiteInfo) Pages() page.Pages {
	return s.s.pages
}

func (s *SiteInfo) Topics() page.PagesGroup {
	return s.s.topics
}

func (s *SiteInfo) Data() map[string]any {
	return s.s.data
}

func (s *SiteInfo) BuildDate() time.Time {
	return s.s.buildDate
}
