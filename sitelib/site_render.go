package sitelib

import (
	"context"
	"fmt"
	"strings"

	"github.com/sunwei/blogsite/bufferpool"
	"github.com/sunwei/blogsite/output"
	"github.com/sunwei/blogsite/publisher"
	"github.com/sunwei/blogsite/resources/page"
	"github.com/sunwei/blogsite/tpl"
)

const defaultLayout = "default"

// renderPages renders the documents one by one, posts first.
func (s *Site) renderPages(ctx context.Context) error {
	for _, pages := range []page.Pages{s.posts, s.pages} {
		for _, p := range pages {
			if err := ctx.Err(); err != nil {
				return err
			}

			templ, err := s.resolveTemplate(p)
			if err != nil {
				return err
			}

			if err := s.renderAndWritePage(ctx, "page "+p.File.Path(), s.targetPaths[p], p, templ); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveTemplate finds the layout named in the front matter of p, falling
// back to the default layout with a warning.
func (s *Site) resolveTemplate(p *page.Page) (tpl.Template, error) {
	if templ, found := s.Tmpl().LookupLayout(p.Layout); found {
		return templ, nil
	}

	templ, found := s.Tmpl().LookupLayout(defaultLayout)
	if !found {
		return nil, fmt.Errorf("%s: layout %q not found and no %s layout", p.File.Filename(), p.Layout, defaultLayout)
	}

	s.Log.Warnf("%s: layout %q not found, using %q", p.File.Path(), p.Layout, defaultLayout)

	return templ, nil
}

// renderHome renders the list of posts to index.html.
func (s *Site) renderHome(ctx context.Context) error {
	templ, found := s.lookupListLayout(page.KindHome)
	if !found {
		return nil
	}

	p := page.NewList(page.KindHome, s.Info.Title(), s.posts)
	s.setLinks(p, "/")

	return s.renderAndWritePage(ctx, "home page", "index.html", p, templ)
}

// renderTopics renders one list page per topic to /topics/<topic>/.
func (s *Site) renderTopics(ctx context.Context) error {
	templ, found := s.lookupListLayout(page.KindTopic)
	if !found {
		return nil
	}

	for _, g := range s.topics {
		p := page.NewList(page.KindTopic, g.Key, g.Pages)
		p.Topic = g.Key
		link := topicLink(s.PathSpec.URLize(g.Key))
		s.setLinks(p, link)

		if err := s.renderAndWritePage(ctx, "topic "+g.Key, targetPath(link), p, templ); err != nil {
			return err
		}
	}

	return nil
}

func (s *Site) render404(ctx context.Context) error {
	templ, found := s.lookupListLayout(page.Kind404)
	if !found {
		return nil
	}

	p := page.NewList(page.Kind404, "Page Not Found", nil)
	s.setLinks(p, "/404.html")

	return s.renderAndWritePage(ctx, "404 page", "404.html", p, templ)
}

// lookupListLayout returns the layout named after kind. Disabled kinds and
// missing layouts skip the output.
func (s *Site) lookupListLayout(kind string) (tpl.Template, bool) {
	if !s.isEnabled(kind) {
		s.Log.Infof("skip %s output: disabled", kind)
		return nil, false
	}

	templ, found := s.Tmpl().LookupLayout(kind)
	if !found {
		s.Log.Infof("skip %s output: no %s layout", kind, kind)
	}
	return templ, found
}

// hasListOutput reports whether a list page of kind is rendered.
func (s *Site) hasListOutput(kind string) bool {
	if !s.isEnabled(kind) {
		return false
	}
	_, found := s.Tmpl().LookupLayout(kind)
	return found
}

func (s *Site) renderAndWritePage(ctx context.Context, name, targetPath string, p *page.Page, templ tpl.Template) error {
	if p.Site == nil {
		p.Site = s.Info
	}

	renderBuffer := bufferpool.GetBuffer()
	defer bufferpool.PutBuffer(renderBuffer)

	if err := s.Tmpl().ExecuteWithContext(ctx, templ, renderBuffer, p); err != nil {
		return fmt.Errorf("render of %q failed: %w", name, err)
	}

	if renderBuffer.Len() == 0 {
		return nil
	}

	// A page published to e.g. /feed.xml is minified as XML.
	format, found := output.DefaultFormats.FromFilename(targetPath)
	if !found {
		format = output.HTMLFormat
	}

	pd := publisher.Descriptor{
		Src:          renderBuffer,
		TargetPath:   targetPath,
		OutputFormat: format,
		Minify:       s.Publisher.Minifier().MinifyOutput,
	}

	if s.SiteConfig.CanonifyURLs {
		pd.AbsURLPath = s.canonicalRoot()
	}

	if err := s.Publisher.Publish(pd); err != nil {
		return fmt.Errorf("publish %q: %w", name, err)
	}

	s.stats.pages.Inc()

	return nil
}

// canonicalRoot is the base URL without its path, since root relative
// URLs already carry the base path.
func (s *Site) canonicalRoot() string {
	return strings.TrimSuffix(s.PathSpec.BaseURL, strings.TrimPrefix(s.PathSpec.BasePath, "/")+"/")
}
