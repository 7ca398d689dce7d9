package sitelib

import (
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sunwei/blogsite/helpers"
	"github.com/sunwei/blogsite/parser/pageparser"
	"github.com/sunwei/blogsite/resources/page"
	"github.com/sunwei/blogsite/resources/page/pagemeta"
	"github.com/sunwei/blogsite/source"
)

// collectPages reads every content file into the content map.
func (s *Site) collectPages() error {
	s.Log.Process("collectPages", "walk "+s.SiteConfig.ContentDir)

	files, err := s.SourceSpec.NewFilesystem().Files()
	if err != nil {
		return err
	}

	for _, f := range files {
		markup := s.ContentSpec.ResolveMarkup(f.Ext())
		if markup == "" {
			s.Log.Infof("skip %q: not a content file", f.Path())
			continue
		}

		p, err := s.newPageFromFile(f, markup)
		if err != nil {
			return err
		}
		if p == nil {
			s.stats.skipped.Inc()
			continue
		}

		if err := s.pageMap.AddPage(f.Path(), p); err != nil {
			return err
		}
	}

	return nil
}

// newPageFromFile parses, validates and converts one document. It returns
// nil for drafts and future posts that are not built.
func (s *Site) newPageFromFile(f source.File, markup string) (*page.Page, error) {
	fh, err := s.SourceSpec.SourceFs.Open(filepath.FromSlash(f.Path()))
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", f.Path(), err)
	}
	defer fh.Close()

	cf, err := pageparser.ParseFrontMatterAndContent(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Filename(), err)
	}

	fm, err := pagemeta.Decode(f.Filename(), cf.FrontMatter)
	if err != nil {
		return nil, err
	}

	if fm.Draft && !s.SiteConfig.BuildDrafts {
		s.Log.Infof("skip draft %q", f.Path())
		return nil, nil
	}

	if fm.Date.After(s.Clock.Now()) && !s.SiteConfig.BuildFuture {
		s.Log.Infof("skip future post %q dated %s", f.Path(), fm.Date.Format("2006-01-02"))
		return nil, nil
	}

	p := page.New(fm, f)
	p.Site = s.Info

	content, toc, err := s.ContentSpec.ConvertContent(markup, f.Filename(), cf.ContentWithoutDivider())
	if err != nil {
		return nil, fmt.Errorf("convert %q: %w", f.Filename(), err)
	}

	p.Content = helpers.BytesToHTML(content)
	p.TableOfContents = s.ContentSpec.TableOfContents(toc)
	p.Plain = helpers.StripHTML(string(content))
	p.WordCount = helpers.TotalWords(p.Plain)

	if err := s.setSummary(p, markup, cf); err != nil {
		return nil, fmt.Errorf("summary of %q: %w", f.Filename(), err)
	}

	return p, nil
}

// setSummary sets the summary from, in order: the summary front matter,
// the text before the summary divider, the first summaryLength words.
func (s *Site) setSummary(p *page.Page, markup string, cf pageparser.ContentFrontMatter) error {
	if p.FrontMatter.Summary != "" {
		b, err := s.ContentSpec.RenderMarkdown([]byte(p.FrontMatter.Summary))
		if err != nil {
			return err
		}
		p.Summary = helpers.BytesToHTML(s.ContentSpec.TrimShortHTML(b))
		p.Truncated = true
		return nil
	}

	if src, found := cf.Summary(); found {
		b, err := s.ContentSpec.Convert(markup, p.File.Filename(), src)
		if err != nil {
			return err
		}
		p.Summary = helpers.BytesToHTML(b)
		p.Truncated = true
		return nil
	}

	summary, truncated := s.ContentSpec.TruncateWordsToWholeSentence(p.Plain)
	p.Summary = template.HTML(template.HTMLEscapeString(summary))
	p.Truncated = truncated

	return nil
}
