// Package page holds the document model passed to templates.
package page

import (
	"html/template"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/sunwei/blogsite/common/maps"
	"github.com/sunwei/blogsite/related"
	"github.com/sunwei/blogsite/resources/page/pagemeta"
	"github.com/sunwei/blogsite/source"
)

// Page is a document or list page in the build. All values are set before
// rendering starts and not changed afterwards.
type Page struct {
	pagemeta.FrontMatter

	kind string

	// Rendered HTML of the body.
	Content template.HTML

	// Summary of the content, see Truncated.
	Summary template.HTML

	// Headings of Content as a nav element, empty if there are none.
	TableOfContents template.HTML

	// Truncated reports whether Summary is shorter than Content.
	Truncated bool

	// Plain is Content stripped of HTML markup.
	Plain string

	WordCount int

	// Path below the site root, e.g. /2020/01/02/hello/.
	RelPermalink string

	// Absolute URL.
	Permalink string

	// Pages listed on the page. Set for the home and topic pages.
	Pages Pages

	// Older posts on the same topic, best match first. Set for posts.
	Related Pages

	// Source file, nil for list pages.
	File source.File

	Site Site
}

// New creates a document page from decoded front matter.
func New(fm pagemeta.FrontMatter, file source.File) *Page {
	kind := KindPage
	if !fm.IsZero() {
		kind = KindPost
	}
	return &Page{
		FrontMatter: fm,
		kind:        kind,
		File:        file,
	}
}

// NewList creates a list page of the given kind.
func NewList(kind, title string, pages Pages) *Page {
	return &Page{
		FrontMatter: pagemeta.FrontMatter{
			Title:  title,
			Layout: kind,
			Params: maps.Params{},
		},
		kind:  kind,
		Pages: pages,
	}
}

// Kind returns one of post, page, home, topic, 404.
func (p *Page) Kind() string {
	return p.kind
}

// IsPost returns whether this is a dated document.
func (p *Page) IsPost() bool {
	return p.kind == KindPost
}

// IsPage returns whether this is an undated document.
func (p *Page) IsPage() bool {
	return p.kind == KindPage
}

// IsHome returns whether this is the home page.
func (p *Page) IsHome() bool {
	return p.kind == KindHome
}

// IsNode returns whether this is a list page.
func (p *Page) IsNode() bool {
	return p.kind == KindHome || p.kind == KindTopic
}

// Lastmod returns the publish date, or the source file's modification time
// for undated documents.
func (p *Page) Lastmod() time.Time {
	if !p.Date.IsZero() || p.File == nil {
		return p.Date
	}
	return p.File.ModTime()
}

// ReadingTime returns the reading time in minutes, at 213 words per minute.
func (p *Page) ReadingTime() int {
	return (p.WordCount + 212) / 213
}

// Param looks for a param in the page and then in the site params.
func (p *Page) Param(key any) (any, error) {
	keyStr, err := cast.ToStringE(key)
	if err != nil {
		return nil, err
	}
	keyStr = strings.ToLower(keyStr)

	candidates := []maps.Params{p.Params}
	if p.Site != nil {
		candidates = append(candidates, p.Site.Params())
	}

	return maps.GetNestedParam(keyStr, ".", candidates...)
}

// PublishDate returns the date used to order related posts.
func (p *Page) PublishDate() time.Time {
	return p.Date
}

// Name identifies the page in the related index.
func (p *Page) Name() string {
	if p.File != nil {
		return p.File.Path()
	}
	return p.Title
}

// RelatedKeywords returns the keywords of the page for the related index
// cfg: the topic, the publish date or a front matter param.
func (p *Page) RelatedKeywords(cfg related.IndexConfig) ([]related.Keyword, error) {
	var v any
	switch strings.ToLower(cfg.Name) {
	case "topic":
		if p.Topic != "" {
			v = p.Topic
		}
	case "date":
		v = p.Date
	default:
		v = p.Params[strings.ToLower(cfg.Name)]
		if vv, ok := v.([]any); ok {
			v = cast.ToStringSlice(vv)
		}
	}

	return cfg.ToKeywords(v)
}
