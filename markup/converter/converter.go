// Package converter defines the content converters, e.g. Markdown to HTML.
package converter

import (
	"github.com/sunwei/blogsite/config"
	"github.com/sunwei/blogsite/markup/highlight"
	"github.com/sunwei/blogsite/markup/markup_config"
	"github.com/sunwei/blogsite/markup/tableofcontents"
)

// Converter converts one document.
type Converter interface {
	Convert(ctx RenderContext) (Result, error)
}

// RenderContext holds the content to render.
type RenderContext struct {
	Src []byte
}

// Result is the rendered document.
type Result interface {
	Bytes() []byte
}

// TableOfContentsProvider is implemented by results of converters that
// know the headings of the document.
type TableOfContentsProvider interface {
	TableOfContents() tableofcontents.Headings
}

// Bytes is a Result without headings.
type Bytes []byte

func (b Bytes) Bytes() []byte {
	return b
}

// Provider creates a converter per document.
type Provider interface {
	New(ctx DocumentContext) (Converter, error)
	Name() string
}

// DocumentContext identifies the document to convert.
type DocumentContext struct {
	// Used in errors.
	Filename string
}

// ProviderConfig configures a new Provider.
type ProviderConfig struct {
	MarkupConfig markup_config.Config

	Cfg config.Provider
	highlight.Highlighter
}

// ProviderProvider creates a Provider from the site's markup config.
type ProviderProvider interface {
	New(cfg ProviderConfig) (Provider, error)
}

// NewProvider creates a Provider named name that creates converters with
// create.
func NewProvider(name string, create func(ctx DocumentContext) (Converter, error)) Provider {
	return provider{
		name:   name,
		create: create,
	}
}

type provider struct {
	name   string
	create func(ctx DocumentContext) (Converter, error)
}

func (p provider) New(ctx DocumentContext) (Converter, error) {
	return p.create(ctx)
}

func (p provider) Name() string {
	return p.name
}

// NopConverter passes the source through. Used for HTML content.
var NopConverter Converter = nopConverter{}

type nopConverter struct{}

func (nopConverter) Convert(ctx RenderContext) (Result, error) {
	return Bytes(ctx.Src), nil
}
