// Package pageparser splits a content file into its front matter and body.
package pageparser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/adrg/frontmatter"
	"github.com/sunwei/blogsite/parser/metadecoders"
)

// SummaryDivider marks the end of the summary in the body.
var SummaryDivider = []byte("<!--more-->")

// ContentFrontMatter holds the parsed front matter and the content that
// follows it.
type ContentFrontMatter struct {
	Content           []byte
	FrontMatter       map[string]any
	FrontMatterFormat metadecoders.Format
}

// Summary returns the content before the summary divider and whether the
// divider was found.
func (c ContentFrontMatter) Summary() ([]byte, bool) {
	idx := bytes.Index(c.Content, SummaryDivider)
	if idx < 0 {
		return nil, false
	}
	return bytes.TrimSpace(c.Content[:idx]), true
}

// ContentWithoutDivider returns the content with the summary divider removed.
func (c ContentFrontMatter) ContentWithoutDivider() []byte {
	return bytes.Replace(c.Content, SummaryDivider, nil, 1)
}

type frontMatterFormat struct {
	start, end string
	format     metadecoders.Format
}

var frontMatterFormats = []frontMatterFormat{
	{"---", "---", metadecoders.YAML},
	{"+++", "+++", metadecoders.TOML},
	{";;;", ";;;", metadecoders.JSON},
}

// ParseFrontMatterAndContent is a convenience method to extract front matter
// and content from a content page. A missing front matter block is not an
// error; the whole input is then returned as content.
func ParseFrontMatterAndContent(r io.Reader) (ContentFrontMatter, error) {
	var cf ContentFrontMatter

	var formats []*frontmatter.Format
	for _, f := range frontMatterFormats {
		f := f
		formats = append(formats, frontmatter.NewFormat(f.start, f.end, func(data []byte, v any) error {
			cf.FrontMatterFormat = f.format
			m, err := metadecoders.Default.UnmarshalToMap(data, f.format)
			if err != nil {
				return err
			}
			*(v.(*map[string]any)) = m
			return nil
		}))
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return cf, err
	}

	fm := make(map[string]any)
	rest, err := frontmatter.Parse(bytes.NewReader(src), &fm, formats...)
	if err != nil {
		if !errors.Is(err, frontmatter.ErrNotFound) {
			return cf, fmt.Errorf("failed to parse front matter: %w", err)
		}
		rest = src
	}

	cf.FrontMatter = fm
	cf.Content = rest

	return cf, nil
}
