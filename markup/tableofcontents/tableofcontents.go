// Package tableofcontents renders the headings of a document as a
// navigation list.
package tableofcontents

import (
	"html/template"
	"strings"
)

// Heading is a heading in a document.
type Heading struct {
	// The anchor id, e.g. "getting-started".
	ID string

	// 1 for h1, 2 for h2 etc.
	Level int

	Text string
}

// Headings are the headings of a document in document order.
type Headings []Heading

// Config configures the rendered table of contents.
type Config struct {
	// Heading levels to include.
	StartLevel int
	EndLevel   int

	// Use <ol> rather than <ul>.
	Ordered bool
}

var DefaultConfig = Config{
	StartLevel: 2,
	EndLevel:   3,
}

// ToHTML renders the headings between cfg.StartLevel and cfg.EndLevel as
// nested lists in a nav element. It returns an empty string if no heading
// is in range.
func (toc Headings) ToHTML(cfg Config) string {
	listTag := "ul"
	if cfg.Ordered {
		listTag = "ol"
	}
	openList, closeList := "<"+listTag+">", "</"+listTag+">"

	var (
		b    strings.Builder
		prev int
	)

	for _, h := range toc {
		if h.Level < cfg.StartLevel || h.Level > cfg.EndLevel {
			continue
		}
		level := h.Level - cfg.StartLevel + 1

		if prev == 0 {
			b.WriteString(`<nav id="TableOfContents">`)
		}

		switch {
		case level > prev:
			for i := prev; i < level; i++ {
				if i > prev {
					b.WriteString("<li>")
				}
				b.WriteString(openList)
			}
		default:
			b.WriteString("</li>")
			for i := prev; i > level; i-- {
				b.WriteString(closeList + "</li>")
			}
		}

		b.WriteString(`<li><a href="#`)
		b.WriteString(template.HTMLEscapeString(h.ID))
		b.WriteString(`">`)
		b.WriteString(template.HTMLEscapeString(h.Text))
		b.WriteString("</a>")

		prev = level
	}

	if prev == 0 {
		return ""
	}

	b.WriteString("</li>")
	for i := prev; i > 1; i-- {
		b.WriteString(closeList + "</li>")
	}
	b.WriteString(closeList + "</nav>")

	return b.String()
}
