package highlight

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter writes highlighted code.
type Highlighter interface {
	Highlight(w io.Writer, code, lang string) error
	Config() Config
}

// New creates a chroma backed Highlighter.
func New(cfg Config) Highlighter {
	return chromaHighlighter{cfg: cfg}
}

type chromaHighlighter struct {
	cfg Config
}

func (h chromaHighlighter) Config() Config {
	return h.cfg
}

// Highlight writes code as HTML. Code in a language chroma does not know is
// written escaped in a plain pre block.
func (h chromaHighlighter) Highlight(w io.Writer, code, lang string) error {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}

	if lexer == nil {
		return writePlain(w, code, lang)
	}

	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("highlight %s: %w", lang, err)
	}

	style := styles.Get(h.cfg.Style)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(!h.cfg.NoClasses),
		chromahtml.WithLineNumbers(h.cfg.LineNos),
		chromahtml.TabWidth(h.cfg.TabWidth),
	)

	return formatter.Format(w, style, iterator)
}

func writePlain(w io.Writer, code, lang string) error {
	var class string
	if lang != "" {
		class = fmt.Sprintf(" class=\"language-%s\"", template.HTMLEscapeString(lang))
	}
	_, err := fmt.Fprintf(w, "<pre><code%s>%s</code></pre>\n", class, template.HTMLEscapeString(strings.TrimSuffix(code, "\n")+"\n"))
	return err
}
