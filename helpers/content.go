package helpers

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kyokomi/emoji/v2"
	bp "github.com/sunwei/blogsite/bufferpool"
	"github.com/sunwei/blogsite/config"
	"github.com/sunwei/blogsite/markup"
	"github.com/sunwei/blogsite/markup/converter"
	"github.com/sunwei/blogsite/markup/tableofcontents"
)

// NewContentSpec returns a ContentSpec initialized
// with the appropriate fields from the given config.Provider.
func NewContentSpec(cfg config.Provider) (*ContentSpec, error) {
	spec := &ContentSpec{
		summaryLength: cfg.GetInt("summaryLength"),
		enableEmoji:   cfg.GetBool("enableEmoji"),
		Cfg:           cfg,
	}

	if spec.summaryLength <= 0 {
		spec.summaryLength = 70
	}

	// markdown
	converterProvider, err := markup.NewConverterProvider(cfg)
	if err != nil {
		return nil, err
	}

	spec.Converters = converterProvider

	return spec, nil
}

// ContentSpec provides functionality to render markdown content.
type ContentSpec struct {
	Converters markup.ConverterProvider
	Cfg        config.Provider

	// SummaryLength is the length of the summary that is extracted from a content.
	summaryLength int

	enableEmoji bool
}

// ResolveMarkup returns the markup name for the given extension or
// markup identifier, empty if unknown.
func (c *ContentSpec) ResolveMarkup(in string) string {
	in = strings.ToLower(in)
	switch in {
	case "md", "markdown", "mdown":
		return "markdown"
	case "html", "htm":
		return "html"
	default:
		if conv := c.Converters.Get(in); conv != nil {
			return conv.Name()
		}
	}
	return ""
}

// Convert renders src written in markup to HTML.
func (c *ContentSpec) Convert(markup, filename string, src []byte) ([]byte, error) {
	b, _, err := c.ConvertContent(markup, filename, src)
	return b, err
}

// ConvertContent renders src written in markup to HTML and returns the
// headings of the document, if the converter knows them.
func (c *ContentSpec) ConvertContent(markup, filename string, src []byte) ([]byte, tableofcontents.Headings, error) {
	p := c.Converters.Get(markup)
	if p == nil {
		return nil, nil, fmt.Errorf("no converter for markup %q", markup)
	}

	if c.enableEmoji {
		src = Emojify(src)
	}

	conv, err := p.New(converter.DocumentContext{Filename: filename})
	if err != nil {
		return nil, nil, err
	}

	res, err := conv.Convert(converter.RenderContext{Src: src})
	if err != nil {
		return nil, nil, err
	}

	var toc tableofcontents.Headings
	if tp, ok := res.(converter.TableOfContentsProvider); ok {
		toc = tp.TableOfContents()
	}

	return res.Bytes(), toc, nil
}

// TableOfContents renders toc as configured in markup.tableOfContents.
func (c *ContentSpec) TableOfContents(toc tableofcontents.Headings) template.HTML {
	return template.HTML(toc.ToHTML(c.Converters.GetMarkupConfig().TableOfContents))
}

// RenderMarkdown renders src as Markdown.
func (c *ContentSpec) RenderMarkdown(src []byte) ([]byte, error) {
	return c.Convert("markdown", "", src)
}

// Emojify replaces emoji codes such as :smile: with their unicode form.
func Emojify(source []byte) []byte {
	if !bytes.Contains(source, []byte(":")) {
		return source
	}
	return []byte(emoji.Sprint(string(source)))
}

// BytesToHTML converts bytes to type template.HTML.
func BytesToHTML(b []byte) template.HTML {
	return template.HTML(string(b))
}

var (
	openingPTag        = []byte("<p>")
	closingPTag        = []byte("</p>")
	paragraphIndicator = []byte("<p")
	closingIndicator   = []byte("</")
)

// TrimShortHTML removes the <p>/</p> tags from HTML input in the situation
// where said tags are the only <p> tags in the input and enclose the content
// of the input (whitespace excluded).
func (c *ContentSpec) TrimShortHTML(input []byte) []byte {
	firstOpeningP := bytes.Index(input, paragraphIndicator)
	lastOpeningP := bytes.LastIndex(input, paragraphIndicator)

	lastClosingP := bytes.LastIndex(input, closingPTag)
	lastClosing := bytes.LastIndex(input, closingIndicator)

	if firstOpeningP == lastOpeningP && lastClosingP == lastClosing {
		input = bytes.TrimSpace(input)
		input = bytes.TrimPrefix(input, openingPTag)
		input = bytes.TrimSuffix(input, closingPTag)
		input = bytes.TrimSpace(input)
	}
	return input
}

var stripHTMLReplacer = strings.NewReplacer("\n", " ", "</p>", "\n", "<br>", "\n", "<br />", "\n")

// StripHTML accepts a string, strips out all HTML tags and returns it.
func StripHTML(s string) string {
	// Shortcut strings with no tags in them
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	s = stripHTMLReplacer.Replace(s)

	// Walk through the string removing all tags
	b := bp.GetBuffer()
	defer bp.PutBuffer(b)
	var inTag, isSpace, wasSpace bool
	for _, r := range s {
		if !inTag {
			isSpace = false
		}

		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case unicode.IsSpace(r):
			isSpace = true
			fallthrough
		default:
			if !inTag && (!isSpace || (isSpace && !wasSpace)) {
				b.WriteRune(r)
			}
		}

		wasSpace = isSpace

	}
	return b.String()
}

// TotalWords counts the words in s.
func TotalWords(s string) int {
	n := 0
	inWord := false
	for _, r := range s {
		wasInWord := inWord
		inWord = !unicode.IsSpace(r)
		if inWord && !wasInWord {
			n++
		}
	}
	return n
}

// TruncateWordsByRune truncates words by runes.
func (c *ContentSpec) TruncateWordsByRune(in []string) (string, bool) {
	words := make([]string, len(in))
	copy(words, in)

	count := 0
	for index, word := range words {
		if count >= c.summaryLength {
			return strings.Join(words[:index], " "), true
		}
		runeCount := utf8.RuneCountInString(word)
		if len(word) == runeCount {
			count++
		} else if count+runeCount < c.summaryLength {
			count += runeCount
		} else {
			for ri := range word {
				if count >= c.summaryLength {
					truncatedWords := append(words[:index], word[:ri])
					return strings.Join(truncatedWords, " "), true
				}
				count++
			}
		}
	}

	return strings.Join(words, " "), false
}

// TruncateWordsToWholeSentence takes content and truncates to whole sentence
// limited by max number of words. It also returns whether it is truncated.
func (c *ContentSpec) TruncateWordsToWholeSentence(s string) (string, bool) {
	var (
		wordCount     = 0
		lastWordIndex = -1
	)

	for i, r := range s {
		if unicode.IsSpace(r) {
			wordCount++
			lastWordIndex = i

			if wordCount >= c.summaryLength {
				break
			}

		}
	}

	if lastWordIndex == -1 {
		return s, false
	}

	endIndex := -1

	for j, r := range s[lastWordIndex:] {
		if isEndOfSentence(r) {
			endIndex = j + lastWordIndex + utf8.RuneLen(r)
			break
		}
	}

	if endIndex == -1 {
		return s, false
	}

	return strings.TrimSpace(s[:endIndex]), endIndex < len(s)
}

func isEndOfSentence(r rune) bool {
	return r == '.' || r == '?' || r == '!' || r == '"' || r == '\n'
}
