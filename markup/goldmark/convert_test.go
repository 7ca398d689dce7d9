package goldmark

import (
	"strings"
	"testing"

	"github.com/sunwei/blogsite/config"
	"github.com/sunwei/blogsite/markup/converter"
	"github.com/sunwei/blogsite/markup/highlight"
	"github.com/sunwei/blogsite/markup/markup_config"
	"github.com/sunwei/blogsite/markup/tableofcontents"
)

func convert(t *testing.T, mconf markup_config.Config, content string) string {
	t.Helper()

	p, err := Provider.New(converter.ProviderConfig{
		MarkupConfig: mconf,
		Cfg:          config.New(),
		Highlighter:  highlight.New(mconf.Highlight),
	})
	if err != nil {
		t.Fatal(err)
	}

	conv, err := p.New(converter.DocumentContext{Filename: "post.md"})
	if err != nil {
		t.Fatal(err)
	}

	res, err := conv.Convert(converter.RenderContext{Src: []byte(content)})
	if err != nil {
		t.Fatal(err)
	}

	return string(res.Bytes())
}

func TestConvert(t *testing.T) {
	content := `
## Testing Heading

Some text with ~~strike~~ and https://example.org.

## Testing Heading

| a | b |
|---|---|
| 1 | 2 |

- [x] done

` + "```go\nfunc main() {}\n```\n"

	b := convert(t, markup_config.Default, content)

	for _, want := range []string{
		`<h2 id="testing-heading">Testing Heading</h2>`,
		`<h2 id="testing-heading-1">Testing Heading</h2>`,
		`<del>strike</del>`,
		`<a href="https://example.org">https://example.org</a>`,
		`<table>`,
		`checked="" disabled="" type="checkbox"`,
		`">func</span>`,
	} {
		if !strings.Contains(b, want) {
			t.Errorf("missing %q in\n%s", want, b)
		}
	}
}

func TestConvertIDsArePerDocument(t *testing.T) {
	b1 := convert(t, markup_config.Default, "# Title\n")
	b2 := convert(t, markup_config.Default, "# Title\n")
	if b1 != b2 || !strings.Contains(b1, `id="title"`) {
		t.Errorf("got %q and %q", b1, b2)
	}
}

func TestConvertUnsafe(t *testing.T) {
	mconf := markup_config.Default
	b := convert(t, mconf, "<div>raw</div>\n")
	if strings.Contains(b, "<div>") {
		t.Errorf("raw HTML rendered in safe mode: %q", b)
	}

	mconf.Goldmark.Renderer.Unsafe = true
	b = convert(t, mconf, "<div>raw</div>\n")
	if !strings.Contains(b, "<div>raw</div>") {
		t.Errorf("raw HTML dropped in unsafe mode: %q", b)
	}
}

func TestConvertCodeFencesDisabled(t *testing.T) {
	mconf := markup_config.Default
	mconf.Highlight.CodeFences = false
	b := convert(t, mconf, "```go\nx := 1\n```\n")
	if !strings.Contains(b, `<pre><code class="language-go">x := 1`) {
		t.Errorf("got %q", b)
	}
}

func TestConvertTableOfContents(t *testing.T) {
	mconf := markup_config.Default
	p, err := Provider.New(converter.ProviderConfig{MarkupConfig: mconf, Cfg: config.New()})
	if err != nil {
		t.Fatal(err)
	}
	conv, _ := p.New(converter.DocumentContext{Filename: "post.md"})

	res, err := conv.Convert(converter.RenderContext{Src: []byte("# Title\n\n## First *step*\n\ntext\n\n### Détails\n\n## First step\n")})
	if err != nil {
		t.Fatal(err)
	}

	tp, ok := res.(converter.TableOfContentsProvider)
	if !ok {
		t.Fatalf("%T does not provide a table of contents", res)
	}

	toc := tp.TableOfContents()
	want := tableofcontents.Headings{
		{ID: "title", Level: 1, Text: "Title"},
		{ID: "first-step", Level: 2, Text: "First step"},
		{ID: "détails", Level: 3, Text: "Détails"},
		{ID: "first-step-1", Level: 2, Text: "First step"},
	}
	if len(toc) != len(want) {
		t.Fatalf("got %+v", toc)
	}
	for i := range want {
		if toc[i] != want[i] {
			t.Errorf("%d: got %+v want %+v", i, toc[i], want[i])
		}
	}
}
