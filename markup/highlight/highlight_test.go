package highlight

import (
	"bytes"
	"strings"
	"testing"
)

func TestHighlight(t *testing.T) {
	h := New(DefaultConfig)

	var buf bytes.Buffer
	if err := h.Highlight(&buf, "package main\n", "go"); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, "<pre") || !strings.Contains(got, "style=") {
		t.Errorf("expected inline styled chroma output, got %q", got)
	}

	buf.Reset()
	if err := h.Highlight(&buf, "a < b\n", "no-such-language"); err != nil {
		t.Fatal(err)
	}
	want := "<pre><code class=\"language-no-such-language\">a &lt; b\n</code></pre>\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}

func TestHighlightClasses(t *testing.T) {
	cfg := DefaultConfig
	cfg.NoClasses = false
	h := New(cfg)

	var buf bytes.Buffer
	if err := h.Highlight(&buf, "echo hi\n", "bash"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `class="chroma"`) {
		t.Errorf("expected chroma class, got %q", buf.String())
	}
}
