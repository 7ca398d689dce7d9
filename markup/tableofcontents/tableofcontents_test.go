package tableofcontents

import "testing"

func TestToHTML(t *testing.T) {
	toc := Headings{
		{ID: "title", Level: 1, Text: "Title"},
		{ID: "a", Level: 2, Text: "A"},
		{ID: "b", Level: 3, Text: "B & C"},
		{ID: "c", Level: 2, Text: "C"},
		{ID: "d", Level: 4, Text: "D"},
	}

	got := toc.ToHTML(DefaultConfig)
	want := `<nav id="TableOfContents"><ul><li><a href="#a">A</a><ul><li><a href="#b">B &amp; C</a></li></ul></li><li><a href="#c">C</a></li></ul></nav>`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestToHTMLSkippedLevel(t *testing.T) {
	toc := Headings{
		{ID: "a", Level: 2, Text: "A"},
		{ID: "b", Level: 4, Text: "B"},
	}

	got := toc.ToHTML(Config{StartLevel: 2, EndLevel: 4, Ordered: true})
	want := `<nav id="TableOfContents"><ol><li><a href="#a">A</a><ol><li><ol><li><a href="#b">B</a></li></ol></li></ol></li></ol></nav>`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestToHTMLEmpty(t *testing.T) {
	if got := (Headings{{ID: "x", Level: 1, Text: "X"}}).ToHTML(DefaultConfig); got != "" {
		t.Errorf("got %q", got)
	}
	if got := Headings(nil).ToHTML(DefaultConfig); got != "" {
		t.Errorf("got %q", got)
	}
}
