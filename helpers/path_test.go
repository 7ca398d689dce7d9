package helpers

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/sunwei/blogsite/config"
)

func newTestPathSpec(t *testing.T, baseURL string, removeAccents bool) *PathSpec {
	t.Helper()
	cfg := config.New()
	cfg.Set("baseURL", baseURL)
	cfg.Set("removePathAccents", removeAccents)
	p, err := NewPathSpec(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestMakePath(t *testing.T) {
	tests := []struct {
		input         string
		expected      string
		removeAccents bool
	}{
		{"dot.slash/backslash\\underscore_pound#plus+hyphen-", "dot.slash/backslash\\underscore_pound#plus+hyphen-", true},
		{"abcXYZ0123456789", "abcXYZ0123456789", true},
		{"%20 %2", "%20-2", true},
		{"foo- bar", "foo-bar", true},
		{"  Foo bar  ", "Foo-bar", true},
		{"Foo.Bar/foo_Bar-Foo", "Foo.Bar/foo_Bar-Foo", true},
		{"fOO,bar:foobAR", "fOObarfoobAR", true},
		{"FOo/BaR.html", "FOo/BaR.html", true},
		{"трям/трям", "трям/трям", true},
		{"은행", "은행", true},
		{"Банковский кассир", "Банковскии-кассир", true},
		{"Banķu kasieris", "Banku-kasieris", true},
		{"Banķu kasieris", "Banķu-kasieris", false},
	}

	for _, test := range tests {
		p := newTestPathSpec(t, "/", test.removeAccents)
		output := p.MakePath(test.input)
		if output != test.expected {
			t.Errorf("Expected %#v, got %#v\n", test.expected, output)
		}
	}
}

func TestURLize(t *testing.T) {
	p := newTestPathSpec(t, "/", false)

	tests := []struct {
		input    string
		expected string
	}{
		{"  foo bar  ", "foo-bar"},
		{"foo.bar/foo_bar-foo", "foo.bar/foo_bar-foo"},
		{"foo,bar:foobar", "foobarfoobar"},
		{"foo/bar.html", "foo/bar.html"},
		{"трям/трям", "%D1%82%D1%80%D1%8F%D0%BC/%D1%82%D1%80%D1%8F%D0%BC"},
		{"100%-google", "100-google"},
		{"Go Lang", "go-lang"},
	}

	for _, test := range tests {
		output := p.URLize(test.input)
		if output != test.expected {
			t.Errorf("Expected %#v, got %#v\n", test.expected, output)
		}
	}
}

func TestAbsAndRelURL(t *testing.T) {
	for _, test := range []struct {
		baseURL string
		in      string
		abs     string
		rel     string
	}{
		{"/", "about/", "/about/", "/about/"},
		{"/", "/", "/", "/"},
		{"https://example.org", "/about/", "https://example.org/about/", "/about/"},
		{"https://example.org/blog/", "about/", "https://example.org/blog/about/", "/blog/about/"},
		{"https://example.org/blog/", "/blog/about/", "https://example.org/blog/blog/about/", "/blog/about/"},
		{"https://example.org/blog/", "https://example.org/blog/css/a.css", "https://example.org/blog/css/a.css", "/blog/css/a.css"},
		{"https://example.org/", "https://other.org/x", "https://other.org/x", "https://other.org/x"},
		{"https://example.org/", "//cdn.org/x.js", "//cdn.org/x.js", "//cdn.org/x.js"},
	} {
		p := newTestPathSpec(t, test.baseURL, false)
		if got := p.AbsURL(test.in); got != test.abs {
			t.Errorf("AbsURL(%q) with %q: got %q want %q", test.in, test.baseURL, got, test.abs)
		}
		if got := p.RelURL(test.in); got != test.rel {
			t.Errorf("RelURL(%q) with %q: got %q want %q", test.in, test.baseURL, got, test.rel)
		}
	}
}

func TestOpenFileForWriting(t *testing.T) {
	fs := afero.NewMemMapFs()

	f, err := OpenFileForWriting(fs, "/public/a/b/index.html")
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("hello")
	f.Close()

	b, err := afero.ReadFile(fs, "/public/a/b/index.html")
	if err != nil || string(b) != "hello" {
		t.Fatalf("got %q, %v", b, err)
	}
}
