package tplimpl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bep/clocks"
	"github.com/spf13/afero"
	"github.com/sunwei/blogsite/config"
	"github.com/sunwei/blogsite/deps"
	"github.com/sunwei/blogsite/log"
	"github.com/sunwei/blogsite/sitefs"
)

var testNow = time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestDeps(t *testing.T, files map[string]string, settings map[string]any) (*deps.Deps, error) {
	t.Helper()

	mfs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(mfs, filepath.Join("/site", name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.New()
	for k, v := range settings {
		cfg.Set(k, v)
	}
	cfg.SetDefaults(config.DefaultSettings())
	cfg.Set("workingDir", "/site")

	sc, err := config.DecodeSiteConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}

	fs, err := sitefs.NewFrom(mfs, cfg)
	if err != nil {
		t.Fatal(err)
	}

	d, err := deps.New(deps.DepsCfg{
		Fs:               fs,
		Cfg:              cfg,
		SiteConfig:       sc,
		Logger:           log.NewDiscard(),
		Clock:            clocks.Fixed(testNow),
		TemplateProvider: DefaultTemplateProvider,
	})
	if err != nil {
		t.Fatal(err)
	}

	return d, d.LoadResources()
}

func mustDeps(t *testing.T, files map[string]string, settings map[string]any) *deps.Deps {
	t.Helper()
	d, err := newTestDeps(t, files, settings)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func execute(t *testing.T, d *deps.Deps, layout string, data any) string {
	t.Helper()
	templ, found := d.Tmpl().LookupLayout(layout)
	if !found {
		t.Fatalf("layout %q not found", layout)
	}
	var b bytes.Buffer
	if err := d.Tmpl().Execute(templ, &b, data); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

func TestEmbeddedLayouts(t *testing.T) {
	d := mustDeps(t, nil, nil)
	h := d.Tmpl()

	for _, name := range []string{"default.html", "post.html", "page.html", "home.html", "topic.html", "404.html", "partials/head.html", "partials/analytics.html"} {
		if !h.HasTemplate(name) {
			t.Errorf("missing embedded template %q", name)
		}
	}

	if h.HasTemplate("baseof.html") {
		t.Error("baseof.html should only be used as a base")
	}

	if _, found := h.LookupLayout("post"); !found {
		t.Error("LookupLayout without suffix")
	}
	if _, found := h.LookupLayout("gallery"); found {
		t.Error("unknown layout found")
	}
}

func TestSiteLayoutOverridesBase(t *testing.T) {
	d := mustDeps(t, map[string]string{
		"layouts/baseof.html": `<html>{{ block "main" . }}base{{ end }}</html>`,
		"layouts/post.html":   `{{ define "main" }}<p>custom {{ .Title }}</p>{{ end }}`,
		"layouts/plain.html":  `<p>{{ .Title }}</p>`,
	}, nil)

	data := map[string]any{"Title": "Hello"}

	if got := execute(t, d, "post", data); got != "<html><p>custom Hello</p></html>" {
		t.Errorf("post: got %q", got)
	}
	if got := execute(t, d, "plain.html", data); got != "<p>Hello</p>" {
		t.Errorf("plain: got %q", got)
	}
}

func TestDefaultDirLayouts(t *testing.T) {
	d := mustDeps(t, map[string]string{
		"layouts/baseof.html":        `[{{ block "main" . }}{{ end }}]`,
		"layouts/_default/note.html": `{{ define "main" }}note{{ end }}`,
	}, nil)

	if got := execute(t, d, "note", nil); got != "[note]" {
		t.Errorf("got %q", got)
	}
}

func TestDefaultDirBase(t *testing.T) {
	d := mustDeps(t, map[string]string{
		"layouts/_default/baseof.html": `<main>{{ block "main" . }}{{ end }}</main>`,
		"layouts/note.html":            `{{ define "main" }}note{{ end }}`,
	}, nil)

	if d.Tmpl().HasTemplate("_default/baseof.html") {
		t.Error("_default/baseof.html should only be used as a base")
	}
	if got := execute(t, d, "note", nil); got != "<main>note</main>" {
		t.Errorf("got %q", got)
	}

	d = mustDeps(t, map[string]string{
		"layouts/baseof.html":          `[{{ block "main" . }}{{ end }}]`,
		"layouts/_default/baseof.html": `<main>{{ block "main" . }}{{ end }}</main>`,
		"layouts/note.html":            `{{ define "main" }}note{{ end }}`,
	}, nil)

	if got := execute(t, d, "note", nil); got != "[note]" {
		t.Errorf("top-level base: got %q", got)
	}
}

func TestPartial(t *testing.T) {
	d := mustDeps(t, map[string]string{
		"layouts/partials/greet.html": `Hi {{ . }}`,
		"layouts/hello.html":          `<p>{{ partial "greet" "you" }}</p>`,
		"layouts/broken.html":         `{{ partial "missing.html" . }}`,
	}, nil)

	if got := execute(t, d, "hello", nil); got != "<p>Hi you</p>" {
		t.Errorf("got %q", got)
	}

	templ, _ := d.Tmpl().LookupLayout("broken")
	var b bytes.Buffer
	err := d.Tmpl().Execute(templ, &b, nil)
	if err == nil || !strings.Contains(err.Error(), "missing.html") {
		t.Fatalf("expected missing partial error, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken.html") {
		t.Errorf("error should name the layout: %v", err)
	}
}

func TestParseError(t *testing.T) {
	_, err := newTestDeps(t, map[string]string{
		"layouts/bad.html": `{{ if }}`,
	}, nil)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "bad.html") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestTemplateFuncs(t *testing.T) {
	d := mustDeps(t, map[string]string{
		"layouts/funcs.html": strings.Join([]string{
			`{{ truncate 10 "Hello world again" }}`,
			`{{ truncate 20 "Hello world again" }}`,
			`{{ range first 2 .Items }}{{ . }}{{ end }}`,
			`{{ dateFormat "2006-01-02" "2020-03-04" }}`,
			`{{ urlize "Go Lang" }}`,
			`{{ title "hello world" }}`,
			`{{ markdownify "**bold**" }}`,
			`{{ param "author.name" }}`,
			`{{ now.Year }}`,
			`{{ plainify "<b>plain</b>" }}`,
			`{{ upper "up" }}{{ lower "DOWN" }}`,
			`{{ relURL "about/" }}`,
			`{{ absURL "about/" }}`,
			`{{ emojify ":smile:" }}`,
		}, "\n"),
	}, map[string]any{
		"baseURL": "https://example.org/blog/",
		"params": map[string]any{
			"author": map[string]any{"name": "sunwei"},
		},
	})

	got := strings.Split(execute(t, d, "funcs", map[string]any{"Items": []string{"a", "b", "c"}}), "\n")
	want := []string{
		"Hello …",
		"Hello world again",
		"ab",
		"2020-03-04",
		"go-lang",
		"Hello World",
		"<strong>bold</strong>",
		"sunwei",
		"2021",
		"plain",
		"UPdown",
		"/blog/about/",
		"https://example.org/blog/about/",
		"😄",
	}

	if len(got) != len(want) {
		t.Fatalf("got %d lines: %q", len(got), got)
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != want[i] {
			t.Errorf("line %d: got %q want %q", i, got[i], want[i])
		}
	}
}
