package config

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"
	"github.com/sunwei/blogsite/log"
	"github.com/sunwei/blogsite/related"
)

func writeFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigFindsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/site/_config.yml", "title: Jekyll style\nga_tracking_code: UA-static\n")
	writeFile(t, fs, "/site/config.toml", "title = \"Hugo style\"\n[permalinks]\nposts = \"/blog/:slug/\"\n")

	cfg, filename, err := LoadConfig(ConfigSourceDescriptor{Fs: fs, WorkingDir: "/site", Logger: log.NewDiscard()})
	if err != nil {
		t.Fatal(err)
	}
	if filename != filepath.Join("/site", "config.toml") {
		t.Fatalf("filename: got %q", filename)
	}
	if cfg.GetString("title") != "Hugo style" {
		t.Fatalf("title: got %q", cfg.GetString("title"))
	}
	if cfg.GetString("permalinks.posts") != "/blog/:slug/" || cfg.GetString("permalinks.pages") != "/:slug/" {
		t.Fatalf("permalinks: %v", cfg.Get("permalinks"))
	}
	if cfg.GetString("workingdir") != "/site" {
		t.Fatalf("workingDir: %q", cfg.GetString("workingdir"))
	}
}

func TestLoadConfigExplicitFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/site/_config.yml", "title: Jekyll style\n")

	cfg, _, err := LoadConfig(ConfigSourceDescriptor{Fs: fs, WorkingDir: "/site", Filename: "_config.yml", Logger: log.NewDiscard()})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GetString("title") != "Jekyll style" {
		t.Fatalf("title: got %q", cfg.GetString("title"))
	}

	_, _, err = LoadConfig(ConfigSourceDescriptor{Fs: fs, WorkingDir: "/site", Filename: "missing.toml", Logger: log.NewDiscard()})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadConfigDefaultsOnly(t *testing.T) {
	logger := log.NewDiscard()
	cfg, filename, err := LoadConfig(ConfigSourceDescriptor{Fs: afero.NewMemMapFs(), WorkingDir: "/site", Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	if filename != "" {
		t.Fatalf("got %q", filename)
	}
	if logger.Warnings() != 1 {
		t.Fatalf("expected a warning about the missing config file")
	}
	sc, err := DecodeSiteConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := SiteConfig{
		Title:          "My Blog",
		BaseURL:        "/",
		WorkingDir:     "/site",
		ContentDir:     "content",
		LayoutDir:      "layouts",
		StaticDir:      "static",
		DataDir:        "data",
		PublishDir:     "public",
		Permalinks:     Permalinks{Posts: "/:year/:month/:day/:slug/", Pages: "/:slug/"},
		SummaryLength:  70,
		TitleCaseStyle: "AP",
		IgnoreFiles:    []string{},
		DisableKinds:   []string{},
		Related:        related.DefaultConfig,
		Params:         sc.Params,
	}
	if !reflect.DeepEqual(sc, want) {
		t.Fatalf("got %+v\nwant %+v", sc, want)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/site/config.toml", "title = \n")
	if _, _, err := LoadConfig(ConfigSourceDescriptor{Fs: fs, WorkingDir: "/site", Logger: log.NewDiscard()}); err == nil {
		t.Fatal("expected error")
	}
}

func TestDecodeSiteConfigAfterInjection(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/site/config.yaml", "ga_tracking_code: UA-static\nsummaryLength: \"20\"\nignoreFiles: drafts/**\nparams:\n  Author: sunwei\n")

	cfg, _, err := LoadConfig(ConfigSourceDescriptor{Fs: fs, WorkingDir: "/site", Logger: log.NewDiscard()})
	if err != nil {
		t.Fatal(err)
	}
	InjectEnv(cfg, MapEnviron{"GA_TRACKING_CODE": "UA-12345"})

	sc, err := DecodeSiteConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if sc.GATrackingCode != "UA-12345" {
		t.Errorf("GATrackingCode: got %q", sc.GATrackingCode)
	}
	if sc.SummaryLength != 20 {
		t.Errorf("SummaryLength: got %d", sc.SummaryLength)
	}
	if !reflect.DeepEqual(sc.IgnoreFiles, []string{"drafts/**"}) {
		t.Errorf("IgnoreFiles: got %v", sc.IgnoreFiles)
	}
	if sc.Params.GetString("author") != "sunwei" {
		t.Errorf("params: got %v", sc.Params)
	}

	InjectEnv(cfg, MapEnviron{})
	sc, err = DecodeSiteConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if sc.GATrackingCode != "" {
		t.Errorf("GATrackingCode should be empty when unset, got %q", sc.GATrackingCode)
	}
}

func TestLoadConfigSingleValueLists(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/site/config.toml", "disableKinds = \"404\"\nignoreFiles = \"old drafts/**\"\n")

	cfg, _, err := LoadConfig(ConfigSourceDescriptor{Fs: fs, WorkingDir: "/site", Logger: log.NewDiscard()})
	if err != nil {
		t.Fatal(err)
	}
	sc, err := DecodeSiteConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sc.DisableKinds, []string{"404"}) {
		t.Errorf("DisableKinds: got %v", sc.DisableKinds)
	}
	if !reflect.DeepEqual(sc.IgnoreFiles, []string{"old drafts/**"}) {
		t.Errorf("IgnoreFiles: got %v", sc.IgnoreFiles)
	}
}

func TestDecodeRelatedConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/site/config.toml", `
[related]
threshold = 50
includeNewer = true
[[related.indices]]
name = "tags"
weight = 80
`)

	cfg, _, err := LoadConfig(ConfigSourceDescriptor{Fs: fs, WorkingDir: "/site", Logger: log.NewDiscard()})
	if err != nil {
		t.Fatal(err)
	}
	sc, err := DecodeSiteConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}

	want := related.Config{
		Threshold:    50,
		IncludeNewer: true,
		Indices:      related.IndexConfigs{{Name: "tags", Weight: 80}},
	}
	if !reflect.DeepEqual(sc.Related, want) {
		t.Errorf("got %+v", sc.Related)
	}
}
