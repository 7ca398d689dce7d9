package markup_config

import (
	"testing"

	"github.com/sunwei/blogsite/config"
	"github.com/sunwei/blogsite/markup/goldmark/goldmark_config"
)

func TestDecode(t *testing.T) {
	cfg := config.New()
	cfg.Set("markup", map[string]any{
		"highlight": map[string]any{
			"style":   "dracula",
			"lineNos": true,
		},
		"tableOfContents": map[string]any{
			"endLevel": 4,
		},
		"goldmark": map[string]any{
			"renderer": map[string]any{
				"unsafe": true,
			},
		},
	})

	conf, err := Decode(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if conf.Highlight.Style != "dracula" || !conf.Highlight.LineNos {
		t.Errorf("highlight not decoded: %+v", conf.Highlight)
	}
	if !conf.Highlight.NoClasses {
		t.Error("default noClasses lost")
	}
	if conf.TableOfContents.StartLevel != 2 || conf.TableOfContents.EndLevel != 4 {
		t.Errorf("tableOfContents: got %+v", conf.TableOfContents)
	}
	if !conf.Goldmark.Renderer.Unsafe {
		t.Error("unsafe not decoded")
	}
	if conf.Goldmark.Parser.AutoHeadingIDType != goldmark_config.AutoHeadingIDTypeGitHub {
		t.Errorf("default id type lost: %q", conf.Goldmark.Parser.AutoHeadingIDType)
	}
}

func TestDecodeDefaults(t *testing.T) {
	conf, err := Decode(config.New())
	if err != nil {
		t.Fatal(err)
	}
	if conf.DefaultMarkdownHandler != "goldmark" || conf.Highlight.Style != "monokai" {
		t.Errorf("unexpected defaults: %+v", conf)
	}
}
