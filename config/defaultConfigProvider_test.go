package config

import (
	"testing"

	"github.com/sunwei/blogsite/common/maps"
)

func TestDefaultConfigProvider(t *testing.T) {
	cfg := New()

	cfg.Set("", map[string]any{
		"Title":      "Blog",
		"paginate":   "10",
		"draftsOn":   "true",
		"Permalinks": map[string]any{"Posts": "/:slug/"},
	})

	if got := cfg.GetString("title"); got != "Blog" {
		t.Errorf("title: got %q", got)
	}
	if got := cfg.GetInt("paginate"); got != 10 {
		t.Errorf("paginate: got %d", got)
	}
	if !cfg.GetBool("draftson") {
		t.Error("draftsOn should be true")
	}
	if got := cfg.GetString("permalinks.posts"); got != "/:slug/" {
		t.Errorf("permalinks.posts: got %q", got)
	}
	if !cfg.IsSet("PERMALINKS.POSTS") || cfg.IsSet("permalinks.pages") {
		t.Error("IsSet is wrong")
	}

	cfg.Set("permalinks", map[string]any{"pages": "/p/:slug/"})
	if cfg.GetString("permalinks.posts") != "/:slug/" || cfg.GetString("permalinks.pages") != "/p/:slug/" {
		t.Errorf("nested set should merge: %v", cfg.Get("permalinks"))
	}

	cfg.Set("a.b.c", "deep")
	if cfg.GetString("a.b.c") != "deep" {
		t.Errorf("deep set: %v", cfg.Get("a"))
	}
	if _, ok := cfg.GetParams("a").Get("b").(maps.Params); !ok {
		t.Error("intermediate maps should be Params")
	}
}

func TestSetDefaults(t *testing.T) {
	cfg := NewFrom(maps.Params{"title": "Mine", "permalinks": maps.Params{"posts": "/:slug/"}})
	cfg.SetDefaults(DefaultSettings())

	if cfg.GetString("title") != "Mine" {
		t.Errorf("defaults must not overwrite: %q", cfg.GetString("title"))
	}
	if cfg.GetString("permalinks.posts") != "/:slug/" {
		t.Errorf("nested value overwritten: %q", cfg.GetString("permalinks.posts"))
	}
	if cfg.GetString("permalinks.pages") != "/:slug/" {
		t.Errorf("nested default missing: %q", cfg.GetString("permalinks.pages"))
	}
	if cfg.GetString("publishdir") != "public" {
		t.Errorf("publishDir default missing")
	}
}
