package sitelib

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
	"github.com/sunwei/blogsite/common/paths"
	"github.com/sunwei/blogsite/parser/metadecoders"
	"github.com/sunwei/blogsite/sitefs"
)

// loadData reads the data dir into a tree of maps keyed by directory and
// file base name, e.g. data/authors/sunwei.toml => .Site.Data.authors.sunwei.
func (s *Site) loadData() error {
	s.data = make(map[string]any)

	fs := s.SourceFs.Data
	if fs == nil || !sitefs.Exists(fs) {
		return nil
	}

	s.Log.Process("loadData", "walk "+s.SiteConfig.DataDir)

	return sitefs.Walk(fs, "/", nil, func(filename string, fi os.FileInfo) error {
		return s.handleDataFile(fs, paths.ToSlashTrimLeading(filename))
	})
}

func (s *Site) handleDataFile(fs afero.Fs, name string) error {
	format := metadecoders.FormatFromString(name)
	if format == "" {
		s.Log.Warnf("data: skip %q: unsupported format", name)
		return nil
	}

	b, err := afero.ReadFile(fs, name)
	if err != nil {
		return fmt.Errorf("data: failed to read %q: %w", name, err)
	}

	data, err := metadecoders.Default.Unmarshal(b, format)
	if err != nil {
		return fmt.Errorf("data: failed to decode %q: %w", name, err)
	}

	// Crawl in data tree to insert data
	current := s.data
	dir := path.Dir(name)
	if dir != "." {
		for _, key := range strings.Split(dir, "/") {
			next, ok := current[key].(map[string]any)
			if !ok {
				if _, exists := current[key]; exists {
					s.Log.Warnf("data: %q is overridden by the directory of %q", key, name)
				}
				next = make(map[string]any)
				current[key] = next
			}
			current = next
		}
	}

	key := paths.Filename(name)
	existing := current[key]

	switch v := data.(type) {
	case map[string]any:
		switch ev := existing.(type) {
		case nil:
			current[key] = v
		case map[string]any:
			// The directory was walked first; its keys win.
			for k, value := range v {
				if _, exists := ev[k]; exists {
					s.Log.Warnf("data: key %q in %q is overridden by the directory of the same name", k, name)
					continue
				}
				ev[k] = value
			}
		default:
			s.Log.Warnf("data: the %T data from %q is overridden by %T data already in the data tree", data, name, existing)
		}
	default:
		if existing == nil {
			current[key] = data
		} else {
			// we don't merge array data
			s.Log.Warnf("data: the %T data from %q is overridden by %T data already in the data tree", data, name, existing)
		}
	}

	return nil
}
