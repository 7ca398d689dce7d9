// Package source finds the content files of a site.
package source

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// SourceSpec knows where the content lives and which files to skip.
type SourceSpec struct {
	SourceFs afero.Fs

	// Absolute path of the content dir, used for File.Filename.
	ContentDir string

	ignoreFiles []glob.Glob
}

// NewSourceSpec creates a SourceSpec for the content file system fs rooted at
// contentDir. ignoreFiles are glob patterns matched against slash separated
// paths relative to the content root.
func NewSourceSpec(fs afero.Fs, contentDir string, ignoreFiles []string) (*SourceSpec, error) {
	s := &SourceSpec{
		SourceFs:   fs,
		ContentDir: contentDir,
	}

	for _, pattern := range ignoreFiles {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignoreFiles pattern %q: %w", pattern, err)
		}
		s.ignoreFiles = append(s.ignoreFiles, g)
	}

	return s, nil
}

// IgnoreFile returns whether a given file should be ignored.
func (s *SourceSpec) IgnoreFile(filename string) bool {
	if filename == "" {
		return true
	}

	base := filepath.Base(filename)

	if len(base) > 0 {
		first := base[0]
		last := base[len(base)-1]
		if first == '.' ||
			first == '#' ||
			last == '~' {
			return true
		}
	}

	rel := filepath.ToSlash(filename)
	for len(rel) > 0 && rel[0] == '/' {
		rel = rel[1:]
	}

	for _, g := range s.ignoreFiles {
		if g.Match(rel) {
			return true
		}
	}

	return false
}
