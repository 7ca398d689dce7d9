package sitelib

import (
	"fmt"
	"io"
	"os"

	"github.com/sunwei/blogsite/helpers"
	"github.com/sunwei/blogsite/sitefs"
)

// copyStatic copies the files below the static dir verbatim into the
// publish dir.
func (s *Site) copyStatic() error {
	fs := s.SourceFs.Static
	if fs == nil || !sitefs.Exists(fs) {
		return nil
	}

	s.Log.Process("copyStatic", "from "+s.SiteConfig.StaticDir)

	return sitefs.Walk(fs, "/", nil, func(filename string, fi os.FileInfo) error {
		if err := s.copyStaticFile(filename); err != nil {
			return fmt.Errorf("copy static %q: %w", filename, err)
		}
		s.stats.staticFiles.Inc()
		return nil
	})
}

func (s *Site) copyStaticFile(filename string) error {
	src, err := s.SourceFs.Static.Open(filename)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := helpers.OpenFileForWriting(s.Fs.PublishDir, filename)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
