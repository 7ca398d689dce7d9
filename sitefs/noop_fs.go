package sitefs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// NoOpFs is an empty, read-only file system.
var NoOpFs = afero.NewReadOnlyFs(afero.NewMemMapFs())

// WalkFunc is called for every regular file found by Walk, with a slash
// separated path relative to the walk root.
type WalkFunc func(path string, info os.FileInfo) error

// Walk walks the regular files below root in lexical order. Directories for
// which skipDir returns true are not entered.
func Walk(fs afero.Fs, root string, skipDir func(path string, info os.FileInfo) bool, fn WalkFunc) error {
	return afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return nil
			}
			return err
		}
		if info.IsDir() {
			if path != root && skipDir != nil && skipDir(path, info) {
				return filepath.SkipDir
			}
			return nil
		}
		return fn(path, info)
	})
}

// ModTime returns the modification time of filename, zero if unknown.
func ModTime(fs afero.Fs, filename string) time.Time {
	fi, err := fs.Stat(filename)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}
