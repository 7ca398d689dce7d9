package source

import (
	"fmt"
	"os"
	"sync"

	"github.com/sunwei/blogsite/sitefs"
)

// Filesystem represents a source filesystem.
type Filesystem struct {
	files        []File
	filesInit    sync.Once
	filesInitErr error

	*SourceSpec
}

// NewFilesystem creates a Filesystem walking the content of sp.
func (sp *SourceSpec) NewFilesystem() *Filesystem {
	return &Filesystem{SourceSpec: sp}
}

// Files returns a slice of readable files.
func (f *Filesystem) Files() ([]File, error) {
	f.filesInit.Do(func() {
		err := f.captureFiles()
		if err != nil {
			f.filesInitErr = fmt.Errorf("capture files: %w", err)
		}
	})
	return f.files, f.filesInitErr
}

func (f *Filesystem) captureFiles() error {
	skipDir := func(path string, fi os.FileInfo) bool {
		return f.IgnoreFile(path)
	}

	return sitefs.Walk(f.SourceFs, "/", skipDir, func(path string, fi os.FileInfo) error {
		if f.IgnoreFile(path) {
			return nil
		}
		f.add(path, fi)
		return nil
	})
}

// add populates a file in the Filesystem.files
func (f *Filesystem) add(name string, fi os.FileInfo) {
	f.files = append(f.files, NewFileInfo(f.ContentDir, name, fi))
}
