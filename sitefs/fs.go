// Package sitefs provides the file systems used by a site build.
package sitefs

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/sunwei/blogsite/common/paths"
	"github.com/sunwei/blogsite/config"
)

// Fs holds the core filesystems used by a build.
type Fs struct {
	// Source is the source file system.
	// Note that this will always be a "plain" Afero filesystem:
	// * afero.OsFs when running in production
	// * afero.MemMapFs for many of the tests.
	Source afero.Fs

	// PublishDir is where rendered content is written.
	// It's rooted at publishDir (default /public).
	PublishDir afero.Fs

	// WorkingDirReadOnly is a read-only file system
	// restricted to the project working dir.
	WorkingDirReadOnly afero.Fs

	workingDir string
}

// NewFrom creates a new Fs based on the provided Afero Fs
// as source and destination file systems.
// Useful for testing.
func NewFrom(fs afero.Fs, cfg config.Provider) (*Fs, error) {
	return newFs(fs, fs, cfg)
}

func newFs(source, destination afero.Fs, cfg config.Provider) (*Fs, error) {
	workingDir := cfg.GetString("workingDir")
	publishDir := cfg.GetString("publishDir")
	if publishDir == "" {
		return nil, fmt.Errorf("publishDir not set")
	}

	absPublishDir := paths.AbsPathify(workingDir, publishDir)

	// Make sure we always have the /public folder ready to use.
	if err := destination.MkdirAll(absPublishDir, 0777); err != nil && !os.IsExist(err) {
		return nil, fmt.Errorf("create publish dir: %w", err)
	}

	return &Fs{
		Source:             source,
		PublishDir:         afero.NewBasePathFs(destination, absPublishDir),
		WorkingDirReadOnly: getWorkingDirFsReadOnly(source, workingDir),
		workingDir:         workingDir,
	}, nil
}

func getWorkingDirFsReadOnly(base afero.Fs, workingDir string) afero.Fs {
	if workingDir == "" {
		return afero.NewReadOnlyFs(base)
	}
	return afero.NewBasePathFs(afero.NewReadOnlyFs(base), workingDir)
}

// AbsPath resolves dir against the working dir.
func (fs *Fs) AbsPath(dir string) string {
	return paths.AbsPathify(fs.workingDir, dir)
}

// SourceFilesystems holds the read-only views of the project
// directories, each rooted at its directory.
type SourceFilesystems struct {
	Content afero.Fs
	Layouts afero.Fs
	Static  afero.Fs
	Data    afero.Fs
}

// NewSourceFilesystems roots each project directory named in sc below
// the working dir file system.
func (fs *Fs) NewSourceFilesystems(sc config.SiteConfig) SourceFilesystems {
	sub := func(dir string) afero.Fs {
		if dir == "" {
			return NoOpFs
		}
		return afero.NewBasePathFs(fs.WorkingDirReadOnly, dir)
	}
	return SourceFilesystems{
		Content: sub(sc.ContentDir),
		Layouts: sub(sc.LayoutDir),
		Static:  sub(sc.StaticDir),
		Data:    sub(sc.DataDir),
	}
}

// Exists reports whether the root of fs exists.
func Exists(fs afero.Fs) bool {
	ok, _ := afero.DirExists(fs, "/")
	return ok
}
