package source

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sunwei/blogsite/common/paths"
	"github.com/sunwei/blogsite/helpers"
)

// File represents a source file.
type File interface {
	// Path gets the relative path including file name and extension.
	// The directory is relative to the content root.
	Path() string

	// Section is first directory below the content root.
	// For files in root, the Section will be empty.
	Section() string

	IsZero() bool

	// Filename gets the full path and filename to the file.
	Filename() string

	// Dir gets the name of the directory that contains this file.
	// The directory is relative to the content root.
	Dir() string

	// Ext gets the file extension, i.e "myblogpost.md" will return "md".
	Ext() string

	// LogicalName is filename and extension of the file.
	LogicalName() string

	// BaseFileName is a filename without extension.
	BaseFileName() string

	// UniqueID is the MD5 hash of the file's path and is for most practical applications,
	// content files being one of them, considered to be unique.
	UniqueID() string

	ModTime() time.Time
}

// FileInfo describes a source file.
type FileInfo struct {

	// Absolute filename to the file on disk.
	filename string

	fi os.FileInfo

	// Derived from filename
	ext string // Extension without any "."

	name string

	relDir   string
	relPath  string
	baseName string
	section  string

	uniqueID string

	lazyInit sync.Once
}

// NewFileInfo creates a FileInfo for the file at the slash separated relPath
// below the content root contentDir.
func NewFileInfo(contentDir, relPath string, fi os.FileInfo) *FileInfo {
	relPath = paths.ToSlashTrimLeading(relPath)

	relDir := filepath.ToSlash(filepath.Dir(relPath))
	if relDir == "." {
		relDir = ""
	}

	name := filepath.Base(relPath)

	return &FileInfo{
		filename: filepath.Join(contentDir, filepath.FromSlash(relPath)),
		fi:       fi,
		ext:      paths.Ext(name),
		name:     name,
		relDir:   relDir,
		relPath:  relPath,
		baseName: paths.Filename(name),
	}
}

// Path gets the relative path including file name and extension.  The directory
// is relative to the content root.
func (fi *FileInfo) Path() string { return fi.relPath }

// Section returns a file's section.
func (fi *FileInfo) Section() string {
	fi.init()
	return fi.section
}

// We create a lot of these FileInfo objects, but there are parts of it used only
// in some cases that is slightly expensive to construct.
func (fi *FileInfo) init() {
	fi.lazyInit.Do(func() {
		if fi.relDir != "" {
			fi.section = strings.Split(fi.relDir, "/")[0]
		}
		fi.uniqueID = helpers.MD5String(fi.relPath)
	})
}

func (fi *FileInfo) IsZero() bool {
	return fi == nil
}

// Dir gets the name of the directory that contains this file.  The directory is
// relative to the content root.
func (fi *FileInfo) Dir() string { return fi.relDir }

// Ext returns a file's extension without the leading period (ie. "md").
func (fi *FileInfo) Ext() string { return fi.ext }

// Filename returns a file's absolute path and filename on disk.
func (fi *FileInfo) Filename() string { return fi.filename }

// LogicalName returns a file's name and extension (ie. "page.md").
func (fi *FileInfo) LogicalName() string { return fi.name }

// BaseFileName returns a file's name without extension (ie. "page").
func (fi *FileInfo) BaseFileName() string { return fi.baseName }

// UniqueID returns a file's unique, MD5 hash identifier.
func (fi *FileInfo) UniqueID() string {
	fi.init()
	return fi.uniqueID
}

// ModTime returns the file's modification time, zero if unknown.
func (fi *FileInfo) ModTime() time.Time {
	if fi.fi == nil {
		return time.Time{}
	}
	return fi.fi.ModTime()
}
