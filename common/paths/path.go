package paths

import (
	"path"
	"path/filepath"
	"strings"
)

// AbsPathify creates an absolute path if given a working dir and a relative path.
// If already absolute, the path is just cleaned.
func AbsPathify(workingDir, inPath string) string {
	if filepath.IsAbs(inPath) {
		return filepath.Clean(inPath)
	}
	return filepath.Join(workingDir, inPath)
}

// Filename returns the base name of in without its extension.
func Filename(in string) string {
	name := filepath.Base(in)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Ext returns the lower cased extension of in without the leading dot.
func Ext(in string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(in), "."))
}

// ToSlashTrimLeading is filepath.ToSlash with any leading slash removed.
func ToSlashTrimLeading(s string) string {
	return strings.TrimPrefix(filepath.ToSlash(s), "/")
}

// AddTrailingSlash adds a trailing Unix styled slash (/) if not already there.
func AddTrailingSlash(p string) string {
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// AddLeadingSlash adds a leading Unix styled slash (/) if not already there.
func AddLeadingSlash(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// CleanURLPath cleans a slash separated URL path, keeping a trailing slash.
func CleanURLPath(p string) string {
	trailing := strings.HasSuffix(p, "/")
	p = path.Clean(AddLeadingSlash(p))
	if trailing && p != "/" {
		p += "/"
	}
	return p
}
