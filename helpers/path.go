package helpers

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"
	"github.com/sunwei/blogsite/common/paths"
	"github.com/sunwei/blogsite/common/text"
	"github.com/sunwei/blogsite/config"
)

// PathSpec holds methods that decides how paths in URLs and files should look like.
type PathSpec struct {
	// The site base URL, always with a trailing slash.
	BaseURL string

	// Any path component of BaseURL, e.g. /blog. Empty if none.
	BasePath string

	removePathAccents bool
}

// NewPathSpec creates a new PathSpec from the baseURL and
// removePathAccents settings in cfg.
func NewPathSpec(cfg config.Provider) (*PathSpec, error) {
	baseURL := cfg.GetString("baseURL")
	if baseURL == "" {
		baseURL = "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL %q: %w", baseURL, err)
	}

	ps := &PathSpec{
		BaseURL:           paths.AddTrailingSlash(baseURL),
		removePathAccents: cfg.GetBool("removePathAccents"),
	}

	basePath := strings.TrimSuffix(u.Path, "/")
	if basePath != "" && basePath != "/" {
		ps.BasePath = paths.AddLeadingSlash(basePath)
	}

	return ps, nil
}

// OpenFileForWriting opens or creates the given file. If the target directory
// does not exist, it gets created.
func OpenFileForWriting(fs afero.Fs, filename string) (afero.File, error) {
	filename = filepath.Clean(filename)
	// Create will truncate if file already exists.
	// os.Create will create any new files with mode 0666 (before umask).
	f, err := fs.Create(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err = fs.MkdirAll(filepath.Dir(filename), 0777); err != nil { //  before umask
			return nil, err
		}
		f, err = fs.Create(filename)
	}

	return f, err
}

// MakePath takes a string with any characters and replace it
// so the string could be used in a path.
// It does so by creating a Unicode-sanitized string, with the spaces replaced,
// whilst preserving the original casing of the string.
// E.g. Social Media -> Social-Media
func (p *PathSpec) MakePath(s string) string {
	s = UnicodeSanitize(s)
	if p.removePathAccents {
		s = text.RemoveAccentsString(s)
	}
	return s
}

// MakePathSanitized creates a Unicode-sanitized string, with the spaces replaced
func (p *PathSpec) MakePathSanitized(s string) string {
	return strings.ToLower(p.MakePath(s))
}

// URLize is similar to MakePath, but with Unicode handling
// Example:
//
//	uri: Vim (text editor)
//	urlize: vim-text-editor
func (p *PathSpec) URLize(uri string) string {
	return URLEscape(p.MakePathSanitized(uri))
}

// UnicodeSanitize sanitizes string to be used in URLs, allowing only
// a predefined set of special Unicode characters.
// Hyphens in the original input are maintained.
// Spaces will be replaced with a single hyphen, and sequential replacement hyphens will be reduced to one.
func UnicodeSanitize(s string) string {
	source := []rune(s)
	target := make([]rune, 0, len(source))
	var (
		prependHyphen bool
		wasHyphen     bool
	)

	for i, r := range source {
		isAllowed := r == '.' || r == '/' || r == '\\' || r == '_' || r == '#' || r == '+' || r == '~' || r == '-'
		isAllowed = isAllowed || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
		isAllowed = isAllowed || (r == '%' && i+2 < len(source) && ishex(source[i+1]) && ishex(source[i+2]))

		if isAllowed {
			// track explicit hyphen in input; no need to add a new hyphen if
			// we just saw one.
			wasHyphen = r == '-'

			if prependHyphen {
				// if currently have a hyphen, don't prepend an extra one
				if !wasHyphen {
					target = append(target, '-')
				}
				prependHyphen = false
			}
			target = append(target, r)
		} else if len(target) > 0 && !wasHyphen && unicode.IsSpace(r) {
			prependHyphen = true
		}
	}

	return string(target)
}

// From https://golang.org/src/net/url/url.go
func ishex(c rune) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

// URLEscape escapes unicode letters.
func URLEscape(uri string) string {
	// escape unicode letters
	parsedURI, err := url.Parse(uri)
	if err != nil {
		// if net/url can not parse URL it means Sanitize works incorrectly
		panic(err)
	}
	return parsedURI.String()
}

// AbsURL creates an absolute URL from the relative path given and the BaseURL.
// Absolute input is returned unchanged.
func (p *PathSpec) AbsURL(in string) string {
	if isAbsURL(in) {
		return in
	}
	return PermalinkForBaseURL(in, p.BaseURL)
}

// RelURL creates a URL relative to the BaseURL root, e.g. /blog/about/
// for baseURL https://example.org/blog/ and input about/.
func (p *PathSpec) RelURL(in string) string {
	if isAbsURL(in) {
		if !strings.HasPrefix(in, p.BaseURL) {
			return in
		}
		in = strings.TrimPrefix(in, p.BaseURL)
	}

	if p.BasePath != "" && strings.HasPrefix(in, p.BasePath+"/") {
		return in
	}

	hadSlash := strings.HasSuffix(in, "/")
	rel := path.Join("/", p.BasePath, in)
	if hadSlash && rel != "/" {
		rel += "/"
	}
	return rel
}

// PermalinkForBaseURL creates a permalink from the given link and baseURL.
func PermalinkForBaseURL(link, baseURL string) string {
	link = strings.TrimPrefix(link, "/")
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + link
}

func isAbsURL(in string) bool {
	if strings.HasPrefix(in, "//") {
		return true
	}
	u, err := url.Parse(in)
	return err == nil && u.IsAbs()
}
