// Package pagemeta decodes and validates document front matter.
package pagemeta

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/sunwei/blogsite/common/maps"
	"github.com/sunwei/blogsite/common/paths"
)

// ErrMissingField is wrapped by a FieldError for a required field that is
// absent or empty.
var ErrMissingField = errors.New("required field missing")

// FieldError reports a front matter field that could not be used.
type FieldError struct {
	Filename string
	Field    string
	Err      error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: front matter %q: %s", e.Filename, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// FrontMatter is the decoded front matter of a document.
type FrontMatter struct {
	// Template identifier, required.
	Layout string

	// Required.
	Title string

	Topic string

	// The publish date. Zero for documents without a date.
	Date time.Time

	Slug    string
	Draft   bool
	Summary string

	// All front matter values with lower cased keys.
	Params maps.Params
}

// IsZero reports whether the document has no publish date.
func (f FrontMatter) IsZero() bool {
	return f.Date.IsZero()
}

var filenameDateRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

// DateFromFilename extracts the publish date and slug from a base file name
// in the form YYYY-MM-DD-slug. It returns false if name has no date prefix.
func DateFromFilename(name string) (time.Time, string, bool) {
	m := filenameDateRe.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, "", false
	}
	d, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return time.Time{}, "", false
	}
	return d, m[2], true
}

// Decode decodes and validates the front matter fm of the document in
// filename. The publish date falls back to the one in the file name.
func Decode(filename string, fm map[string]any) (FrontMatter, error) {
	params, ok := maps.ToParamsAndPrepare(fm)
	if !ok || params == nil {
		params = maps.Params{}
	}

	var err error
	f := FrontMatter{Params: params}

	requiredString := func(key string) (string, error) {
		s, err := optionalString(filename, params, key)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(s) == "" {
			return "", &FieldError{Filename: filename, Field: key, Err: ErrMissingField}
		}
		return s, nil
	}

	if f.Layout, err = requiredString("layout"); err != nil {
		return f, err
	}
	if f.Title, err = requiredString("title"); err != nil {
		return f, err
	}
	if f.Topic, err = optionalString(filename, params, "topic"); err != nil {
		return f, err
	}
	if f.Slug, err = optionalString(filename, params, "slug"); err != nil {
		return f, err
	}
	if f.Summary, err = optionalString(filename, params, "summary"); err != nil {
		return f, err
	}

	if v, found := params["draft"]; found {
		if f.Draft, err = cast.ToBoolE(v); err != nil {
			return f, &FieldError{Filename: filename, Field: "draft", Err: err}
		}
	}

	fileDate, fileSlug, hasFileDate := DateFromFilename(paths.Filename(filename))

	if v, found := params["date"]; found && v != nil {
		if f.Date, err = cast.ToTimeE(v); err != nil {
			return f, &FieldError{Filename: filename, Field: "date", Err: err}
		}
	} else if hasFileDate {
		f.Date = fileDate
	}

	if f.Slug == "" {
		if hasFileDate {
			f.Slug = fileSlug
		} else {
			f.Slug = paths.Filename(filename)
		}
	}

	return f, nil
}

func optionalString(filename string, params maps.Params, key string) (string, error) {
	v, found := params[key]
	if !found || v == nil {
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", &FieldError{Filename: filename, Field: key, Err: err}
	}
	return s, nil
}
