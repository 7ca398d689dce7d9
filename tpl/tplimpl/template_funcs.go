package tplimpl

import (
	"errors"
	"fmt"
	"html/template"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cast"
	"github.com/sunwei/blogsite/bufferpool"
	"github.com/sunwei/blogsite/common/maps"
	"github.com/sunwei/blogsite/deps"
	"github.com/sunwei/blogsite/helpers"
)

func createFuncMap(d *deps.Deps, h *templateHandler) template.FuncMap {
	ns := &funcsNamespace{d: d, h: h, titleFunc: helpers.GetTitleFunc(d.SiteConfig.TitleCaseStyle)}

	return template.FuncMap{
		"partial":     ns.Partial,
		"markdownify": ns.Markdownify,
		"emojify":     ns.Emojify,
		"plainify":    ns.Plainify,
		"safeHTML":    ns.SafeHTML,
		"absURL":      ns.AbsURL,
		"relURL":      ns.RelURL,
		"urlize":      ns.URLize,
		"title":       ns.Title,
		"lower":       ns.Lower,
		"upper":       ns.Upper,
		"truncate":    ns.Truncate,
		"dateFormat":  ns.DateFormat,
		"now":         ns.Now,
		"param":       ns.Param,
		"first":       ns.First,
	}
}

type funcsNamespace struct {
	d *deps.Deps
	h *templateHandler

	titleFunc func(s string) string
}

// Partial executes the partial template name, e.g. "head.html", with
// the first of data as context.
func (ns *funcsNamespace) Partial(name string, data ...any) (template.HTML, error) {
	ts, found := ns.h.lookupPartial(name)
	if !found {
		return "", fmt.Errorf("partial %q not found", name)
	}

	var ctx any
	if len(data) > 0 {
		ctx = data[0]
	}

	b := bufferpool.GetBuffer()
	defer bufferpool.PutBuffer(b)

	if err := ts.Template.Execute(b, ctx); err != nil {
		return "", ns.h.addFileContext(ts, err)
	}

	return template.HTML(b.String()), nil
}

// Markdownify renders s as Markdown, without a wrapping paragraph for
// single lines.
func (ns *funcsNamespace) Markdownify(s any) (template.HTML, error) {
	ss, err := cast.ToStringE(s)
	if err != nil {
		return "", err
	}

	b, err := ns.d.ContentSpec.RenderMarkdown([]byte(ss))
	if err != nil {
		return "", err
	}

	return helpers.BytesToHTML(ns.d.ContentSpec.TrimShortHTML(b)), nil
}

// Emojify replaces emoji shortcodes like :smile: in s.
func (ns *funcsNamespace) Emojify(s any) (template.HTML, error) {
	ss, err := cast.ToStringE(s)
	if err != nil {
		return "", err
	}

	return template.HTML(helpers.Emojify([]byte(ss))), nil
}

// Plainify returns s with all HTML tags removed.
func (ns *funcsNamespace) Plainify(s any) (string, error) {
	ss, err := cast.ToStringE(s)
	if err != nil {
		return "", err
	}

	return helpers.StripHTML(ss), nil
}

// SafeHTML marks s as trusted HTML.
func (ns *funcsNamespace) SafeHTML(s any) (template.HTML, error) {
	ss, err := cast.ToStringE(s)
	return template.HTML(ss), err
}

// AbsURL resolves s against the base URL.
func (ns *funcsNamespace) AbsURL(s any) (string, error) {
	ss, err := cast.ToStringE(s)
	if err != nil {
		return "", err
	}

	return ns.d.PathSpec.AbsURL(ss), nil
}

// RelURL returns s as a path below the base URL path.
func (ns *funcsNamespace) RelURL(s any) (string, error) {
	ss, err := cast.ToStringE(s)
	if err != nil {
		return "", err
	}

	return ns.d.PathSpec.RelURL(ss), nil
}

// URLize sanitizes s for use in a URL path.
func (ns *funcsNamespace) URLize(s any) (string, error) {
	ss, err := cast.ToStringE(s)
	if err != nil {
		return "", err
	}

	return ns.d.PathSpec.URLize(ss), nil
}

// Title title cases s using the configured titleCaseStyle.
func (ns *funcsNamespace) Title(s any) (string, error) {
	ss, err := cast.ToStringE(s)
	if err != nil {
		return "", err
	}

	return ns.titleFunc(ss), nil
}

func (ns *funcsNamespace) Lower(s any) (string, error) {
	ss, err := cast.ToStringE(s)
	return strings.ToLower(ss), err
}

func (ns *funcsNamespace) Upper(s any) (string, error) {
	ss, err := cast.ToStringE(s)
	return strings.ToUpper(ss), err
}

// Truncate cuts text to length runes, on a word boundary when possible, and
// appends an ellipsis. Usage: truncate 50 .Plain or truncate 50 "…" .Plain.
func (ns *funcsNamespace) Truncate(length any, args ...any) (string, error) {
	l, err := cast.ToIntE(length)
	if err != nil {
		return "", err
	}

	var (
		ellipsis = " …"
		text     string
	)

	switch len(args) {
	case 1:
		text, err = cast.ToStringE(args[0])
	case 2:
		ellipsis, err = cast.ToStringE(args[0])
		if err == nil {
			text, err = cast.ToStringE(args[1])
		}
	default:
		return "", errors.New("truncate requires a length and a string")
	}
	if err != nil {
		return "", err
	}

	if utf8.RuneCountInString(text) <= l {
		return text, nil
	}

	var (
		lastWordIndex int
		lastNonSpace  int
		count         int
	)
	for i, r := range text {
		if count >= l {
			break
		}
		if r == ' ' || r == '\n' || r == '\t' {
			lastWordIndex = lastNonSpace
		} else {
			lastNonSpace = i + utf8.RuneLen(r)
		}
		count++
	}

	cut := lastWordIndex
	if cut == 0 {
		cut = lastNonSpace
	}

	return strings.TrimSpace(text[:cut]) + ellipsis, nil
}

// DateFormat formats t with the Go layout.
func (ns *funcsNamespace) DateFormat(layout string, t any) (string, error) {
	tt, err := cast.ToTimeE(t)
	if err != nil {
		return "", err
	}

	return tt.Format(layout), nil
}

// Now returns the build clock time.
func (ns *funcsNamespace) Now() time.Time {
	return ns.d.Clock.Now()
}

// Param returns the site param with the given dotted key, nil if not set.
func (ns *funcsNamespace) Param(key any) (any, error) {
	keyStr, err := cast.ToStringE(key)
	if err != nil {
		return nil, err
	}

	return maps.GetNestedParam(keyStr, ".", ns.d.SiteConfig.Params)
}

// First returns the first limit elements of seq.
func (ns *funcsNamespace) First(limit any, seq any) (any, error) {
	if limit == nil || seq == nil {
		return nil, errors.New("both limit and seq must be provided")
	}

	limitv, err := cast.ToIntE(limit)
	if err != nil {
		return nil, err
	}

	if limitv < 0 {
		return nil, errors.New("can't return negative count of items")
	}

	seqv := reflect.ValueOf(seq)
	for seqv.Kind() == reflect.Ptr || seqv.Kind() == reflect.Interface {
		if seqv.IsNil() {
			return nil, errors.New("can't iterate over a nil value")
		}
		seqv = seqv.Elem()
	}

	switch seqv.Kind() {
	case reflect.Slice, reflect.String:
	default:
		return nil, fmt.Errorf("can't iterate over %v", seq)
	}

	if limitv > seqv.Len() {
		limitv = seqv.Len()
	}

	return seqv.Slice(0, limitv).Interface(), nil
}
