package page

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sunwei/blogsite/common/paths"
)

// PermalinkExpander holds permalink mappings per kind.
type PermalinkExpander struct {
	// knownPermalinkAttributes maps :tags in a permalink specification to a
	// function which, given a page and the tag, returns the resulting string
	// to be used to replace that tag.
	knownPermalinkAttributes map[string]pageToPermaAttribute

	expanders map[string]func(*Page) (string, error)

	urlize func(uri string) string
}

// pageToPermaAttribute is the type of a function which, given a page and a tag
// can return a string to go in that position in the page (or an error)
type pageToPermaAttribute func(*Page, string) (string, error)

// NewPermalinkExpander creates a new PermalinkExpander configured by the given
// kind to pattern mapping, e.g. posts: /:year/:month/:slug/.
func NewPermalinkExpander(urlize func(uri string) string, patterns map[string]string) (PermalinkExpander, error) {
	p := PermalinkExpander{urlize: urlize}

	p.knownPermalinkAttributes = map[string]pageToPermaAttribute{
		"year":        p.pageToPermalinkDate,
		"month":       p.pageToPermalinkDate,
		"monthname":   p.pageToPermalinkDate,
		"day":         p.pageToPermalinkDate,
		"weekday":     p.pageToPermalinkDate,
		"weekdayname": p.pageToPermalinkDate,
		"yearday":     p.pageToPermalinkDate,
		"title":       p.pageToPermalinkTitle,
		"slug":        p.pageToPermalinkSlug,
		"topic":       p.pageToPermalinkTopic,
		"filename":    p.pageToPermalinkFilename,
		"section":     p.pageToPermalinkSection,
	}

	p.expanders = make(map[string]func(*Page) (string, error))

	for kind, pattern := range patterns {
		expander, err := p.getOrParsePattern(pattern)
		if err != nil {
			return p, fmt.Errorf("permalinks.%s: %w", kind, err)
		}
		p.expanders[kind] = expander
	}

	return p, nil
}

// Expand expands the path in p according to the rules defined for the given key.
// If no rules are found for the given key, an empty string is returned.
func (l PermalinkExpander) Expand(key string, p *Page) (string, error) {
	expand, found := l.expanders[key]

	if !found {
		return "", nil
	}

	return expand(p)
}

var attributeRegexp = regexp.MustCompile(`:\w+`)

func (l PermalinkExpander) getOrParsePattern(pattern string) (func(*Page) (string, error), error) {
	if !l.validate(pattern) {
		return nil, &permalinkExpandError{pattern: pattern, err: errPermalinkIllFormed}
	}

	matches := attributeRegexp.FindAllStringSubmatch(pattern, -1)

	callbacks := make([]pageToPermaAttribute, len(matches))
	replacements := make([]string, len(matches))
	for i, m := range matches {
		replacement := m[0]
		attr := replacement[1:]
		replacements[i] = replacement
		callback, ok := l.knownPermalinkAttributes[attr]

		if !ok {
			return nil, &permalinkExpandError{pattern: pattern, err: errPermalinkAttributeUnknown}
		}

		callbacks[i] = callback
	}

	return func(p *Page) (string, error) {
		if matches == nil {
			return pattern, nil
		}

		newField := pattern

		for i, replacement := range replacements {
			attr := replacement[1:]
			callback := callbacks[i]
			newAttr, err := callback(p, attr)
			if err != nil {
				return "", &permalinkExpandError{pattern: pattern, err: err}
			}

			newField = strings.Replace(newField, replacement, newAttr, 1)
		}

		return paths.CleanURLPath(newField), nil
	}, nil
}

// validate determines if a PathPattern is well-formed
func (l PermalinkExpander) validate(pp string) bool {
	if !strings.HasPrefix(pp, "/") {
		return false
	}
	fragments := strings.Split(pp[1:], "/")
	bail := false
	for i := range fragments {
		if bail {
			return false
		}
		if len(fragments[i]) == 0 {
			bail = true
			continue
		}

		matches := attributeRegexp.FindAllStringSubmatch(fragments[i], -1)
		if matches == nil {
			continue
		}

		for _, match := range matches {
			k := match[0][1:]
			if _, ok := l.knownPermalinkAttributes[k]; !ok {
				return false
			}
		}
	}
	return true
}

type permalinkExpandError struct {
	pattern string
	err     error
}

func (pee *permalinkExpandError) Error() string {
	return fmt.Sprintf("error expanding %q: %s", pee.pattern, pee.err)
}

func (pee *permalinkExpandError) Unwrap() error {
	return pee.err
}

var (
	errPermalinkIllFormed        = fmt.Errorf("permalink ill-formed")
	errPermalinkAttributeUnknown = fmt.Errorf("permalink attribute not recognised")
)

func (l PermalinkExpander) pageToPermalinkDate(p *Page, dateField string) (string, error) {
	// a Page contains a Node which provides a field Date, time.Time
	switch dateField {
	case "year":
		return strconv.Itoa(p.Date.Year()), nil
	case "month":
		return fmt.Sprintf("%02d", int(p.Date.Month())), nil
	case "monthname":
		return p.Date.Month().String(), nil
	case "day":
		return fmt.Sprintf("%02d", p.Date.Day()), nil
	case "weekday":
		return strconv.Itoa(int(p.Date.Weekday())), nil
	case "weekdayname":
		return p.Date.Weekday().String(), nil
	case "yearday":
		return strconv.Itoa(p.Date.YearDay()), nil
	}

	panic(fmt.Sprintf("unrecognised date permalink field %q", dateField))
}

// pageToPermalinkTitle returns the URL-safe form of the title
func (l PermalinkExpander) pageToPermalinkTitle(p *Page, _ string) (string, error) {
	return l.urlize(p.Title), nil
}

// pageToPermalinkSlug returns the URL-safe form of the slug
func (l PermalinkExpander) pageToPermalinkSlug(p *Page, _ string) (string, error) {
	return l.urlize(p.Slug), nil
}

func (l PermalinkExpander) pageToPermalinkTopic(p *Page, _ string) (string, error) {
	return l.urlize(p.Topic), nil
}

// pageToPermalinkFilename returns the URL-safe form of the filename
func (l PermalinkExpander) pageToPermalinkFilename(p *Page, _ string) (string, error) {
	if p.File == nil {
		return "", nil
	}
	return l.urlize(p.File.BaseFileName()), nil
}

func (l PermalinkExpander) pageToPermalinkSection(p *Page, _ string) (string, error) {
	if p.File == nil {
		return "", nil
	}
	return l.urlize(p.File.Section()), nil
}
