// Package output describes the formats a build writes.
package output

import (
	"strings"
)

// MediaType is a MIME type with the file suffixes it is published with.
type MediaType struct {
	MainType string
	SubType  string

	suffixes []string
}

// Type returns the MIME type, e.g. text/html.
func (m MediaType) Type() string {
	return m.MainType + "/" + m.SubType
}

// Suffixes returns the file suffixes, without the leading dot.
func (m MediaType) Suffixes() []string {
	return m.suffixes
}

var (
	HTMLType = MediaType{MainType: "text", SubType: "html", suffixes: []string{"html", "htm"}}
	CSSType  = MediaType{MainType: "text", SubType: "css", suffixes: []string{"css"}}
	JSType   = MediaType{MainType: "text", SubType: "javascript", suffixes: []string{"js"}}
	JSONType = MediaType{MainType: "application", SubType: "json", suffixes: []string{"json"}}
	SVGType  = MediaType{MainType: "image", SubType: "svg+xml", suffixes: []string{"svg"}}
	XMLType  = MediaType{MainType: "application", SubType: "xml", suffixes: []string{"xml"}}
)

// Format represents an output representation, usually to a file on disk.
type Format struct {
	// The Name is used as an identifier.
	Name string

	MediaType MediaType

	// The base output file name used for pretty URLs, defaults to "index".
	BaseName string

	// IsHTML returns whether this format is in the HTML family.
	IsHTML bool
}

// Formats is a slice of Format.
type Formats []Format

// An ordered list of built-in output formats.
var (
	HTMLFormat = Format{
		Name:      "HTML",
		MediaType: HTMLType,
		BaseName:  "index",
		IsHTML:    true,
	}

	CSSFormat = Format{
		Name:      "CSS",
		MediaType: CSSType,
		BaseName:  "styles",
	}

	JSFormat = Format{
		Name:      "JS",
		MediaType: JSType,
		BaseName:  "script",
	}

	JSONFormat = Format{
		Name:      "JSON",
		MediaType: JSONType,
		BaseName:  "index",
	}

	SVGFormat = Format{
		Name:      "SVG",
		MediaType: SVGType,
		BaseName:  "image",
	}

	XMLFormat = Format{
		Name:      "XML",
		MediaType: XMLType,
		BaseName:  "index",
	}
)

// DefaultFormats contains the default output formats.
var DefaultFormats = Formats{
	HTMLFormat,
	CSSFormat,
	JSFormat,
	JSONFormat,
	SVGFormat,
	XMLFormat,
}

// GetBySuffix gets a output format given as suffix, e.g. "html".
// It will return false if no format could be found, or if the suffix given
// is ambiguous.
// The lookup is case insensitive.
func (formats Formats) GetBySuffix(suffix string) (f Format, found bool) {
	for _, ff := range formats {
		for _, suffix2 := range ff.MediaType.Suffixes() {
			if strings.EqualFold(suffix, suffix2) {
				if found {
					// ambiguous
					found = false
					return
				}
				f = ff
				found = true
			}
		}
	}
	return
}

// FromFilename gets a Format given a filename, e.g. css/main.css.
func (formats Formats) FromFilename(filename string) (f Format, found bool) {
	i := strings.LastIndex(filename, ".")
	if i == -1 {
		return
	}
	return formats.GetBySuffix(filename[i+1:])
}
