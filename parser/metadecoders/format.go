package metadecoders

import (
	"path/filepath"
	"strings"
)

// Format is a structured data format, e.g. front matter or a config file.
type Format string

const (
	// These are the supported metadata formats.
	JSON Format = "json"
	TOML Format = "toml"
	YAML Format = "yaml"
	XML  Format = "xml"
)

// FormatFromString turns formatStr, typically a file extension without any ".",
// into a Format. It returns an empty string for unknown formats.
func FormatFromString(formatStr string) Format {
	formatStr = strings.ToLower(formatStr)
	if strings.Contains(formatStr, ".") {
		// Assume a filename
		formatStr = strings.TrimPrefix(filepath.Ext(formatStr), ".")
	}
	switch formatStr {
	case "yaml", "yml":
		return YAML
	case "json":
		return JSON
	case "toml":
		return TOML
	case "xml":
		return XML
	}

	return ""
}

// FormatFromFrontMatterDelimiter returns the front matter format opened by delim.
func FormatFromFrontMatterDelimiter(delim string) Format {
	switch delim {
	case "---":
		return YAML
	case "+++":
		return TOML
	case ";;;":
		return JSON
	}
	return ""
}
