// Package highlight renders code blocks with chroma.
package highlight

// DefaultConfig holds the default syntax highlighter configuration.
var DefaultConfig = Config{
	Style:      "monokai",
	NoClasses:  true,
	CodeFences: true,
	TabWidth:   4,
}

// Config configures the syntax highlighter.
type Config struct {
	// The chroma style name.
	Style string

	// Use inline CSS styles instead of classes.
	NoClasses bool

	// When set, line numbers will be printed.
	LineNos bool

	// Highlight fenced code blocks.
	CodeFences bool

	TabWidth int
}
