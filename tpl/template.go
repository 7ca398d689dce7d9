// Package tpl defines the template handler used to render pages.
package tpl

import (
	"context"
	"io"
)

// TemplateHandler finds and executes templates.
type TemplateHandler interface {
	TemplateFinder
	Execute(t Template, wr io.Writer, data any) error
	ExecuteWithContext(ctx context.Context, t Template, wr io.Writer, data any) error

	// LookupLayout finds the template for the given layout name, e.g.
	// "post" or "post.html".
	LookupLayout(layout string) (Template, bool)
	HasTemplate(name string) bool
}

// Template is implemented by html/template.Template.
type Template interface {
	Name() string
}

// TemplateFinder finds templates.
type TemplateFinder interface {
	TemplateLookup
}

type TemplateLookup interface {
	Lookup(name string) (Template, bool)
}
