package tplimpl

import (
	"fmt"
)

type templateInfo struct {
	name     string
	template string

	// The filename relative to the layouts dir.
	filename string
}

func (t templateInfo) errWithFileContext(what string, err error) error {
	return fmt.Errorf("%s %q: %w", what, t.filename, err)
}

func (t templateInfo) IsZero() bool {
	return t.name == ""
}
