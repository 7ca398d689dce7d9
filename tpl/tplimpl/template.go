package tplimpl

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/bep/overlayfs"
	"github.com/spf13/afero"
	"github.com/sunwei/blogsite/deps"
	"github.com/sunwei/blogsite/sitefs"
	"github.com/sunwei/blogsite/tpl"
)

const (
	partialsPathPrefix = "partials/"
	defaultPathPrefix  = "_default/"
	baseFileBase       = "baseof"
)

// DefaultTemplateProvider is a globally available TemplateProvider.
var DefaultTemplateProvider *TemplateProvider

// TemplateProvider manages templates.
type TemplateProvider struct{}

// Update loads the site and built-in layouts and sets the resulting
// template handler on d.
func (*TemplateProvider) Update(d *deps.Deps) error {
	_, err := newTemplateExec(d)
	return err
}

type templateState struct {
	*template.Template

	info     templateInfo
	baseInfo templateInfo // Set when a base template is used.
}

type templateStateMap struct {
	mu        sync.RWMutex
	templates map[string]*templateState
}

type templateNamespace struct {
	funcs template.FuncMap

	*templateStateMap
}

type templateHandler struct {
	main *templateNamespace

	// Site layouts over the embedded defaults.
	layoutsFs afero.Fs
	siteFs    afero.Fs

	*deps.Deps
}

type templateExec struct {
	d *deps.Deps

	*templateHandler
}

func newTemplateExec(d *deps.Deps) (*templateExec, error) {
	h := &templateHandler{
		Deps: d,
	}
	h.main = newTemplateNamespace(createFuncMap(d, h))

	embedded, err := embeddedLayouts()
	if err != nil {
		return nil, fmt.Errorf("load embedded layouts: %w", err)
	}

	layouts := d.SourceFs.Layouts
	if layouts == nil || !sitefs.Exists(layouts) {
		layouts = sitefs.NoOpFs
	}

	// The first filesystem wins.
	h.siteFs = layouts
	h.layoutsFs = overlayfs.New(overlayfs.Options{Fss: []afero.Fs{layouts, embedded}})

	if err := h.loadTemplates(); err != nil {
		return nil, err
	}

	e := &templateExec{
		d:               d,
		templateHandler: h,
	}

	d.SetTmpl(e)

	return e, nil
}

func newTemplateNamespace(funcs template.FuncMap) *templateNamespace {
	return &templateNamespace{
		funcs: funcs,
		templateStateMap: &templateStateMap{
			templates: make(map[string]*templateState),
		},
	}
}

//go:embed embedded/layouts
var embededLayoutsFs embed.FS

// embeddedLayouts copies the built-in layouts into a memory filesystem
// laid out like a site's layouts dir.
func embeddedLayouts() (afero.Fs, error) {
	mfs := afero.NewMemMapFs()
	err := fs.WalkDir(embededLayoutsFs, "embedded/layouts", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		b, err := embededLayoutsFs.ReadFile(path)
		if err != nil {
			return err
		}

		b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
		name := strings.TrimPrefix(path, "embedded/layouts")

		return afero.WriteFile(mfs, filepath.FromSlash(name), b, 0o644)
	})

	return mfs, err
}

func (t *templateHandler) Lookup(name string) (tpl.Template, bool) {
	templ, found := t.main.Lookup(name)
	if found {
		return templ, true
	}

	return nil, false
}

func (t *templateNamespace) Lookup(name string) (tpl.Template, bool) {
	templ, found := t.lookup(name)
	if !found {
		return nil, false
	}

	return templ, true
}

func (t *templateNamespace) lookup(name string) (*templateState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	templ, found := t.templates[name]
	return templ, found
}

// AddTemplate parses and adds a standalone template to the collection.
func (t *templateHandler) AddTemplate(name, tpl string) error {
	_, err := t.main.parse(templateInfo{name: name, template: tpl, filename: name}, templateInfo{})
	return err
}

func (t *templateNamespace) parse(info, base templateInfo) (*templateState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	templ := template.New(info.name).Funcs(t.funcs)

	if !base.IsZero() {
		if _, err := templ.Parse(base.template); err != nil {
			return nil, base.errWithFileContext("parse failed", err)
		}
	}

	// An overlay holds only defines, and its empty body does not replace
	// the body of the base.
	if _, err := templ.Parse(info.template); err != nil {
		return nil, info.errWithFileContext("parse failed", err)
	}

	ts := &templateState{
		Template: templ,
		info:     info,
		baseInfo: base,
	}

	t.templates[info.name] = ts

	return ts, nil
}

func (t *templateHandler) loadTemplates() error {
	var (
		infos    []templateInfo
		base     templateInfo
		baseRank = -1
	)

	walker := func(path string, fi os.FileInfo) error {
		if isDotFile(path) || isBackupFile(path) {
			return nil
		}

		name := strings.TrimPrefix(filepath.ToSlash(path), "/")

		info, err := t.readTemplate(name, path)
		if err != nil {
			return err
		}

		if isBaseTemplate(name) {
			if rank := t.baseRank(path, name); rank > baseRank {
				base, baseRank = info, rank
			}
			return nil
		}

		infos = append(infos, info)
		return nil
	}

	if err := sitefs.Walk(t.layoutsFs, "/", nil, walker); err != nil {
		return fmt.Errorf("walk layouts: %w", err)
	}

	for _, info := range infos {
		var b templateInfo
		if !strings.HasPrefix(info.name, partialsPathPrefix) && needsBase(info.template) {
			b = base
		}
		if _, err := t.main.parse(info, b); err != nil {
			return err
		}
	}

	return nil
}

func (t *templateHandler) readTemplate(name, filename string) (templateInfo, error) {
	b, err := afero.ReadFile(t.layoutsFs, filename)
	if err != nil {
		return templateInfo{}, fmt.Errorf("read layout %q: %w", name, err)
	}

	return templateInfo{
		name:     name,
		template: removeLeadingBOM(string(b)),
		filename: name,
	}, nil
}

// baseRank orders the base templates: the site's over the embedded one,
// then baseof.html over _default/baseof.html.
func (t *templateHandler) baseRank(path, name string) int {
	var rank int
	if name == baseFileBase+".html" {
		rank++
	}
	if fromSite, _ := afero.Exists(t.siteFs, path); fromSite {
		rank += 2
	}
	return rank
}

func isBaseTemplate(name string) bool {
	return name == baseFileBase+".html" || name == defaultPathPrefix+baseFileBase+".html"
}

var defineRe = regexp.MustCompile(`^{{-?\s*define\s`)

// needsBase reports whether templ only fills in blocks of baseof.html.
func needsBase(templ string) bool {
	return defineRe.MatchString(strings.TrimSpace(templ))
}

func isDotFile(path string) bool {
	return filepath.Base(path)[0] == '.'
}

func isBackupFile(path string) bool {
	return path[len(path)-1] == '~'
}

func removeLeadingBOM(s string) string {
	const bom = '\ufeff'

	for i, r := range s {
		if i == 0 && r != bom {
			return s
		}
		if i > 0 {
			return s[i:]
		}
	}

	return s
}

func (t *templateExec) Execute(templ tpl.Template, wr io.Writer, data any) error {
	return t.ExecuteWithContext(context.Background(), templ, wr, data)
}

func (t *templateExec) ExecuteWithContext(ctx context.Context, templ tpl.Template, wr io.Writer, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ts, ok := templ.(*templateState)
	if !ok {
		return fmt.Errorf("unsupported template type %T", templ)
	}

	execErr := ts.Template.Execute(wr, data)
	if execErr != nil {
		execErr = t.addFileContext(ts, execErr)
	}
	return execErr
}

func (t *templateHandler) addFileContext(ts *templateState, inerr error) error {
	inerr = fmt.Errorf("execute of template failed: %w", inerr)

	if !ts.baseInfo.IsZero() {
		return fmt.Errorf("%q with base %q: %w", ts.info.filename, ts.baseInfo.filename, inerr)
	}

	return ts.info.errWithFileContext("render", inerr)
}

// LookupLayout finds the template for a layout name as used in front
// matter, with or without the .html suffix. Layouts in _default are used
// when there is none at the top level.
func (t *templateHandler) LookupLayout(layout string) (tpl.Template, bool) {
	name := layout
	if filepath.Ext(name) == "" {
		name += ".html"
	}

	for _, candidate := range []string{name, defaultPathPrefix + name} {
		if templ, found := t.main.Lookup(candidate); found {
			return templ, true
		}
	}

	return nil, false
}

func (t *templateHandler) HasTemplate(name string) bool {
	_, found := t.Lookup(name)
	return found
}

func (t *templateHandler) lookupPartial(name string) (*templateState, bool) {
	if filepath.Ext(name) == "" {
		name += ".html"
	}
	return t.main.lookup(partialsPathPrefix + name)
}
