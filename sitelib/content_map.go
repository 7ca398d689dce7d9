package sitelib

import (
	"fmt"
	"path"
	"strings"

	"github.com/armon/go-radix"
	"github.com/sunwei/blogsite/resources/page"
)

type contentTree struct {
	Name string
	*radix.Tree
}

// contentMap stores the documents keyed by their slash path below the
// content dir, without extension, e.g. "posts/2020-01-02-hello.md" =>
// "/posts/2020-01-02-hello".
type contentMap struct {
	pages *contentTree
}

type contentNode struct {
	p *page.Page

	// The source path. Unix slashes. No leading slash.
	path string
}

type contentTreeNodeCallback func(s string, n *contentNode) bool

func newContentMap() *contentMap {
	return &contentMap{
		pages: &contentTree{Name: "pages", Tree: radix.New()},
	}
}

func contentKey(filename string) string {
	filename = strings.TrimPrefix(filename, "/")
	return "/" + strings.TrimSuffix(filename, path.Ext(filename))
}

// AddPage adds p, read from the file at filename. Two files with the same
// key, e.g. about.md and about.html, are an error.
func (m *contentMap) AddPage(filename string, p *page.Page) error {
	key := contentKey(filename)
	if existing, found := m.pages.Get(key); found {
		return fmt.Errorf("%q and %q map to the same document", existing.(*contentNode).path, filename)
	}
	m.pages.Insert(key, &contentNode{p: p, path: filename})
	return nil
}

// Walk walks the documents in key order. Returning true stops the walk.
func (c *contentTree) Walk(fn contentTreeNodeCallback) {
	c.Tree.Walk(func(s string, v any) bool {
		return fn(s, v.(*contentNode))
	})
}

// Pages returns all documents in key order.
func (m *contentMap) Pages() page.Pages {
	var pages page.Pages
	m.pages.Walk(func(s string, n *contentNode) bool {
		pages = append(pages, n.p)
		return false
	})
	return pages
}

func (m *contentMap) Len() int {
	return m.pages.Tree.Len()
}
