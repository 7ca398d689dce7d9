package goldmark

import (
	"github.com/sunwei/blogsite/bufferpool"
	"github.com/sunwei/blogsite/markup/highlight"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

func newCodeBlocks(h highlight.Highlighter) goldmark.Extender {
	return &codeBlocks{h: h}
}

type codeBlocks struct {
	h highlight.Highlighter
}

// Extend implements goldmark.Extender.
func (e *codeBlocks) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&codeBlockRenderer{h: e.h}, 100),
	))
}

type codeBlockRenderer struct {
	h highlight.Highlighter
}

// RegisterFuncs implements NodeRenderer.RegisterFuncs.
func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
}

func (r *codeBlockRenderer) renderCodeBlock(w util.BufWriter, src []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(src))

	buf := bufferpool.GetBuffer()
	defer bufferpool.PutBuffer(buf)

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}

	if err := r.h.Highlight(w, buf.String(), lang); err != nil {
		return ast.WalkStop, err
	}

	return ast.WalkSkipChildren, nil
}
