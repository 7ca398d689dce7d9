package urlreplacers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sunwei/blogsite/transform"
)

func TestAbsURL(t *testing.T) {
	for _, test := range []struct {
		in   string
		want string
	}{
		{`<a href="/about/">About</a>`, `<a href="https://example.org/blog/about/">About</a>`},
		{`<img src='/img/a.png'>`, `<img src='https://example.org/blog/img/a.png'>`},
		{`<script src="//cdn.org/x.js"></script>`, `<script src="//cdn.org/x.js"></script>`},
		{`<a href="https://other.org/">x</a>`, `<a href="https://other.org/">x</a>`},
		{`<a href="rel/">x</a><a href="/">home</a>`, `<a href="rel/">x</a><a href="https://example.org/blog/">home</a>`},
	} {
		tr := transform.New(NewAbsURLTransformer("https://example.org/blog/"))
		var out bytes.Buffer
		if err := tr.Apply(&out, strings.NewReader(test.in)); err != nil {
			t.Fatal(err)
		}
		if out.String() != test.want {
			t.Errorf("got %q want %q", out.String(), test.want)
		}
	}
}
