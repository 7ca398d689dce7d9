package minifiers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sunwei/blogsite/config"
	"github.com/sunwei/blogsite/output"
	"github.com/sunwei/blogsite/transform"
)

func TestNew(t *testing.T) {
	m, err := New(output.DefaultFormats, config.New())
	if err != nil {
		t.Fatal(err)
	}

	if m.MinifyOutput {
		t.Error("MinifyOutput should default to false")
	}

	for _, test := range []struct {
		tp                output.MediaType
		rawString         string
		expectedMinString string
	}{
		{output.CSSType, " body { color: blue; }  ", "body{color:blue}"},
		{output.JSONType, `{   "a" : 123 , "b":2,  "c": 5 } `, `{"a":123,"b":2,"c":5}`},
		{output.HTMLType, "<p>  hello   world </p>", "<p>hello world</p>"},
	} {
		var b bytes.Buffer

		if err := m.Minify(test.tp, &b, strings.NewReader(test.rawString)); err != nil {
			t.Fatal(err)
		}
		if b.String() != test.expectedMinString {
			t.Errorf("%s: got %q want %q", test.tp.Type(), b.String(), test.expectedMinString)
		}
	}
}

func TestConfigureMinify(t *testing.T) {
	v := config.New()
	v.Set("minify", map[string]any{
		"minifyOutput": true,
		"disableHTML":  true,
		"tdewolff": map[string]any{
			"css": map[string]any{
				"keepCSS2": false,
			},
		},
	})

	m, err := New(output.DefaultFormats, v)
	if err != nil {
		t.Fatal(err)
	}

	if !m.MinifyOutput {
		t.Error("MinifyOutput not decoded")
	}

	var b bytes.Buffer
	in := "<p>  hello   world </p>"
	if err := m.Minify(output.HTMLType, &b, strings.NewReader(in)); err != nil {
		t.Fatal(err)
	}
	if b.String() != in {
		t.Errorf("HTML minified although disabled: %q", b.String())
	}
}

func TestTransformer(t *testing.T) {
	m, err := New(output.DefaultFormats, config.New())
	if err != nil {
		t.Fatal(err)
	}

	tr := transform.New(m.Transformer(output.HTMLType))

	var b bytes.Buffer
	if err := tr.Apply(&b, strings.NewReader("<div>\n\n  <b>x</b>\n</div>")); err != nil {
		t.Fatal(err)
	}
	if b.String() != "<div><b>x</b></div>" {
		t.Errorf("got %q", b.String())
	}
}
