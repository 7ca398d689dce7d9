package publisher

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/sunwei/blogsite/config"
	"github.com/sunwei/blogsite/minifiers"
	"github.com/sunwei/blogsite/output"
)

func newTestPublisher(t *testing.T) (*DestinationPublisher, afero.Fs) {
	t.Helper()
	min, err := minifiers.New(output.DefaultFormats, config.New())
	if err != nil {
		t.Fatal(err)
	}
	fs := afero.NewMemMapFs()
	return NewDestinationPublisher(fs, min), fs
}

func TestPublish(t *testing.T) {
	p, fs := newTestPublisher(t)

	html := "<html>\n  <body>\n    <a href=\"/about/\">About</a>\n  </body>\n</html>"

	for _, test := range []struct {
		name   string
		d      Descriptor
		expect string
	}{
		{"plain", Descriptor{TargetPath: "/plain/index.html", OutputFormat: output.HTMLFormat}, html},
		{"absurl", Descriptor{TargetPath: "/abs/index.html", OutputFormat: output.HTMLFormat, AbsURLPath: "https://example.org/"},
			strings.Replace(html, `"/about/"`, `"https://example.org/about/"`, 1)},
	} {
		t.Run(test.name, func(t *testing.T) {
			test.d.Src = strings.NewReader(html)
			if err := p.Publish(test.d); err != nil {
				t.Fatal(err)
			}
			b, err := afero.ReadFile(fs, test.d.TargetPath)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != test.expect {
				t.Errorf("got %q want %q", b, test.expect)
			}
		})
	}

	d := Descriptor{TargetPath: "/min/index.html", OutputFormat: output.HTMLFormat, Minify: true, Src: strings.NewReader(html)}
	if err := p.Publish(d); err != nil {
		t.Fatal(err)
	}
	b, _ := afero.ReadFile(fs, d.TargetPath)
	if strings.Contains(string(b), "\n") || !strings.Contains(string(b), "About</a>") {
		t.Errorf("not minified: %q", b)
	}

	if p.FilesWritten() != 3 {
		t.Errorf("FilesWritten: got %d", p.FilesWritten())
	}
}

func TestPublishNoTarget(t *testing.T) {
	p, _ := newTestPublisher(t)
	if err := p.Publish(Descriptor{Src: strings.NewReader("x")}); err == nil {
		t.Fatal("expected error")
	}
}
