package paths

import (
	"path/filepath"
	"testing"
)

func TestAbsPathify(t *testing.T) {
	if got := AbsPathify("/site", "public"); got != filepath.Join("/site", "public") {
		t.Fatalf("got %q", got)
	}
	if got := AbsPathify("/site", "/tmp/out/"); got != filepath.Clean("/tmp/out") {
		t.Fatalf("got %q", got)
	}
}

func TestFilenameAndExt(t *testing.T) {
	if got := Filename("posts/2020-01-02-hello.MD"); got != "2020-01-02-hello" {
		t.Fatalf("got %q", got)
	}
	if got := Ext("posts/2020-01-02-hello.MD"); got != "md" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanURLPath(t *testing.T) {
	for in, want := range map[string]string{
		"2020//01/hello/": "/2020/01/hello/",
		"about":           "/about",
		"/":               "/",
		"":                "/",
	} {
		if got := CleanURLPath(in); got != want {
			t.Errorf("%q: got %q, want %q", in, got, want)
		}
	}
}
