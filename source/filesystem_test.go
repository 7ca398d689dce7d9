package source

import (
	"sort"
	"testing"

	"github.com/spf13/afero"
)

func newTestContentFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		if err := afero.WriteFile(fs, "/site/content/"+f, []byte("x"), 0666); err != nil {
			t.Fatal(err)
		}
	}
	return afero.NewBasePathFs(fs, "/site/content")
}

func TestFiles(t *testing.T) {
	fs := newTestContentFs(t,
		"about.md",
		"posts/2020-01-02-hello.md",
		"posts/.hidden.md",
		"posts/#draft.md",
		"posts/backup.md~",
		".git/config",
		"drafts/wip.md",
		"posts/notes.tmp",
	)

	sp, err := NewSourceSpec(fs, "/site/content", []string{"drafts/**", "**.tmp"})
	if err != nil {
		t.Fatal(err)
	}

	files, err := sp.NewFilesystem().Files()
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, f := range files {
		got = append(got, f.Path())
	}
	sort.Strings(got)

	want := []string{"about.md", "posts/2020-01-02-hello.md"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v want %v", got, want)
		}
	}
}

func TestFilesMissingContentDir(t *testing.T) {
	fs := afero.NewBasePathFs(afero.NewMemMapFs(), "/nope")
	sp, _ := NewSourceSpec(fs, "/nope", nil)
	files, err := sp.NewFilesystem().Files()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatalf("got %d files", len(files))
	}
}

func TestInvalidIgnorePattern(t *testing.T) {
	if _, err := NewSourceSpec(afero.NewMemMapFs(), "/", []string{"[unclosed"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestFileInfo(t *testing.T) {
	f := NewFileInfo("/site/content", "/posts/2020-01-02-hello.md", nil)

	for _, test := range []struct {
		name string
		got  string
		want string
	}{
		{"Path", f.Path(), "posts/2020-01-02-hello.md"},
		{"Dir", f.Dir(), "posts"},
		{"Section", f.Section(), "posts"},
		{"Ext", f.Ext(), "md"},
		{"LogicalName", f.LogicalName(), "2020-01-02-hello.md"},
		{"BaseFileName", f.BaseFileName(), "2020-01-02-hello"},
		{"Filename", f.Filename(), "/site/content/posts/2020-01-02-hello.md"},
	} {
		if test.got != test.want {
			t.Errorf("%s: got %q want %q", test.name, test.got, test.want)
		}
	}

	if f.UniqueID() == "" || !f.ModTime().IsZero() {
		t.Error("unexpected UniqueID/ModTime")
	}

	root := NewFileInfo("/site/content", "about.md", nil)
	if root.Section() != "" || root.Dir() != "" {
		t.Errorf("root file: section %q dir %q", root.Section(), root.Dir())
	}
}
