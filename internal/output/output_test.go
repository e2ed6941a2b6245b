package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirWriterCreatesParents(t *testing.T) {
	root := t.TempDir()
	w := NewDirWriter(root)

	if err := w.WriteFile("json/calendar/2024/posts_01.json", []byte("{}")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "json", "calendar", "2024", "posts_01.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{}" {
		t.Errorf("expected {}, got %q", got)
	}
}

func TestDirWriterOverwrites(t *testing.T) {
	w := NewDirWriter(t.TempDir())

	if err := w.WriteFile("a.txt", []byte("first, longer content")); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFile("a.txt", []byte("second")); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(w.Path("a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("expected file to be replaced, got %q", got)
	}
}

func TestDirWriterReportsFailure(t *testing.T) {
	root := t.TempDir()
	// A regular file where a directory is needed.
	if err := os.WriteFile(filepath.Join(root, "json"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewDirWriter(root)
	if err := w.WriteFile("json/calendar/posts.json", []byte("{}")); err == nil {
		t.Error("expected an error when the parent path is a file")
	}
}
