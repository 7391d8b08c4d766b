package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestListArticles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "notes.md", "data.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// Subdirectories are not descended into
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "c.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ListArticles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestListArticles_MissingDir(t *testing.T) {
	_, err := ListArticles(filepath.Join(t.TempDir(), "does-not-exist"))

	var noArticles *ErrNoArticles
	if !errors.As(err, &noArticles) {
		t.Fatalf("err = %v, want *ErrNoArticles", err)
	}
}

func TestListArticles_NoTxtFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ListArticles(dir)

	var noArticles *ErrNoArticles
	if !errors.As(err, &noArticles) {
		t.Fatalf("err = %v, want *ErrNoArticles", err)
	}
}

func TestReadArticle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flood.txt")
	if err := os.WriteFile(path, []byte("river rising"), 0644); err != nil {
		t.Fatal(err)
	}

	text, name, err := ReadArticle(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "river rising" {
		t.Errorf("text = %q", text)
	}
	if name != "flood.txt" {
		t.Errorf("name = %q, want base file name", name)
	}
}

func TestReadArticle_InvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := ReadArticle(path); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}
