package output

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

var namePattern = regexp.MustCompile(`^customer_support_\d{8}T\d{6}Z_[0-9a-f]{8}\.md$`)

func TestSaveExampleVector(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.Now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	w.NewID = func() string { return "deadbeef" }

	path, err := w.Save("Hello")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "customer_support_20240101T000000Z_deadbeef.md" {
		t.Fatalf("unexpected file name %q", filepath.Base(path))
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "# Customer Support Response\n\nGenerated: 20240101T000000Z UTC\nRun ID: deadbeef\n\nHello"
	if string(body) != want {
		t.Fatalf("body mismatch:\n got: %q\nwant: %q", body, want)
	}
}

func TestSaveNameMatchesPattern(t *testing.T) {
	path, err := Save("content", t.TempDir())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if name := filepath.Base(path); !namePattern.MatchString(name) {
		t.Fatalf("file name %q does not match pattern", name)
	}
}

func TestTwoSavesProduceDistinctFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	first, err := w.Save("one")
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := w.Save("two")
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if first == second {
		t.Fatalf("both saves produced %q", first)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 files, found %d", len(entries))
	}
}

func TestSaveCreatesNestedParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "outputs")
	if _, err := Save("nested", dir); err != nil {
		t.Fatalf("Save into missing nested dir: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("outputs dir not created: %v", err)
	}
}

func TestSaveAnyCoercesNonString(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.Now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	w.NewID = func() string { return "0000abcd" }

	path, err := w.SaveAny(42)
	if err != nil {
		t.Fatalf("SaveAny: %v", err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "# Customer Support Response\n\nGenerated: 20240101T000000Z UTC\nRun ID: 0000abcd\n\n42"
	if string(body) != want {
		t.Fatalf("body mismatch: %q", body)
	}
}

func TestSaveSurfacesFilesystemErrors(t *testing.T) {
	// A file standing where the directory should be makes MkdirAll fail.
	base := t.TempDir()
	blocker := filepath.Join(base, "outputs")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := Save("content", blocker); err == nil {
		t.Fatal("expected filesystem error to surface")
	}
}

func TestDefaultDir(t *testing.T) {
	if NewWriter("").Dir != DefaultDir {
		t.Fatalf("empty dir should default to %q", DefaultDir)
	}
}
