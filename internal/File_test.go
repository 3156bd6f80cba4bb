package internal

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestExpandGlobsMatchesPattern(t *testing.T) {
	dir := t.TempDir()

	names := []string{"a.txt", "b.txt", "c.log"}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", n, err)
		}
	}

	files, err := ExpandGlobs([]string{filepath.Join(dir, "*.txt")}, false, false, false)
	if err != nil {
		t.Fatalf("ExpandGlobs: %v", err)
	}

	var got []string
	for _, fd := range files {
		got = append(got, fd.Name)
	}
	sort.Strings(got)

	want := []string{"a.txt", "b.txt"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpandGlobsPassesThroughLiteralPaths(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "plain.txt")

	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	files, err := ExpandGlobs([]string{p}, false, false, false)
	if err != nil {
		t.Fatalf("ExpandGlobs: %v", err)
	}

	if len(files) != 1 || files[0].FullPath != p {
		t.Fatalf("got %+v, want a single entry for %s", files, p)
	}
}

func TestExpandGlobsDeduplicates(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "once.txt")

	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	files, err := ExpandGlobs([]string{p, filepath.Join(dir, "*.txt")}, false, false, false)
	if err != nil {
		t.Fatalf("ExpandGlobs: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected the literal path and the glob match to dedupe to one entry, got %d", len(files))
	}
}
