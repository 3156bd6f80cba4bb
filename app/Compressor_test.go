package main

import (
	"bytes"
	"compress/zlib"
	"io"
	"os"
	"path/filepath"
	"testing"

	zdeflate "github.com/go-zdeflate/zdeflate"
)

func TestParseMode(t *testing.T) {
	cases := map[string]zdeflate.BlockMode{
		"stored":  zdeflate.Stored,
		"fixed":   zdeflate.FixedHuffman,
		"dynamic": zdeflate.DynamicHuffman,
		"":        zdeflate.DynamicHuffman,
	}

	for in, want := range cases {
		got, err := parseMode(in)
		if err != nil {
			t.Fatalf("parseMode(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("parseMode(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := parseMode("bogus"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

func TestFormatRatio(t *testing.T) {
	if got := formatRatio(0, 0); got != "0 bytes -> 0 bytes" {
		t.Fatalf("formatRatio(0,0) = %q", got)
	}

	got := formatRatio(1000, 250)
	if got != "1000 bytes -> 250 bytes (ratio 0.250)" {
		t.Fatalf("formatRatio(1000,250) = %q", got)
	}
}

func TestCompressAllRoundTripsToDisk(t *testing.T) {
	dir := t.TempDir()

	contents := map[string]string{
		"a.txt": "the quick brown fox jumps over the lazy dog, repeatedly, repeatedly",
		"b.txt": "another file with different repeated repeated repeated content",
	}

	var inputs []string
	for name, body := range contents {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
		inputs = append(inputs, p)
	}

	cfg := Config{
		Inputs:     inputs,
		Mode:       "dynamic",
		WindowBits: 15,
		Jobs:       2,
		Overwrite:  true,
	}

	if err := CompressAll(cfg); err != nil {
		t.Fatalf("CompressAll: %v", err)
	}

	for name, body := range contents {
		compressed, err := os.ReadFile(filepath.Join(dir, name+".zz"))
		if err != nil {
			t.Fatalf("reading compressed output for %s: %v", name, err)
		}

		r, err := zlib.NewReader(bytes.NewReader(compressed))
		if err != nil {
			t.Fatalf("zlib.NewReader for %s: %v", name, err)
		}

		got, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("zlib read for %s: %v", name, err)
		}

		if string(got) != body {
			t.Fatalf("round trip mismatch for %s: got %q, want %q", name, got, body)
		}
	}
}

func TestCompressAllRefusesToOverwriteByDefault(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "f.txt")
	out := in + ".zz"

	if err := os.WriteFile(in, []byte("hello"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := os.WriteFile(out, []byte("already here"), 0o644); err != nil {
		t.Fatalf("writing pre-existing output: %v", err)
	}

	cfg := Config{Inputs: []string{in}, Mode: "stored", WindowBits: 15, Jobs: 1}

	if err := CompressAll(cfg); err == nil {
		t.Fatalf("expected an error when the output file already exists")
	}
}
