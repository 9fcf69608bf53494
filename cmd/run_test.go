package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "merge.java")
	text := "pre\n<<<<<<< ours\na\n=======\nb\n>>>>>>> theirs\npost"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	src := parseSource(path)
	if !src.Valid {
		t.Error("existing file should produce a valid source")
	}
	if src.Count != 1 {
		t.Errorf("Count = %d, want 1", src.Count)
	}
	if src.Content != text {
		t.Errorf("Content = %q, want trimmed file text", src.Content)
	}
	if len(src.Blocks) != 1 {
		t.Errorf("len(Blocks) = %d, want 1", len(src.Blocks))
	}
}

func TestParseSourceMissingFile(t *testing.T) {
	src := parseSource(filepath.Join(t.TempDir(), "absent"))
	if src.Valid {
		t.Error("missing file must be invalid")
	}
	if src.Count != 0 || src.Content != "" || len(src.Blocks) != 0 {
		t.Errorf("missing file should parse to a zero source, got %+v", src)
	}
}

func TestParseSourceEmptyPath(t *testing.T) {
	src := parseSource("")
	if src.Valid {
		t.Error("empty path (unresolvable slot) must be invalid")
	}
}
