package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualSetsFlagAndHash(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.js", []byte("hello"))
	file := fs.Get(id)

	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
	if file.Hash == ([32]byte{}) {
		t.Error("expected content hash to be computed")
	}
	if string(file.Content) != "hello" {
		t.Errorf("expected content %q, got %q", "hello", string(file.Content))
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.js")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	file := fs.Get(id)

	if string(file.Content) != "a\nb\n" {
		t.Errorf("expected normalized content %q, got %q", "a\nb\n", string(file.Content))
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag to be set")
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag to be set")
	}
}

func TestResolveMultiLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.js", []byte("ab\ncd\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{2, LineCol{Line: 1, Col: 3}}, // the newline terminates line 1
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
		{7, LineCol{Line: 3, Col: 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d): expected %+v, got %+v", tt.off, tt.want, start)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.js", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	if got := file.GetLine(1); got != "first" {
		t.Errorf("line 1: expected %q, got %q", "first", got)
	}
	if got := file.GetLine(2); got != "second" {
		t.Errorf("line 2: expected %q, got %q", "second", got)
	}
	if got := file.GetLine(3); got != "third" {
		t.Errorf("line 3: expected %q, got %q", "third", got)
	}
	if got := file.GetLine(4); got != "" {
		t.Errorf("line 4: expected empty, got %q", got)
	}
	if got := file.GetLine(0); got != "" {
		t.Errorf("line 0: expected empty, got %q", got)
	}
}

func TestLookupTracksLatestVersion(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.js", []byte("version 1"), 0)
	latest, ok := fs.Lookup("test.js")
	if !ok || latest != id1 {
		t.Fatalf("expected latest %d, got %d (ok=%v)", id1, latest, ok)
	}

	id2 := fs.Add("test.js", []byte("version 2"), 0)
	if id2 == id1 {
		t.Error("expected a fresh FileID for the second Add")
	}
	latest, ok = fs.Lookup("test.js")
	if !ok || latest != id2 {
		t.Fatalf("expected latest %d after second Add, got %d (ok=%v)", id2, latest, ok)
	}
}
