package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"typograph/internal/diag"
	"typograph/internal/engine"
	"typograph/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	if err := os.WriteFile(path, []byte(`t("x")`), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	file := fs.Get(id)

	bag := diag.NewBag(10)
	sp := source.Span{File: id, Start: 3, End: 4}
	bag.Add(diag.NewWarning(diag.TypoQuote, sp, "msg").
		WithFix("fix it", diag.TextEdit{Span: sp, NewText: "“", OldText: `"`}))

	var digest [32]byte

	if _, ok := cache.Get(digest, file); ok {
		t.Fatal("expected a miss before Put")
	}
	cache.Put(digest, file, bag)

	cached, ok := cache.Get(digest, file)
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	restored := cached.toBag(id, 10)
	if restored.Len() != 1 {
		t.Fatalf("expected 1 restored diagnostic, got %d", restored.Len())
	}
	d := restored.Items()[0]
	if d.Code != diag.TypoQuote || d.Primary != sp || d.Message != "msg" {
		t.Errorf("restored diagnostic drifted: %+v", d)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 || d.Fixes[0].Edits[0].NewText != "“" {
		t.Errorf("restored fix drifted: %+v", d.Fixes)
	}
}

func TestDiskCacheMissesOnDifferentConfig(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, _ := fs.Load(path)
	file := fs.Get(id)

	var a, b [32]byte
	b[0] = 1
	cache.Put(a, file, diag.NewBag(1))
	if _, ok := cache.Get(b, file); ok {
		t.Error("a different config digest must miss")
	}
}

func TestDiskCacheIgnoresVirtualFiles(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual("v.js", []byte("x"))
	file := fs.Get(id)

	var digest [32]byte
	cache.Put(digest, file, diag.NewBag(1))
	if _, ok := cache.Get(digest, file); ok {
		t.Error("virtual files must never hit the cache")
	}
}

func TestNilDiskCacheAlwaysMisses(t *testing.T) {
	var cache *DiskCache
	fs := source.NewFileSet()
	id := fs.AddVirtual("v.js", []byte("x"))
	file := fs.Get(id)

	var digest [32]byte
	cache.Put(digest, file, diag.NewBag(1)) // must not panic
	if _, ok := cache.Get(digest, file); ok {
		t.Error("nil cache must miss")
	}
}

func TestCheckDirUsesCache(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.jsx"), []byte(`x = <p>wait...</p>`), 0o644); err != nil {
		t.Fatal(err)
	}
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	opts := CheckOptions{Engine: engine.DefaultOptions(), Cache: cache}

	_, first, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}

	events := make(chan Event, 16)
	opts.Progress = ChannelSink{Ch: events}
	_, second, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	close(events)

	if first[0].Bag.Len() != second[0].Bag.Len() {
		t.Errorf("cached run diverged: %d vs %d findings", first[0].Bag.Len(), second[0].Bag.Len())
	}
	sawCachedDone := false
	for ev := range events {
		if ev.Kind == EventFileDone && ev.Cached {
			sawCachedDone = true
		}
	}
	if !sawCachedDone {
		t.Error("second run should have been served from the cache")
	}
}
