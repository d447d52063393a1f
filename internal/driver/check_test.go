package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"typograph/internal/diag"
	"typograph/internal/engine"
	"typograph/internal/scope"
	"typograph/internal/source"
	"typograph/internal/typo"
)

func checkSource(t *testing.T, src string, opts engine.Options) *diag.Bag {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte(src))
	return CheckFileID(fs, id, opts, 100)
}

func TestCheckFileIDStringScope(t *testing.T) {
	opts := engine.DefaultOptions()
	opts.Scope.Strings = scope.StringScope{Mode: scope.ModeRestricted, Functions: []string{"t"}}

	inScope := checkSource(t, `t("hello...")`, opts)
	if inScope.Len() != 1 {
		t.Fatalf("expected 1 finding for t(...), got %v", inScope.Items())
	}
	d := inScope.Items()[0]
	if d.Code != diag.TypoEllipsis {
		t.Errorf("expected TypoEllipsis, got %v", d.Code)
	}
	if d.Primary.Start != 8 || d.Primary.End != 11 {
		t.Errorf("expected span 8-11, got %d-%d", d.Primary.Start, d.Primary.End)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("expected one fix with one edit, got %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != typo.CharEllipsis || edit.OldText != "..." {
		t.Errorf("unexpected edit: %+v", edit)
	}

	outOfScope := checkSource(t, `console.log("hello...")`, opts)
	if outOfScope.Len() != 0 {
		t.Errorf("expected no findings for console.log(...), got %v", outOfScope.Items())
	}
}

func TestCheckFileIDDottedFunctionAllowlist(t *testing.T) {
	opts := engine.DefaultOptions()
	opts.Scope.Strings = scope.StringScope{Mode: scope.ModeRestricted, Functions: []string{"i18n.t"}}

	if got := checkSource(t, `i18n.t("hello...")`, opts); got.Len() != 1 {
		t.Errorf("expected i18n.t to be in scope, got %v", got.Items())
	}
	if got := checkSource(t, `t("hello...")`, opts); got.Len() != 0 {
		t.Errorf("expected plain t to be out of scope, got %v", got.Items())
	}
}

func TestCheckFileIDChildrenScope(t *testing.T) {
	opts := engine.DefaultOptions()
	opts.Scope.Children = scope.ChildScope{Mode: scope.ModeRestricted, Components: []string{"p"}}

	inP := checkSource(t, `x = <p>wait...</p>`, opts)
	if inP.Len() != 1 {
		t.Fatalf("expected 1 finding inside <p>, got %v", inP.Items())
	}

	inDiv := checkSource(t, `x = <div>wait...</div>`, opts)
	if inDiv.Len() != 0 {
		t.Errorf("expected no findings inside <div>, got %v", inDiv.Items())
	}

	nested := checkSource(t, `x = <p><div>wait...</div></p>`, opts)
	if nested.Len() != 0 {
		t.Errorf("innermost element must decide scope, got %v", nested.Items())
	}
}

func TestCheckFileIDAttributeDefaults(t *testing.T) {
	opts := engine.DefaultOptions()

	titled := checkSource(t, `x = <img title="A dog--really" src="no--check" />`, opts)
	if titled.Len() != 1 {
		t.Fatalf("expected 1 finding in title only, got %v", titled.Items())
	}
	if titled.Items()[0].Code != diag.TypoEmdash {
		t.Errorf("expected TypoEmdash, got %v", titled.Items()[0].Code)
	}
}

func TestCheckFileIDSortsFindings(t *testing.T) {
	bag := checkSource(t, `x = <p>end... and "quotes" and more...</p>`, engine.DefaultOptions())
	items := bag.Items()
	if len(items) < 3 {
		t.Fatalf("expected several findings, got %v", items)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Primary.Start < items[i-1].Primary.Start {
			t.Errorf("findings out of order at %d: %v then %v", i, items[i-1].Primary, items[i].Primary)
		}
	}
}

func TestCheckFileIDStopsAtLimit(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte(`x = <p>one... two... three...</p>`))
	bag := CheckFileID(fs, id, engine.DefaultOptions(), 1)
	if bag.Len() != 1 {
		t.Errorf("expected the limit to cap findings at 1, got %v", bag.Items())
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.jsx", `x = <p>wait...</p>`)
	write("b.js", `y = <p>fine</p>`)
	write("skip.txt", `not checked...`)

	_, results, err := CheckDir(context.Background(), dir, CheckOptions{
		Engine: engine.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("CheckDir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// path order, not completion order
	if filepath.Base(results[0].Path) != "a.jsx" || filepath.Base(results[1].Path) != "b.js" {
		t.Errorf("unexpected result order: %v, %v", results[0].Path, results[1].Path)
	}
	if results[0].Bag.Len() != 1 {
		t.Errorf("expected 1 finding in a.jsx, got %v", results[0].Bag.Items())
	}
	if results[1].Bag.Len() != 0 {
		t.Errorf("expected no findings in b.js, got %v", results[1].Bag.Items())
	}
}

func TestCheckDirEmitsEvents(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte(`t("x...")`), 0o644); err != nil {
		t.Fatal(err)
	}

	events := make(chan Event, 16)
	_, _, err := CheckDir(context.Background(), dir, CheckOptions{
		Engine:   engine.DefaultOptions(),
		Progress: ChannelSink{Ch: events},
	})
	if err != nil {
		t.Fatalf("CheckDir failed: %v", err)
	}
	close(events)

	var kinds []EventKind
	for ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	if len(kinds) != 2 || kinds[0] != EventFileStart || kinds[1] != EventFileDone {
		t.Errorf("unexpected event sequence: %v", kinds)
	}
}
