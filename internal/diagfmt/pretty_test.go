package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"typograph/internal/diag"
	"typograph/internal/source"
)

func TestPrettyHeadlineAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("app.js", []byte(`t("a -- b")`))
	span := source.Span{File: fileID, Start: 5, End: 7}

	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.TypoEmdash, span, `use "—" instead of "--"`))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	out := buf.String()
	if !strings.Contains(out, `app.js:1:6: WARNING TYP1002: use "—" instead of "--"`) {
		t.Errorf("missing headline in output:\n%s", out)
	}
	if !strings.Contains(out, `t("a -- b")`) {
		t.Errorf("missing source line in output:\n%s", out)
	}
	if !strings.Contains(out, "^~") {
		t.Errorf("missing underline in output:\n%s", out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	caretCol := strings.Index(lines[2], "^")
	markCol := strings.Index(lines[1], "--")
	if caretCol != markCol {
		t.Errorf("caret at col %d, marked text at col %d:\n%s", caretCol, markCol, out)
	}
}

func TestPrettyMultiLineFile(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const a = 1;\nconst b = t(\"so...\");\n")
	fileID := fs.AddVirtual("app.js", content)

	// "..." sits on line 2.
	start := uint32(strings.Index(string(content), "..."))
	span := source.Span{File: fileID, Start: start, End: start + 3}

	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.TypoEllipsis, span, `use "…" instead of "..."`))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	out := buf.String()
	if !strings.Contains(out, "app.js:2:") {
		t.Errorf("expected a line-2 position:\n%s", out)
	}
	if !strings.Contains(out, `const b = t("so...");`) {
		t.Errorf("expected the second source line:\n%s", out)
	}
	if strings.Contains(out, "const a") {
		t.Errorf("first line should not be printed:\n%s", out)
	}
}

func TestPrettyShowsFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("app.js", []byte(`"..."`))
	span := source.Span{File: fileID, Start: 1, End: 4}

	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.TypoEllipsis, span, "m").
		WithFix(`replace "..." with "…"`, diag.TextEdit{Span: span, NewText: "…", OldText: "..."}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true})
	if !strings.Contains(buf.String(), `fix: replace "..." with "…"`) {
		t.Errorf("missing fix line:\n%s", buf.String())
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "fix:") {
		t.Errorf("fixes printed without ShowFixes:\n%s", buf.String())
	}
}
