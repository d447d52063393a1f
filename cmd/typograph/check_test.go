package main

import (
	"testing"

	"typograph/internal/diag"
	"typograph/internal/source"
)

func TestCheckExitCode(t *testing.T) {
	sp := source.Span{File: 0, Start: 0, End: 1}

	clean := diag.NewBag(0)
	if got := checkExitCode(clean); got != 0 {
		t.Errorf("clean run exit code = %d, want 0", got)
	}

	findings := diag.NewBag(2)
	findings.Add(diag.NewWarning(diag.TypoEllipsis, sp, "finding"))
	if got := checkExitCode(findings); got != 1 {
		t.Errorf("findings exit code = %d, want 1", got)
	}

	broken := diag.NewBag(2)
	broken.Add(diag.NewWarning(diag.TypoEllipsis, sp, "finding"))
	broken.Add(diag.NewError(diag.IOLoadFileError, sp, "unreadable"))
	if got := checkExitCode(broken); got != 2 {
		t.Errorf("load-failure exit code = %d, want 2", got)
	}
}
