package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"typograph/internal/scope"
	"typograph/internal/typo"
)

func TestEvaluateGatedSpanYieldsNothing(t *testing.T) {
	opts := DefaultOptions()
	opts.Scope.Strings = scope.StringScope{Mode: scope.ModeRestricted, Functions: []string{"t"}}

	sp := Span{Kind: scope.SpanString, Text: "hello...", Base: 10}

	inScope := Evaluate(sp, opts, &scope.Facts{Calls: []string{"t"}})
	want := []typo.Edit{{Kind: typo.Ellipsis, Start: 15, End: 18, Replacement: typo.CharEllipsis}}
	if diff := cmp.Diff(want, inScope); diff != "" {
		t.Errorf("Evaluate mismatch (-want +got):\n%s", diff)
	}

	outOfScope := Evaluate(sp, opts, &scope.Facts{Calls: []string{"console.log"}})
	if len(outOfScope) != 0 {
		t.Errorf("expected no edits for an out-of-scope span, got %v", outOfScope)
	}
}

func TestEvaluateRebasesToFileOffsets(t *testing.T) {
	opts := DefaultOptions()
	sp := Span{Kind: scope.SpanText, Text: "a--b", Base: 200}

	got := Evaluate(sp, opts, &scope.Facts{Elements: []string{"p"}})
	want := []typo.Edit{{Kind: typo.Emdash, Start: 201, End: 203, Replacement: typo.CharEmdash}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Evaluate mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateNilFacts(t *testing.T) {
	opts := DefaultOptions()
	// Children defaults to on, so a text span passes even with no facts.
	got := Evaluate(Span{Kind: scope.SpanText, Text: "wait..."}, opts, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 edit, got %v", got)
	}
}

func TestEvaluateCleanSpanIsEmptySuccess(t *testing.T) {
	got := Evaluate(Span{Kind: scope.SpanText, Text: "nothing to see"}, DefaultOptions(), nil)
	if got != nil {
		t.Errorf("expected nil edits, got %v", got)
	}
}
