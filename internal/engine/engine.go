// Package engine is the single entry point a host traversal calls per
// extracted span: scope gate, then typography scan, then edit resolution.
// It is a pure function of (span, config, facts); an empty result means
// nothing to do, not a failure.
package engine

import (
	"typograph/internal/scope"
	"typograph/internal/typo"
)

// Span is one extractable unit of text with its absolute base offset.
type Span struct {
	Kind scope.SpanKind
	Text string
	Base uint32 // absolute byte offset of Text[0] in the file
}

// Options carries the validated, immutable per-run configuration.
type Options struct {
	Toggles typo.Toggles
	Scope   scope.Config
}

// DefaultOptions enables every replacement kind with the stock scopes.
func DefaultOptions() Options {
	return Options{
		Toggles: typo.AllToggles(),
		Scope:   scope.DefaultConfig(),
	}
}

// Evaluate returns the final, non-overlapping edits for one span, with
// offsets absolute in the source file. A span rejected by the scope gate
// yields nil.
func Evaluate(sp Span, opts Options, facts *scope.Facts) []typo.Edit {
	if facts == nil {
		facts = &scope.Facts{}
	}
	if !scope.Allows(sp.Kind, &opts.Scope, facts) {
		return nil
	}
	return typo.Resolve(typo.Scan(sp.Text, opts.Toggles), sp.Base)
}
