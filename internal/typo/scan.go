package typo

import (
	"fmt"

	"fortio.org/safecast"
)

// Candidate is a single span-relative replacement candidate.
type Candidate struct {
	Kind        Kind
	Start       uint32 // byte offset relative to the span text
	End         uint32 // exclusive
	Replacement string
}

// Scan runs every enabled sub-scan over one span of text and returns
// candidates in emission order: ellipsis, emdash, endash, then the
// quote/apostrophe/prime pass. Candidates may overlap across sub-scans;
// Resolve settles collisions.
func Scan(text string, enabled Toggles) []Candidate {
	var out []Candidate
	if enabled.Ellipsis {
		out = scanRuns(out, text, "...", Ellipsis, CharEllipsis)
	}
	if enabled.Emdash {
		out = scanRuns(out, text, "--", Emdash, CharEmdash)
	}
	if enabled.Endash {
		out = scanRuns(out, text, " - ", Endash, CharEndash)
	}
	if enabled.Quotes || enabled.Apostrophes || enabled.Primes {
		out = scanQuotes(out, text, enabled)
	}
	return out
}

// spanOffset converts a span-relative byte index.
func spanOffset(i int) uint32 {
	v, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("span offset overflow: %w", err))
	}
	return v
}

// scanRuns finds every non-overlapping literal occurrence of pat, consuming
// matched bytes left to right: "...." yields one ellipsis match covering the
// first three periods, the fourth is left alone.
func scanRuns(out []Candidate, text, pat string, kind Kind, replacement string) []Candidate {
	n := len(pat)
	for i := 0; i+n <= len(text); {
		if text[i:i+n] != pat {
			i++
			continue
		}
		out = append(out, Candidate{
			Kind:        kind,
			Start:       spanOffset(i),
			End:         spanOffset(i + n),
			Replacement: replacement,
		})
		i += n
	}
	return out
}

// scanQuotes classifies every straight quote character in the span. A
// disabled kind still claims its character: a disabled prime is skipped,
// never reinterpreted as a quote.
func scanQuotes(out []Candidate, text string, enabled Toggles) []Candidate {
	doubles := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\'':
			var kind Kind
			var replacement string
			switch ClassifySingle(text, i) {
			case SingleApostrophe, SingleYear:
				kind, replacement = Apostrophe, CharApostrophe
			case SinglePrime:
				kind, replacement = Prime, CharPrime
			case SingleOpenQuote:
				kind, replacement = Quote, CharOpenSingle
			case SingleCloseQuote:
				kind, replacement = Quote, CharCloseSingle
			}
			if !enabled.Enabled(kind) {
				continue
			}
			out = append(out, Candidate{
				Kind:        kind,
				Start:       spanOffset(i),
				End:         spanOffset(i + 1),
				Replacement: replacement,
			})

		case '"':
			doubles++
			var kind Kind
			var replacement string
			switch ClassifyDouble(text, i, doubles) {
			case DoublePrime:
				kind, replacement = Prime, CharDoublePrime
			case DoubleOpenQuote:
				kind, replacement = Quote, CharOpenDouble
			case DoubleCloseQuote:
				kind, replacement = Quote, CharCloseDouble
			}
			if !enabled.Enabled(kind) {
				continue
			}
			out = append(out, Candidate{
				Kind:        kind,
				Start:       spanOffset(i),
				End:         spanOffset(i + 1),
				Replacement: replacement,
			})
		}
	}
	return out
}
