package typo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanEllipsis(t *testing.T) {
	got := Scan("wait...", Toggles{Ellipsis: true})
	want := []Candidate{{Kind: Ellipsis, Start: 4, End: 7, Replacement: CharEllipsis}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanFourPeriodsYieldsOneMatch(t *testing.T) {
	got := Scan("....", Toggles{Ellipsis: true})
	want := []Candidate{{Kind: Ellipsis, Start: 0, End: 3, Replacement: CharEllipsis}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanSixPeriodsYieldsTwoMatches(t *testing.T) {
	got := Scan("......", Toggles{Ellipsis: true})
	want := []Candidate{
		{Kind: Ellipsis, Start: 0, End: 3, Replacement: CharEllipsis},
		{Kind: Ellipsis, Start: 3, End: 6, Replacement: CharEllipsis},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanEmdash(t *testing.T) {
	got := Scan("a--b", Toggles{Emdash: true})
	want := []Candidate{{Kind: Emdash, Start: 1, End: 3, Replacement: CharEmdash}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}

	if got := Scan("a--b", Toggles{}); len(got) != 0 {
		t.Errorf("expected no candidates with emdash disabled, got %v", got)
	}
}

func TestScanEndashConsumesSpaces(t *testing.T) {
	got := Scan("9am - 5pm", Toggles{Endash: true})
	want := []Candidate{{Kind: Endash, Start: 3, End: 6, Replacement: CharEndash}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanWordInternalHyphenIgnored(t *testing.T) {
	if got := Scan("well-known", AllToggles()); len(got) != 0 {
		t.Errorf("expected no candidates for word-internal hyphen, got %v", got)
	}
}

func TestScanApostrophe(t *testing.T) {
	got := Scan("don't", AllToggles())
	want := []Candidate{{Kind: Apostrophe, Start: 3, End: 4, Replacement: CharApostrophe}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanYearAbbreviation(t *testing.T) {
	got := Scan("back in '85", AllToggles())
	want := []Candidate{{Kind: Apostrophe, Start: 8, End: 9, Replacement: CharApostrophe}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanPrime(t *testing.T) {
	got := Scan("5' tall", AllToggles())
	want := []Candidate{{Kind: Prime, Start: 1, End: 2, Replacement: CharPrime}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanSingleQuotePair(t *testing.T) {
	got := Scan("'quoted'", AllToggles())
	want := []Candidate{
		{Kind: Quote, Start: 0, End: 1, Replacement: CharOpenSingle},
		{Kind: Quote, Start: 7, End: 8, Replacement: CharCloseSingle},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanDoubleQuoteParity(t *testing.T) {
	got := Scan(`say "hi" again`, AllToggles())
	want := []Candidate{
		{Kind: Quote, Start: 4, End: 5, Replacement: CharOpenDouble},
		{Kind: Quote, Start: 7, End: 8, Replacement: CharCloseDouble},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanDoublePrimeOverride(t *testing.T) {
	// The quote after 6 follows an odd quote count, yet the digit prefix
	// re-scores it as a double prime.
	got := Scan(`5' 6"`, AllToggles())
	want := []Candidate{
		{Kind: Prime, Start: 1, End: 2, Replacement: CharPrime},
		{Kind: Prime, Start: 4, End: 5, Replacement: CharDoublePrime},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanDisabledPrimeIsNotAQuote(t *testing.T) {
	got := Scan("5' tall", Toggles{Quotes: true, Apostrophes: true})
	if len(got) != 0 {
		t.Errorf("disabled prime must be skipped, not requoted: %v", got)
	}
}

func TestScanDisabledDoublePrimeIsNotAQuote(t *testing.T) {
	got := Scan(`6" wide`, Toggles{Quotes: true, Apostrophes: true})
	if len(got) != 0 {
		t.Errorf("disabled double prime must be skipped, not requoted: %v", got)
	}
}

func TestScanDisabledQuotesSkipEntirely(t *testing.T) {
	got := Scan("'quoted'", Toggles{Apostrophes: true, Primes: true})
	if len(got) != 0 {
		t.Errorf("disabled quotes must be skipped: %v", got)
	}
}

func TestScanIdempotentOnTypographicText(t *testing.T) {
	// Already-correct typography produces nothing to do.
	const text = "don’t wait… 9am – 5pm “fine”"
	if got := Scan(text, AllToggles()); len(got) != 0 {
		t.Errorf("expected no candidates on typographic text, got %v", got)
	}
}

func TestScanMergesSubScansInOrder(t *testing.T) {
	got := Scan(`wait... -- "ok"`, AllToggles())
	want := []Candidate{
		{Kind: Ellipsis, Start: 4, End: 7, Replacement: CharEllipsis},
		{Kind: Emdash, Start: 8, End: 10, Replacement: CharEmdash},
		{Kind: Quote, Start: 11, End: 12, Replacement: CharOpenDouble},
		{Kind: Quote, Start: 14, End: 15, Replacement: CharCloseDouble},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}
