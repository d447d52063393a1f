package typo

// Kind identifies one family of typography replacements.
type Kind uint8

const (
	Ellipsis Kind = iota
	Emdash
	Endash
	Quote
	Apostrophe
	Prime

	kindCount
)

func (k Kind) String() string {
	switch k {
	case Ellipsis:
		return "ellipsis"
	case Emdash:
		return "emdash"
	case Endash:
		return "endash"
	case Quote:
		return "quote"
	case Apostrophe:
		return "apostrophe"
	case Prime:
		return "prime"
	}
	return "unknown"
}

// Replacement characters. Closing single quote and apostrophe share U+2019.
const (
	CharEllipsis    = "…" // U+2026
	CharEmdash      = "—" // U+2014
	CharEndash      = "–" // U+2013
	CharOpenSingle  = "‘" // U+2018
	CharCloseSingle = "’" // U+2019
	CharApostrophe  = "’" // U+2019
	CharOpenDouble  = "“" // U+201C
	CharCloseDouble = "”" // U+201D
	CharPrime       = "′" // U+2032
	CharDoublePrime = "″" // U+2033
)

// Toggles enables or disables each replacement family independently.
// Quotes and apostrophes/primes share detection but toggle separately.
type Toggles struct {
	Ellipsis    bool
	Emdash      bool
	Endash      bool
	Quotes      bool
	Apostrophes bool
	Primes      bool
}

// AllToggles returns Toggles with every kind enabled.
func AllToggles() Toggles {
	return Toggles{
		Ellipsis:    true,
		Emdash:      true,
		Endash:      true,
		Quotes:      true,
		Apostrophes: true,
		Primes:      true,
	}
}

// Enabled reports whether edits of the given kind may be emitted.
func (t Toggles) Enabled(k Kind) bool {
	switch k {
	case Ellipsis:
		return t.Ellipsis
	case Emdash:
		return t.Emdash
	case Endash:
		return t.Endash
	case Quote:
		return t.Quotes
	case Apostrophe:
		return t.Apostrophes
	case Prime:
		return t.Primes
	}
	return false
}
