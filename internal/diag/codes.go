package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Typography findings
	TypoEllipsis   Code = 1001
	TypoEmdash     Code = 1002
	TypoEndash     Code = 1003
	TypoQuote      Code = 1004
	TypoApostrophe Code = 1005
	TypoPrime      Code = 1006

	// Extractor warnings
	ExtractUnterminatedString   Code = 2001
	ExtractUnterminatedTemplate Code = 2002
	ExtractUnclosedElement      Code = 2003

	// I/O
	IOLoadFileError Code = 3001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	TypoEllipsis:   "three periods instead of an ellipsis",
	TypoEmdash:     "double hyphen instead of an em dash",
	TypoEndash:     "spaced hyphen instead of an en dash",
	TypoQuote:      "straight quote instead of a curly quote",
	TypoApostrophe: "straight apostrophe instead of a typographic apostrophe",
	TypoPrime:      "straight quote instead of a prime mark",

	ExtractUnterminatedString:   "unterminated string literal",
	ExtractUnterminatedTemplate: "unterminated template literal",
	ExtractUnclosedElement:      "markup element is never closed",

	IOLoadFileError: "failed to load file",
}

// ID returns the short family-prefixed identifier, e.g. "TYP1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("EXT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
