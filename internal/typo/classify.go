package typo

import (
	"unicode"
	"unicode/utf8"
)

// SingleClass is the disposition of a straight single quote at a position.
type SingleClass uint8

const (
	// SingleApostrophe is a contraction or possessive: don't, dog's.
	SingleApostrophe SingleClass = iota
	// SingleYear is a year abbreviation: '99. An apostrophe variant.
	SingleYear
	// SinglePrime is a measurement mark: 5' tall.
	SinglePrime
	SingleOpenQuote
	SingleCloseQuote
)

// DoubleClass is the disposition of a straight double quote at a position.
type DoubleClass uint8

const (
	DoubleOpenQuote DoubleClass = iota
	DoubleCloseQuote
	// DoublePrime is a measurement mark: 6".
	DoublePrime
)

// neighbors decodes the runes on either side of the byte at i.
// A missing neighbor (start or end of text) reports ok=false.
func neighbors(text string, i int) (prev rune, hasPrev bool, next rune, hasNext bool) {
	if i > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		if size > 0 {
			prev, hasPrev = r, true
		}
	}
	if i+1 < len(text) {
		r, size := utf8.DecodeRuneInString(text[i+1:])
		if size > 0 {
			next, hasNext = r, true
		}
	}
	return prev, hasPrev, next, hasNext
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// ClassifySingle decides the disposition of the ' at byte offset i using
// only the neighboring runes. Rules apply in priority order, first match
// wins.
func ClassifySingle(text string, i int) SingleClass {
	prev, hasPrev, next, hasNext := neighbors(text, i)

	// don't, dog's
	if hasPrev && isWord(prev) && hasNext && isWord(next) {
		return SingleApostrophe
	}
	// '99 after whitespace or at span start
	if (!hasPrev || isSpace(prev)) && hasNext && isDigit(next) {
		return SingleYear
	}
	// 5' tall
	if hasPrev && isDigit(prev) {
		return SinglePrime
	}
	if !hasPrev || isSpace(prev) || prev == '(' || prev == '[' || prev == '{' {
		return SingleOpenQuote
	}
	return SingleCloseQuote
}

// ClassifyDouble decides the disposition of the " at byte offset i.
// occurrence is the 1-based count of double quotes seen in the span so far,
// including this one. Quotes pair by parity of occurrence (odd opens, even
// closes); a digit immediately before the quote re-scores it as a double
// prime regardless of how it would have paired.
func ClassifyDouble(text string, i int, occurrence int) DoubleClass {
	prev, hasPrev, _, _ := neighbors(text, i)
	if hasPrev && isDigit(prev) {
		return DoublePrime
	}
	if occurrence%2 == 1 {
		return DoubleOpenQuote
	}
	return DoubleCloseQuote
}
