// Package extract pulls checkable text spans out of JS/JSX-like source
// files: string literal bodies, template literal chunks, markup attribute
// values and markup text children, each paired with the contextual facts
// the scope gate needs (enclosing call names, element stack, template tag).
//
// It is a single-pass heuristic lexer, not a parser. It understands
// comments, string/template/regex literals, call-expression nesting and
// JSX-style markup well enough to attribute spans correctly; it does not
// build a syntax tree and tolerates malformed input, reporting
// unterminated constructs as warnings and scanning on.
package extract

import (
	"strings"

	"typograph/internal/diag"
	"typograph/internal/scope"
	"typograph/internal/source"
)

// Span is one extracted unit of text together with its absolute base
// offset and the facts describing where it sits.
type Span struct {
	Kind  scope.SpanKind
	Text  string
	Base  uint32
	Facts scope.Facts
}

// callFrame is one open parenthesis; Name is set when it opened a call
// expression.
type callFrame struct {
	name string
}

type extractor struct {
	file     *source.File
	cur      cursor
	reporter diag.Reporter

	calls    []callFrame
	elements scope.ElementStack

	// pendingName is the most recently scanned identifier chain; it becomes
	// a call name at '(' or a template tag at '`', and is cleared by any
	// other token.
	pendingName string
	// lastSig is the previous significant byte ('a' for identifiers, 'k'
	// for keywords, 0 at start); it disambiguates markup from comparison
	// and regex from division.
	lastSig byte

	out []Span
}

// File extracts every checkable span from the file. Extraction never
// fails: malformed input produces warnings through r and a best-effort
// span list. A nil reporter discards the warnings.
func File(f *source.File, r diag.Reporter) []Span {
	if r == nil {
		r = diag.NopReporter{}
	}
	x := &extractor{
		file:     f,
		cur:      newCursor(f.Content),
		reporter: r,
	}
	x.scanCode(false)
	return x.out
}

// scanCode scans expression/statement code. With inHole set it stops after
// the '}' matching an already-consumed opening brace; otherwise it runs to
// EOF.
func (x *extractor) scanCode(inHole bool) {
	callBase := len(x.calls)
	depth := 0
	for !x.cur.eof() {
		b := x.cur.peek()
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			x.cur.bump()

		case b == '/' && x.cur.peekAt(1) == '/':
			x.skipLineComment()

		case b == '/' && x.cur.peekAt(1) == '*':
			x.skipBlockComment()

		case b == '/' && x.regexLikely():
			x.skipRegex()
			x.pendingName = ""
			x.lastSig = 'a' // a regex is a value

		case b == '\'' || b == '"':
			x.scanString(b)
			x.pendingName = ""
			x.lastSig = 'a'

		case b == '`':
			tag := x.pendingName
			x.pendingName = ""
			x.scanTemplate(tag)
			x.lastSig = 'a'

		case isIdentStart(b):
			name := x.scanDottedName()
			if keywords[name] {
				x.pendingName = ""
				x.lastSig = 'k'
			} else {
				x.pendingName = name
				x.lastSig = 'a'
			}

		case b >= '0' && b <= '9':
			x.cur.bump()
			x.pendingName = ""
			x.lastSig = 'a'

		case b == '(':
			x.cur.bump()
			x.calls = append(x.calls, callFrame{name: x.pendingName})
			x.pendingName = ""
			x.lastSig = '('

		case b == ')':
			x.cur.bump()
			if len(x.calls) > callBase {
				x.calls = x.calls[:len(x.calls)-1]
			}
			x.pendingName = ""
			x.lastSig = ')'

		case b == '{':
			x.cur.bump()
			if inHole {
				depth++
			}
			x.pendingName = ""
			x.lastSig = '{'

		case b == '}':
			x.cur.bump()
			if inHole {
				if depth == 0 {
					x.calls = x.calls[:callBase]
					return
				}
				depth--
			}
			x.pendingName = ""
			x.lastSig = '}'

		case b == '<' && x.markupLikely():
			x.scanElement()
			x.pendingName = ""
			x.lastSig = 'a'

		default:
			x.cur.bump()
			x.pendingName = ""
			x.lastSig = b
		}
	}
	// Unbalanced input: drop frames this invocation opened.
	x.calls = x.calls[:callBase]
}

// markupLikely reports whether '<' at the cursor opens a markup element
// rather than a comparison. An element or fragment start is only plausible
// in expression position: after an opener, separator, keyword, or at the
// very beginning.
func (x *extractor) markupLikely() bool {
	next := x.cur.peekAt(1)
	if next != '>' && !isIdentStart(next) {
		return false
	}
	switch x.lastSig {
	case 0, '(', ',', '=', '{', '}', '?', ':', ';', '[', '&', '|', '!', 'k':
		return true
	}
	return false
}

// regexLikely mirrors markupLikely for '/' in expression position.
func (x *extractor) regexLikely() bool {
	switch x.lastSig {
	case 0, '(', ',', '=', '{', '}', '?', ':', ';', '[', '&', '|', '!', '<', '>', 'k':
		return true
	}
	return false
}

func (x *extractor) skipLineComment() {
	for !x.cur.eof() && x.cur.peek() != '\n' {
		x.cur.bump()
	}
}

func (x *extractor) skipBlockComment() {
	x.cur.bump() // '/'
	x.cur.bump() // '*'
	for !x.cur.eof() {
		if x.cur.peek() == '*' && x.cur.peekAt(1) == '/' {
			x.cur.bump()
			x.cur.bump()
			return
		}
		x.cur.bump()
	}
}

// skipRegex consumes a /regex/ literal, honoring escapes and character
// classes so a quote inside the pattern cannot leak into span pairing.
func (x *extractor) skipRegex() {
	x.cur.bump() // '/'
	inClass := false
	for !x.cur.eof() {
		b := x.cur.peek()
		if b == '\\' {
			x.cur.bump()
			x.cur.bump()
			continue
		}
		if b == '\n' {
			return // not a regex after all; leave the line boundary alone
		}
		x.cur.bump()
		switch b {
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				// trailing flags
				for isIdentByte(x.cur.peek()) {
					x.cur.bump()
				}
				return
			}
		}
	}
}

// scanString consumes a quoted literal and emits its body as a string
// span. The body offset skips the opening quote.
func (x *extractor) scanString(quote byte) {
	start := x.cur.off
	x.cur.bump() // opening quote
	for !x.cur.eof() {
		b := x.cur.peek()
		if b == '\\' {
			x.cur.bump()
			x.cur.bump()
			continue
		}
		if b == '\n' {
			x.warnMalformed(diag.ExtractUnterminatedString, start, "newline in string literal")
			return
		}
		x.cur.bump()
		if b == quote {
			x.emit(scope.SpanString, start+1, x.cur.off-1, scope.Facts{
				Calls: x.callChain(),
			})
			return
		}
	}
	x.warnMalformed(diag.ExtractUnterminatedString, start, "unterminated string literal")
}

// scanTemplate consumes a template literal, emitting one span per chunk
// between holes. Each chunk's offset skips the delimiter before it (the
// opening backtick or the hole's closing brace).
func (x *extractor) scanTemplate(tag string) {
	start := x.cur.off
	x.cur.bump() // '`'
	facts := scope.Facts{
		Calls:  x.callChain(),
		Tagged: tag != "",
		Tag:    tag,
	}
	chunkStart := x.cur.off
	for !x.cur.eof() {
		b := x.cur.peek()
		if b == '\\' {
			x.cur.bump()
			x.cur.bump()
			continue
		}
		if b == '`' {
			x.emit(scope.SpanTemplate, chunkStart, x.cur.off, facts)
			x.cur.bump()
			return
		}
		if b == '$' && x.cur.peekAt(1) == '{' {
			x.emit(scope.SpanTemplate, chunkStart, x.cur.off, facts)
			x.cur.bump() // '$'
			x.cur.bump() // '{'
			x.scanCode(true)
			chunkStart = x.cur.off
			continue
		}
		x.cur.bump()
	}
	x.warnMalformed(diag.ExtractUnterminatedTemplate, start, "unterminated template literal")
}

// warnMalformed reports a malformed-construct warning; its note points
// back at the opening delimiter so the reader sees where pairing broke.
func (x *extractor) warnMalformed(code diag.Code, start uint32, msg string) {
	open := source.Span{File: x.file.ID, Start: start, End: start + 1}
	x.reporter.Report(diag.NewWarning(code, x.spanFrom(start), msg).
		WithNote(open, "opens here"))
}

// emit records a span unless its text is empty or pure whitespace.
func (x *extractor) emit(kind scope.SpanKind, start, end uint32, facts scope.Facts) {
	if end <= start {
		return
	}
	text := x.cur.text(start, end)
	if strings.TrimSpace(text) == "" {
		return
	}
	x.out = append(x.out, Span{
		Kind:  kind,
		Text:  text,
		Base:  start,
		Facts: facts,
	})
}

// callChain returns enclosing call names innermost-first.
func (x *extractor) callChain() []string {
	var chain []string
	for i := len(x.calls) - 1; i >= 0; i-- {
		if x.calls[i].name != "" {
			chain = append(chain, x.calls[i].name)
		}
	}
	return chain
}

func (x *extractor) elementNames() []string {
	names := x.elements.Names()
	if len(names) == 0 {
		return nil
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}

func (x *extractor) spanFrom(start uint32) source.Span {
	return source.Span{File: x.file.ID, Start: start, End: x.cur.off}
}
