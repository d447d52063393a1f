package extract

import (
	"typograph/internal/diag"
	"typograph/internal/scope"
)

// scanElement consumes a markup element starting at '<': its tag, its
// attributes, and (unless self-closing) its children up to the matching
// closing tag. Fragments (<>...</>) scan as elements with an empty name.
func (x *extractor) scanElement() {
	start := x.cur.off
	x.cur.bump() // '<'

	name := ""
	if x.cur.peek() != '>' {
		name = x.scanMarkupName()
	}
	x.elements.Push(name)
	defer x.elements.Pop()

	// attributes
	for {
		x.skipMarkupSpace()
		b := x.cur.peek()
		switch {
		case x.cur.eof():
			x.warnMalformed(diag.ExtractUnclosedElement, start, "markup element is never closed")
			return

		case b == '/' && x.cur.peekAt(1) == '>':
			x.cur.bump()
			x.cur.bump()
			return

		case b == '>':
			x.cur.bump()
			x.scanChildren(start)
			return

		case b == '{':
			// spread attribute or expression container
			x.cur.bump()
			x.scanCode(true)

		case isIdentStart(b):
			x.scanAttribute()

		default:
			x.cur.bump()
		}
	}
}

// scanAttribute consumes name, optional ="value" / ='value' / ={expr}.
func (x *extractor) scanAttribute() {
	name := x.scanMarkupName()
	x.skipMarkupSpace()
	if x.cur.peek() != '=' {
		return // bare boolean attribute
	}
	x.cur.bump() // '='
	x.skipMarkupSpace()

	switch b := x.cur.peek(); {
	case b == '"' || b == '\'':
		x.scanAttrValue(name, b)
	case b == '{':
		x.cur.bump()
		x.scanCode(true)
	case b == '`':
		x.scanTemplate("")
	}
}

// scanAttrValue consumes a quoted attribute value and emits it as an
// attribute span; the offset skips the opening quote. Markup attribute
// values may contain newlines and have no escape sequences.
func (x *extractor) scanAttrValue(name string, quote byte) {
	start := x.cur.off
	x.cur.bump() // opening quote
	for !x.cur.eof() {
		if x.cur.bump() == quote {
			x.emit(scope.SpanAttr, start+1, x.cur.off-1, scope.Facts{
				Attribute: name,
				Elements:  x.elementNames(),
			})
			return
		}
	}
	x.warnMalformed(diag.ExtractUnterminatedString, start, "unterminated attribute value")
}

// scanChildren consumes element content: text runs, nested elements, and
// {expression} containers, up to the matching closing tag.
func (x *extractor) scanChildren(openStart uint32) {
	textStart := x.cur.off
	for {
		if x.cur.eof() {
			x.emitText(textStart, x.cur.off)
			x.warnMalformed(diag.ExtractUnclosedElement, openStart, "markup element is never closed")
			return
		}
		b := x.cur.peek()
		switch {
		case b == '<' && x.cur.peekAt(1) == '/':
			x.emitText(textStart, x.cur.off)
			x.cur.bump() // '<'
			x.cur.bump() // '/'
			x.scanMarkupName()
			x.skipMarkupSpace()
			if x.cur.peek() == '>' {
				x.cur.bump()
			}
			return

		case b == '<' && (isIdentStart(x.cur.peekAt(1)) || x.cur.peekAt(1) == '>'):
			x.emitText(textStart, x.cur.off)
			x.scanElement()
			textStart = x.cur.off

		case b == '{':
			x.emitText(textStart, x.cur.off)
			x.cur.bump()
			x.scanCode(true)
			textStart = x.cur.off

		default:
			x.cur.bump()
		}
	}
}

// emitText records a text-children span with the current element stack.
func (x *extractor) emitText(start, end uint32) {
	x.emit(scope.SpanText, start, end, scope.Facts{
		Elements: x.elementNames(),
	})
}

func (x *extractor) skipMarkupSpace() {
	for {
		switch x.cur.peek() {
		case ' ', '\t', '\n', '\r':
			x.cur.bump()
		default:
			return
		}
	}
}
