package extract

// Identifier and name scanning. Dotted member chains (i18n.t, Foo.Bar) are
// joined with "."; markup names additionally allow ns:name and dashed
// custom-element forms.

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		b >= 0x80 // any non-ASCII byte counts as an identifier byte
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// keywords that look like call or tag names but never are.
var keywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "catch": true, "finally": true,
	"return": true, "throw": true, "new": true, "delete": true,
	"typeof": true, "instanceof": true, "in": true, "of": true,
	"var": true, "let": true, "const": true, "function": true,
	"class": true, "extends": true, "yield": true, "await": true,
	"import": true, "export": true, "default": true,
}

// scanIdent consumes one identifier and returns it.
func (x *extractor) scanIdent() string {
	start := x.cur.off
	for isIdentByte(x.cur.peek()) {
		x.cur.bump()
	}
	return x.cur.text(start, x.cur.off)
}

// scanDottedName consumes an identifier chain like a, a.b or a.b.c.
// The chain must be tight: no whitespace around the dots.
func (x *extractor) scanDottedName() string {
	name := x.scanIdent()
	for x.cur.peek() == '.' && isIdentStart(x.cur.peekAt(1)) {
		x.cur.bump() // '.'
		name += "." + x.scanIdent()
	}
	return name
}

// scanMarkupName consumes an element or attribute name: dotted member
// chains, namespaced ns:name, and dashed names (aria-label, my-element).
func (x *extractor) scanMarkupName() string {
	start := x.cur.off
	for {
		b := x.cur.peek()
		if isIdentByte(b) || b == '-' {
			x.cur.bump()
			continue
		}
		if (b == '.' || b == ':') && isIdentStart(x.cur.peekAt(1)) {
			x.cur.bump()
			continue
		}
		break
	}
	return x.cur.text(start, x.cur.off)
}
