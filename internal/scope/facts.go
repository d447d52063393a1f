package scope

// SpanKind tells the gate which kind of extracted span it is judging.
type SpanKind uint8

const (
	SpanString SpanKind = iota
	SpanTemplate
	SpanAttr
	SpanText
)

func (k SpanKind) String() string {
	switch k {
	case SpanString:
		return "string"
	case SpanTemplate:
		return "template"
	case SpanAttr:
		return "attribute"
	case SpanText:
		return "text"
	}
	return "unknown"
}

// Facts are the per-span contextual facts supplied by the host traversal.
// Ephemeral: recomputed for every span, never retained by the gate.
type Facts struct {
	// Calls holds enclosing call-expression names, innermost first.
	// Dotted member calls are joined with ".", e.g. "i18n.t".
	Calls []string
	// Elements is a read-only view of the host's element-name stack,
	// innermost last.
	Elements []string
	// Tagged reports whether a template span's template carries a tag.
	Tagged bool
	// Tag is the tag's resolved dotted name when Tagged is set.
	Tag string
	// Attribute is the attribute name for SpanAttr spans, in ns:name form
	// when namespaced.
	Attribute string
}

// ElementStack tracks enclosing markup element names during a traversal.
// Owned by the host: pushed on element enter, popped on exit, in strict
// nesting order. Never share one stack across concurrent traversals.
type ElementStack struct {
	names []string
}

func (s *ElementStack) Push(name string) {
	s.names = append(s.names, name)
}

func (s *ElementStack) Pop() {
	if len(s.names) > 0 {
		s.names = s.names[:len(s.names)-1]
	}
}

func (s *ElementStack) Len() int {
	return len(s.names)
}

// Innermost returns the top of the stack, or "" when empty.
func (s *ElementStack) Innermost() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[len(s.names)-1]
}

// Names exposes the stack innermost-last for Facts. The returned slice
// aliases the stack; callers must not hold it across a push or pop.
func (s *ElementStack) Names() []string {
	return s.names
}
