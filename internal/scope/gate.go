package scope

import (
	"slices"
	"strings"
)

// Allows decides whether a span is eligible for scanning at all.
// Off always rejects, On always accepts; Restricted consults the
// allowlist relevant to the span kind.
func Allows(kind SpanKind, cfg *Config, facts *Facts) bool {
	switch kind {
	case SpanString:
		return allowsString(&cfg.Strings, facts)
	case SpanTemplate:
		return allowsTemplate(&cfg.Templates, facts)
	case SpanAttr:
		return allowsAttr(&cfg.Attributes, facts)
	case SpanText:
		return allowsChild(&cfg.Children, facts)
	}
	return false
}

func allowsString(sc *StringScope, facts *Facts) bool {
	switch sc.Mode {
	case ModeOn:
		return true
	case ModeRestricted:
		// Walk the call chain outward; the first listed name settles it.
		for _, name := range facts.Calls {
			if slices.Contains(sc.Functions, name) {
				return true
			}
		}
		return false
	}
	return false
}

func allowsTemplate(sc *TemplateScope, facts *Facts) bool {
	switch sc.Mode {
	case ModeOn:
		return true
	case ModeRestricted:
		if facts.Tagged {
			// A tag outside the allowlist rejects even when Untagged is set.
			return slices.Contains(sc.Tags, facts.Tag)
		}
		return sc.Untagged
	}
	return false
}

func allowsAttr(sc *AttrScope, facts *Facts) bool {
	switch sc.Mode {
	case ModeOn:
		return true
	case ModeRestricted:
		return slices.Contains(sc.Attributes, facts.Attribute)
	}
	return false
}

func allowsChild(sc *ChildScope, facts *Facts) bool {
	switch sc.Mode {
	case ModeOn:
		return true
	case ModeRestricted:
		// Only the innermost enclosing element counts, regardless of depth.
		if len(facts.Elements) == 0 {
			return false
		}
		name := facts.Elements[len(facts.Elements)-1]
		return slices.Contains(sc.Components, name) ||
			slices.Contains(sc.Components, strings.ToLower(name))
	}
	return false
}
