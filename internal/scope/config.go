package scope

// Mode is the trinary state of one scope option: disabled, enabled for
// everything, or enabled with an allowlist. Decoded once at configuration
// load; the gate only pattern-matches on it.
type Mode uint8

const (
	ModeOff Mode = iota
	ModeOn
	ModeRestricted
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeOn:
		return "on"
	case ModeRestricted:
		return "restricted"
	}
	return "unknown"
}

// StringScope gates string-literal spans. Functions lists call names (plain
// or dotted, e.g. "i18n.t") whose arguments stay in scope under
// ModeRestricted.
type StringScope struct {
	Mode      Mode
	Functions []string
}

// TemplateScope gates template-literal spans. Under ModeRestricted a tagged
// template is in scope iff its tag name is listed; an untagged one iff
// Untagged is set.
type TemplateScope struct {
	Mode     Mode
	Tags     []string
	Untagged bool
}

// AttrScope gates markup attribute values by attribute name, including the
// namespaced ns:name form.
type AttrScope struct {
	Mode       Mode
	Attributes []string
}

// ChildScope gates markup text content by the innermost enclosing element
// name. The only scope enabled by default.
type ChildScope struct {
	Mode       Mode
	Components []string
}

// Config bundles the four scope options. Parsed once per run, immutable
// afterwards.
type Config struct {
	Strings    StringScope
	Templates  TemplateScope
	Attributes AttrScope
	Children   ChildScope
}

// DefaultAttributes are the attribute names checked out of the box: the
// ones that carry user-visible prose.
var DefaultAttributes = []string{"title", "alt", "label", "aria-label", "aria-describedby"}

// DefaultConfig returns the stock configuration: children on, attributes
// restricted to DefaultAttributes, strings and templates off.
func DefaultConfig() Config {
	return Config{
		Strings:    StringScope{Mode: ModeOff},
		Templates:  TemplateScope{Mode: ModeOff},
		Attributes: AttrScope{Mode: ModeRestricted, Attributes: DefaultAttributes},
		Children:   ChildScope{Mode: ModeOn},
	}
}
