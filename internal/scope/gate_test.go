package scope

import "testing"

func TestAllowsStringOffAndOn(t *testing.T) {
	facts := &Facts{Calls: []string{"t"}}

	off := &Config{Strings: StringScope{Mode: ModeOff}}
	if Allows(SpanString, off, facts) {
		t.Error("ModeOff must reject")
	}

	on := &Config{Strings: StringScope{Mode: ModeOn}}
	if !Allows(SpanString, on, &Facts{}) {
		t.Error("ModeOn must accept regardless of facts")
	}
}

func TestAllowsStringRestrictedWalksCallChain(t *testing.T) {
	cfg := &Config{Strings: StringScope{Mode: ModeRestricted, Functions: []string{"t"}}}

	tests := []struct {
		name  string
		calls []string
		want  bool
	}{
		{"direct call", []string{"t"}, true},
		{"not listed", []string{"console.log"}, false},
		{"outer call matches", []string{"console.log", "t"}, true},
		{"no enclosing call", nil, false},
		{"dotted name requires exact entry", []string{"i18n.t"}, false},
	}
	for _, tt := range tests {
		facts := &Facts{Calls: tt.calls}
		if got := Allows(SpanString, cfg, facts); got != tt.want {
			t.Errorf("%s: Allows = %v, want %v", tt.name, got, tt.want)
		}
	}

	dotted := &Config{Strings: StringScope{Mode: ModeRestricted, Functions: []string{"i18n.t"}}}
	if !Allows(SpanString, dotted, &Facts{Calls: []string{"i18n.t"}}) {
		t.Error("dotted member call must match its full name")
	}
}

func TestAllowsTemplate(t *testing.T) {
	cfg := &Config{Templates: TemplateScope{
		Mode:     ModeRestricted,
		Tags:     []string{"md"},
		Untagged: true,
	}}

	if !Allows(SpanTemplate, cfg, &Facts{Tagged: true, Tag: "md"}) {
		t.Error("listed tag must be in scope")
	}
	if Allows(SpanTemplate, cfg, &Facts{Tagged: true, Tag: "sql"}) {
		t.Error("unlisted tag must be rejected even with Untagged set")
	}
	if !Allows(SpanTemplate, cfg, &Facts{}) {
		t.Error("untagged template must be in scope when Untagged is set")
	}

	noUntagged := &Config{Templates: TemplateScope{Mode: ModeRestricted, Tags: []string{"md"}}}
	if Allows(SpanTemplate, noUntagged, &Facts{}) {
		t.Error("untagged template must be rejected when Untagged is unset")
	}
}

func TestAllowsAttr(t *testing.T) {
	cfg := DefaultConfig()

	if !Allows(SpanAttr, &cfg, &Facts{Attribute: "title"}) {
		t.Error("default allowlist must include title")
	}
	if !Allows(SpanAttr, &cfg, &Facts{Attribute: "aria-label"}) {
		t.Error("default allowlist must include aria-label")
	}
	if Allows(SpanAttr, &cfg, &Facts{Attribute: "href"}) {
		t.Error("href must not be in the default allowlist")
	}

	ns := &Config{Attributes: AttrScope{Mode: ModeRestricted, Attributes: []string{"xml:lang"}}}
	if !Allows(SpanAttr, ns, &Facts{Attribute: "xml:lang"}) {
		t.Error("namespaced attribute must match its ns:name form")
	}
}

func TestAllowsChildInnermostOnly(t *testing.T) {
	cfg := &Config{Children: ChildScope{Mode: ModeRestricted, Components: []string{"p"}}}

	if !Allows(SpanText, cfg, &Facts{Elements: []string{"div", "p"}}) {
		t.Error("text inside <p> must be in scope")
	}
	if Allows(SpanText, cfg, &Facts{Elements: []string{"p", "div"}}) {
		t.Error("only the innermost element counts")
	}
	if Allows(SpanText, cfg, &Facts{}) {
		t.Error("no enclosing element must reject under ModeRestricted")
	}
}

func TestAllowsChildLowercaseFallback(t *testing.T) {
	cfg := &Config{Children: ChildScope{Mode: ModeRestricted, Components: []string{"text"}}}
	if !Allows(SpanText, cfg, &Facts{Elements: []string{"Text"}}) {
		t.Error("lower-cased element name must match the allowlist")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Children.Mode != ModeOn {
		t.Error("children must default to on")
	}
	if cfg.Strings.Mode != ModeOff || cfg.Templates.Mode != ModeOff {
		t.Error("strings and templates must default to off")
	}
	if cfg.Attributes.Mode != ModeRestricted {
		t.Error("attributes must default to restricted")
	}
}

func TestElementStack(t *testing.T) {
	var st ElementStack
	if st.Innermost() != "" {
		t.Error("empty stack has no innermost element")
	}
	st.Push("div")
	st.Push("p")
	if st.Innermost() != "p" {
		t.Errorf("expected innermost p, got %q", st.Innermost())
	}
	if got := st.Names(); len(got) != 2 || got[0] != "div" || got[1] != "p" {
		t.Errorf("unexpected stack contents: %v", got)
	}
	st.Pop()
	if st.Innermost() != "div" {
		t.Errorf("expected innermost div after pop, got %q", st.Innermost())
	}
	st.Pop()
	st.Pop() // popping empty is a no-op
	if st.Len() != 0 {
		t.Errorf("expected empty stack, got %d", st.Len())
	}
}
