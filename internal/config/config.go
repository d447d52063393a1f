// Package config loads typograph.toml and decodes it once into the
// immutable structures the engine consumes. Structural validation lives
// here, never in the core: the gate and scanner only ever see well-formed
// options.
package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"typograph/internal/engine"
	"typograph/internal/scope"
)

// FileName is the manifest discovered by walking up from the start
// directory.
const FileName = "typograph.toml"

type fileConfig struct {
	Replace replaceConfig `toml:"replace"`
	Scope   scopeConfig   `toml:"scope"`
}

type replaceConfig struct {
	Ellipsis    *bool `toml:"ellipsis"`
	Emdash      *bool `toml:"emdash"`
	Endash      *bool `toml:"endash"`
	Quotes      *bool `toml:"quotes"`
	Apostrophes *bool `toml:"apostrophes"`
	Primes      *bool `toml:"primes"`
}

type scopeConfig struct {
	Strings    stringsConfig    `toml:"strings"`
	Templates  templatesConfig  `toml:"templates"`
	Attributes attributesConfig `toml:"attributes"`
	Children   childrenConfig   `toml:"children"`
}

type stringsConfig struct {
	Mode      string   `toml:"mode"`
	Functions []string `toml:"functions"`
}

type templatesConfig struct {
	Mode     string   `toml:"mode"`
	Tags     []string `toml:"tags"`
	Untagged bool     `toml:"untagged"`
}

type attributesConfig struct {
	Mode       string   `toml:"mode"`
	Attributes []string `toml:"attributes"`
}

type childrenConfig struct {
	Mode       string   `toml:"mode"`
	Components []string `toml:"components"`
}

// Find walks up from startDir looking for typograph.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and decodes one typograph.toml into engine options.
func Load(path string) (engine.Options, error) {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return engine.Options{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	opts, err := decode(cfg)
	if err != nil {
		return engine.Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Discover finds the nearest manifest above startDir and loads it, falling
// back to defaults when none exists. The returned path is "" on fallback.
func Discover(startDir string) (engine.Options, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return engine.Options{}, "", err
	}
	if !ok {
		return engine.DefaultOptions(), "", nil
	}
	opts, err := Load(path)
	return opts, path, err
}

func decode(cfg fileConfig) (engine.Options, error) {
	opts := engine.DefaultOptions()

	setToggle := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setToggle(&opts.Toggles.Ellipsis, cfg.Replace.Ellipsis)
	setToggle(&opts.Toggles.Emdash, cfg.Replace.Emdash)
	setToggle(&opts.Toggles.Endash, cfg.Replace.Endash)
	setToggle(&opts.Toggles.Quotes, cfg.Replace.Quotes)
	setToggle(&opts.Toggles.Apostrophes, cfg.Replace.Apostrophes)
	setToggle(&opts.Toggles.Primes, cfg.Replace.Primes)

	var err error
	if opts.Scope.Strings, err = decodeStrings(cfg.Scope.Strings); err != nil {
		return engine.Options{}, err
	}
	if opts.Scope.Templates, err = decodeTemplates(cfg.Scope.Templates); err != nil {
		return engine.Options{}, err
	}
	if opts.Scope.Attributes, err = decodeAttributes(cfg.Scope.Attributes); err != nil {
		return engine.Options{}, err
	}
	if opts.Scope.Children, err = decodeChildren(cfg.Scope.Children); err != nil {
		return engine.Options{}, err
	}
	return opts, nil
}

// decodeMode maps a mode string onto the trinary. restricted is the
// per-scope spelling of the allowlist mode ("functions", "tags", "list").
func decodeMode(section, raw, restricted string) (scope.Mode, error) {
	switch raw {
	case "", "off":
		return scope.ModeOff, nil
	case "all":
		return scope.ModeOn, nil
	case restricted:
		return scope.ModeRestricted, nil
	}
	return scope.ModeOff, fmt.Errorf("[scope.%s]: unknown mode %q (want off|all|%s)", section, raw, restricted)
}

func decodeStrings(c stringsConfig) (scope.StringScope, error) {
	mode, err := decodeMode("strings", c.Mode, "functions")
	if err != nil {
		return scope.StringScope{}, err
	}
	if mode != scope.ModeRestricted && len(c.Functions) > 0 {
		return scope.StringScope{}, errors.New(`[scope.strings]: functions requires mode = "functions"`)
	}
	if mode == scope.ModeRestricted && len(c.Functions) == 0 {
		return scope.StringScope{}, errors.New(`[scope.strings]: mode "functions" needs a non-empty functions list`)
	}
	return scope.StringScope{Mode: mode, Functions: c.Functions}, nil
}

func decodeTemplates(c templatesConfig) (scope.TemplateScope, error) {
	mode, err := decodeMode("templates", c.Mode, "tags")
	if err != nil {
		return scope.TemplateScope{}, err
	}
	if mode != scope.ModeRestricted && (len(c.Tags) > 0 || c.Untagged) {
		return scope.TemplateScope{}, errors.New(`[scope.templates]: tags/untagged require mode = "tags"`)
	}
	if mode == scope.ModeRestricted && len(c.Tags) == 0 && !c.Untagged {
		return scope.TemplateScope{}, errors.New(`[scope.templates]: mode "tags" needs tags or untagged = true`)
	}
	return scope.TemplateScope{Mode: mode, Tags: c.Tags, Untagged: c.Untagged}, nil
}

func decodeAttributes(c attributesConfig) (scope.AttrScope, error) {
	if c.Mode == "" && len(c.Attributes) == 0 {
		// section absent: keep the stock allowlist
		return scope.AttrScope{Mode: scope.ModeRestricted, Attributes: scope.DefaultAttributes}, nil
	}
	mode, err := decodeMode("attributes", c.Mode, "list")
	if err != nil {
		return scope.AttrScope{}, err
	}
	if mode != scope.ModeRestricted && len(c.Attributes) > 0 {
		return scope.AttrScope{}, errors.New(`[scope.attributes]: attributes requires mode = "list"`)
	}
	if mode == scope.ModeRestricted && len(c.Attributes) == 0 {
		return scope.AttrScope{}, errors.New(`[scope.attributes]: mode "list" needs a non-empty attributes list`)
	}
	return scope.AttrScope{Mode: mode, Attributes: c.Attributes}, nil
}

func decodeChildren(c childrenConfig) (scope.ChildScope, error) {
	if c.Mode == "" && len(c.Components) == 0 {
		// section absent: children stay enabled everywhere
		return scope.ChildScope{Mode: scope.ModeOn}, nil
	}
	mode, err := decodeMode("children", c.Mode, "list")
	if err != nil {
		return scope.ChildScope{}, err
	}
	if mode != scope.ModeRestricted && len(c.Components) > 0 {
		return scope.ChildScope{}, errors.New(`[scope.children]: components requires mode = "list"`)
	}
	if mode == scope.ModeRestricted && len(c.Components) == 0 {
		return scope.ChildScope{}, errors.New(`[scope.children]: mode "list" needs a non-empty components list`)
	}
	return scope.ChildScope{Mode: mode, Components: c.Components}, nil
}

// Digest hashes the decoded options for cache invalidation. Two configs
// with the same digest gate and toggle identically.
func Digest(opts engine.Options) [32]byte {
	h := sha256.New()
	writeBool := func(b bool) {
		if b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	writeList := func(mode scope.Mode, items []string) {
		h.Write([]byte{byte(mode)})
		for _, s := range items {
			h.Write([]byte(s))
			h.Write([]byte{0})
		}
		h.Write([]byte{0xFF})
	}

	writeBool(opts.Toggles.Ellipsis)
	writeBool(opts.Toggles.Emdash)
	writeBool(opts.Toggles.Endash)
	writeBool(opts.Toggles.Quotes)
	writeBool(opts.Toggles.Apostrophes)
	writeBool(opts.Toggles.Primes)

	writeList(opts.Scope.Strings.Mode, opts.Scope.Strings.Functions)
	writeList(opts.Scope.Templates.Mode, opts.Scope.Templates.Tags)
	writeBool(opts.Scope.Templates.Untagged)
	writeList(opts.Scope.Attributes.Mode, opts.Scope.Attributes.Attributes)
	writeList(opts.Scope.Children.Mode, opts.Scope.Children.Components)

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// DefaultTOML is the commented manifest written by `typograph init`.
const DefaultTOML = `# typograph configuration

[replace]
ellipsis = true
emdash = true
endash = true
quotes = true
apostrophes = true
primes = true

# Which string literals to check. mode: off | all | functions
[scope.strings]
mode = "off"
# functions = ["t", "i18n.t"]

# Which template literals to check. mode: off | all | tags
[scope.templates]
mode = "off"
# tags = ["md"]
# untagged = false

# Which markup attributes to check. mode: off | all | list
[scope.attributes]
mode = "list"
attributes = ["title", "alt", "label", "aria-label", "aria-describedby"]

# Which markup text content to check. mode: off | all | list
[scope.children]
mode = "all"
# components = ["p", "Text"]
`
