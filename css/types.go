// Package css parses the small CSS subset the archive allows in per-work
// style blocks into structured rules. It is deliberately not a general CSS
// engine: work skins are flat lists of simple selectors with a handful of
// text-styling properties, and everything else is skipped with a warning.
package css

import (
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "bold", "italic", "center", etc.
}

// IsNumeric returns true if the value has a numeric component,
// including explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	if v.Raw != "" && v.Keyword == "" {
		first := rune(v.Raw[0])
		if unicode.IsDigit(first) || first == '.' || first == '-' || first == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword with no numeric component.
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Selector represents a parsed CSS selector with its components.
type Selector struct {
	Raw      string    // Original selector string
	Element  string    // Element name (e.g., "p", "em") or empty
	ID       string    // ID without hash (e.g., "workskin") or empty
	Class    string    // Class name without dot or empty
	Ancestor *Selector // Ancestor for descendant selectors ("#workskin .glow" -> Ancestor is "#workskin")
}

// IsSimple returns true if this is a simple selector (element, id, class, or
// a combination on one compound).
func (s Selector) IsSimple() bool {
	return s.Element != "" || s.Class != "" || s.ID != ""
}

// IsDescendant returns true if this is a descendant selector.
func (s Selector) IsDescendant() bool {
	return s.Ancestor != nil
}

// ScopedTo reports whether the selector or any of its ancestors carries the
// given ID. Archive work skins arrive scoped under "#workskin".
func (s Selector) ScopedTo(id string) bool {
	for sel := &s; sel != nil; sel = sel.Ancestor {
		if sel.ID == id {
			return true
		}
	}
	return false
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   Selector
	Properties map[string]Value
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// Stylesheet represents a parsed work-skin stylesheet.
type Stylesheet struct {
	Rules    []Rule   // Rules in source order
	Warnings []string // Warnings for skipped/unsupported constructs
}

// RulesByClass returns all rules whose rightmost compound names the given
// class, in source order.
func (s *Stylesheet) RulesByClass(class string) []Rule {
	var out []Rule
	for _, r := range s.Rules {
		if r.Selector.Class == class {
			out = append(out, r)
		}
	}
	return out
}

// ClassColors extracts class -> raw color value mappings from all rules
// scoped under the given ID (or any rule when scope is empty). Later rules
// win, matching CSS source-order override semantics. The values are kept raw
// and unparsed - interpretation is the color resolver's job.
func (s *Stylesheet) ClassColors(scope string) map[string]string {
	colors := make(map[string]string)
	for _, r := range s.Rules {
		if r.Selector.Class == "" {
			continue
		}
		if scope != "" && !r.Selector.ScopedTo(scope) && r.Selector.ID != "" {
			continue
		}
		val, ok := r.GetProperty("color")
		if !ok {
			continue
		}
		raw := strings.TrimSpace(val.Raw)
		if raw == "" {
			continue
		}
		colors[r.Selector.Class] = raw
	}
	return colors
}
