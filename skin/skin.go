// Package skin implements per-work presentation skins: a mapping from CSS
// class names to colors scraped from a work's custom style block, with a
// deterministic fallback palette for classes the skin does not name.
package skin

import (
	"hash/fnv"
	"strings"
)

// Color holds normalized RGB channels in [0, 1].
type Color struct {
	R, G, B float64
}

// Black is the degraded-rendering fallback for malformed color values.
var Black = Color{}

// ParseHex converts a 6-digit hex color string (with or without leading '#')
// to a Color. Surrounding whitespace is ignored. Malformed input yields black
// instead of an error - color resolution must never abort a render.
func ParseHex(s string) Color {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Black
	}
	var channels [3]int
	for i := range channels {
		hi, ok1 := hexDigit(s[i*2])
		lo, ok2 := hexDigit(s[i*2+1])
		if !ok1 || !ok2 {
			return Black
		}
		channels[i] = hi<<4 | lo
	}
	return Color{
		R: float64(channels[0]) / 255,
		G: float64(channels[1]) / 255,
		B: float64(channels[2]) / 255,
	}
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// classColor derives a stable fallback color from the class name alone.
// Work skins use arbitrary class names we cannot enumerate in advance, so the
// same class must map to the same color in every work and every run. FNV-1a
// is used because it is stable across processes (unlike map hash seeds).
func classColor(name string) Color {
	h := fnv.New32a()
	h.Write([]byte(name))
	v := h.Sum32()
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// WorkSkin is an immutable class name to raw hex color mapping scraped once
// per work. The zero value is the documented default: every lookup misses and
// the deterministic fallback color is used.
type WorkSkin struct {
	colors map[string]string
}

// New builds a WorkSkin from raw class to hex-string rules. The input map is
// copied so the skin stays immutable no matter what the caller does later.
func New(colors map[string]string) WorkSkin {
	if len(colors) == 0 {
		return WorkSkin{}
	}
	m := make(map[string]string, len(colors))
	for k, v := range colors {
		m[k] = v
	}
	return WorkSkin{colors: m}
}

// Len returns the number of classes the skin defines.
func (s WorkSkin) Len() int {
	return len(s.colors)
}

// Lookup returns the raw (unparsed) color value for a class name.
// Matching is exact and case-sensitive.
func (s WorkSkin) Lookup(class string) (string, bool) {
	v, ok := s.colors[class]
	return v, ok
}

// Classes returns the class names the skin defines, in unspecified order.
func (s WorkSkin) Classes() []string {
	out := make([]string, 0, len(s.colors))
	for k := range s.colors {
		out = append(out, k)
	}
	return out
}

// Resolve returns the concrete color for a class name: the skin's explicit
// mapping when present (malformed hex degrading to black), otherwise the
// deterministic hash-derived fallback.
func (s WorkSkin) Resolve(class string) Color {
	if raw, ok := s.colors[class]; ok {
		return ParseHex(raw)
	}
	return classColor(class)
}
