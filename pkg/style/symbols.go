package style

import "slices"

// Symbols is the marker vocabulary, in the order procedural assignment and
// editors present it.
var Symbols = []string{
	"circle", "square", "diamond", "triangle-up", "triangle-down",
	"cross", "x", "star", "hexagon", "pentagon",
	"triangle-left", "triangle-right", "hexagon2",
	"star-diamond", "asterisk",
}

// IsSymbol reports whether s is in the marker vocabulary.
func IsSymbol(s string) bool {
	return slices.Contains(Symbols, s)
}

// SymbolIndex returns the position of s in [Symbols], or 0 when s is unknown.
func SymbolIndex(s string) int {
	return max(slices.Index(Symbols, s), 0)
}
