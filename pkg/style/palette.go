package style

import (
	"fmt"
	"math/rand/v2"
)

// PaletteSeed seeds every procedural color and symbol draw.
const PaletteSeed = uint64(42)

// generator draws procedural colors and symbols. Each call site creates its
// own so results depend only on the order of draws.
type generator struct {
	rng  *rand.Rand
	perm []int
}

func newGenerator() *generator {
	return &generator{rng: rand.New(rand.NewPCG(PaletteSeed, PaletteSeed^0xdeadbeef))}
}

// color draws an independent 24-bit color.
func (g *generator) color() string {
	return fmt.Sprintf("#%06x", g.rng.Uint32()&0xffffff)
}

// symbol draws from the vocabulary without replacement, starting a fresh
// permutation once every symbol has been handed out.
func (g *generator) symbol() string {
	if len(g.perm) == 0 {
		g.perm = g.rng.Perm(len(Symbols))
	}
	s := Symbols[g.perm[0]]
	g.perm = g.perm[1:]
	return s
}

// symbolAvoiding draws a symbol not in used and marks it. When used covers
// the whole vocabulary it is cleared and drawing starts over.
func (g *generator) symbolAvoiding(used map[string]bool) string {
	choices := make([]string, 0, len(Symbols))
	for _, s := range Symbols {
		if !used[s] {
			choices = append(choices, s)
		}
	}
	if len(choices) == 0 {
		clear(used)
		choices = Symbols
	}
	s := choices[g.rng.IntN(len(choices))]
	used[s] = true
	return s
}

// Generate assigns a procedural color and symbol to each category in order.
// Symbols are distinct until the vocabulary is exhausted and then cycle.
// The result depends only on the categories and their order.
func Generate(categories []string) (colors, symbols map[string]string) {
	colors = make(map[string]string, len(categories))
	symbols = make(map[string]string, len(categories))
	g := newGenerator()
	for _, c := range categories {
		colors[c] = g.color()
		symbols[c] = g.symbol()
	}
	return colors, symbols
}
