package style

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerate_Deterministic(t *testing.T) {
	cats := []string{"Abitibi", "Barberton", "Pilbara"}
	c1, s1 := Generate(cats)
	c2, s2 := Generate(cats)
	if diff := cmp.Diff(c1, c2); diff != "" {
		t.Errorf("colors differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(s1, s2); diff != "" {
		t.Errorf("symbols differ between runs (-first +second):\n%s", diff)
	}
	for _, c := range cats {
		if !ValidHex(c1[c]) {
			t.Errorf("color %q for %s is not #rrggbb", c1[c], c)
		}
	}
}

func TestGenerate_Empty(t *testing.T) {
	colors, symbols := Generate(nil)
	if len(colors) != 0 || len(symbols) != 0 {
		t.Errorf("Generate(nil) = %v, %v; want empty maps", colors, symbols)
	}
}

func TestGenerate_SymbolCycling(t *testing.T) {
	n := 2*len(Symbols) + 3
	cats := make([]string, n)
	for i := range cats {
		cats[i] = fmt.Sprintf("g%02d", i)
	}
	_, symbols := Generate(cats)
	if len(symbols) != n {
		t.Fatalf("got %d symbols, want %d", len(symbols), n)
	}

	// Each full pass over the vocabulary hands out every symbol once.
	for pass := 0; pass < 2; pass++ {
		seen := map[string]bool{}
		for _, c := range cats[pass*len(Symbols) : (pass+1)*len(Symbols)] {
			seen[symbols[c]] = true
		}
		if len(seen) != len(Symbols) {
			t.Errorf("pass %d used %d distinct symbols, want %d", pass, len(seen), len(Symbols))
		}
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		name string
		i, n int
		v    float64
	}{
		{"single location", 0, 1, 0.6},
		{"first of three", 0, 3, 0.6},
		{"middle of three", 1, 3, 0.8},
		{"last of three", 2, 3, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, v := hsv(t, Shade("#ff0000", tt.i, tt.n))
			if !near(v, tt.v, 0.01) {
				t.Errorf("Shade() brightness = %v, want %v", v, tt.v)
			}
		})
	}
	if got := Shade("not-a-color", 0, 1); got != "not-a-color" {
		t.Errorf("Shade() of bad base = %q, want it unchanged", got)
	}
}

func TestValidHex(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#1f77b4", true},
		{"#1F77B4", true},
		{"1f77b4", false},
		{"#fff", false},
		{"#gggggg", false},
		{"# 12345", false},
		{"#12 345", false},
		{"#+1234", false},
		{"#12345 ", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidHex(tt.in); got != tt.want {
			t.Errorf("ValidHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBaseTable(t *testing.T) {
	bt := DefaultBaseTable()
	if diff := cmp.Diff([]string{"Deccan", "MORB", "OIB", "arc", "sediments"}, bt.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if s, ok := bt.Lookup("Deccan"); !ok || s.Symbol != "cross" || s.Size != 30 {
		t.Errorf("Lookup(Deccan) = %+v, %v", s, ok)
	}
	if _, ok := bt.Lookup("morb"); ok {
		t.Error("Lookup should be case-sensitive")
	}

	tests := []struct {
		name  string
		extra map[string]Seed
	}{
		{"bad symbol", map[string]Seed{"x": {Symbol: "blob", BaseColor: "#000000", Size: 5}}},
		{"bad color", map[string]Seed{"x": {Symbol: "star", BaseColor: "red", Size: 5}}},
		{"bad size", map[string]Seed{"x": {Symbol: "star", BaseColor: "#000000"}}},
		{"no name", map[string]Seed{"": {Symbol: "star", BaseColor: "#000000", Size: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBaseTable(tt.extra); err == nil {
				t.Error("NewBaseTable() should fail")
			}
		})
	}

	ext, err := NewBaseTable(map[string]Seed{"MORB": {Symbol: "star", BaseColor: "#123456", Size: 12}})
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := ext.Lookup("MORB"); s.Symbol != "star" {
		t.Errorf("extra entry should replace built-in, got %+v", s)
	}
	if s, _ := DefaultBaseTable().Lookup("MORB"); s.Symbol != "circle" {
		t.Error("extending mutated the built-in table")
	}
}
