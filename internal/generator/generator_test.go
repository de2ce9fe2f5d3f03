package generator

import (
	"strings"
	"testing"
	"unicode"
)

func TestTextWordCount(t *testing.T) {
	g := NewWithSeed(1)
	text := g.Text([]string{"alpha", "beta", "gamma"}, Options{Words: 10})
	if got := len(strings.Fields(text)); got != 10 {
		t.Fatalf("expected 10 words, got %d", got)
	}
	if strings.Contains(text, "  ") {
		t.Fatalf("expected single spaces between words: %q", text)
	}
}

func TestGenerateAlwaysDecorates(t *testing.T) {
	g := NewWithSeed(2)
	words := g.Generate([]string{"word"}, Options{Words: 5, CapsPct: 1, PunctPct: 1, PunctSet: []rune{'!'}})
	for _, w := range words {
		if w != "Word!" {
			t.Fatalf("expected capitalized punctuated word, got %q", w)
		}
	}
}

func TestGenerateNeverDecorates(t *testing.T) {
	g := NewWithSeed(3)
	for _, w := range g.Generate([]string{"word"}, Options{Words: 5, PunctSet: []rune{'!'}}) {
		if unicode.IsUpper([]rune(w)[0]) || strings.HasSuffix(w, "!") {
			t.Fatalf("expected plain word, got %q", w)
		}
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	g := NewWithSeed(4)
	if got := g.Text(nil, Options{Words: 3}); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}
