// Package composer implements the chunked typing engine and its decorated view.
package composer

import (
	"unicode"
	"unicode/utf8"
)

// Chunk is the unit of matching: a word plus its trailing whitespace run.
type Chunk struct {
	Text  string
	Start int // rune offset in the reference text
}

// Len returns the chunk length in runes.
func (c Chunk) Len() int {
	return utf8.RuneCountInString(c.Text)
}

// Empty reports whether the chunk carries no text.
func (c Chunk) Empty() bool {
	return c.Text == ""
}

// NextChunk cuts the leading chunk off remaining. The word run may be
// followed by end of text, which yields a chunk with no whitespace. A
// remainder that starts with whitespace yields that whitespace run alone.
func NextChunk(remaining string, offset int) Chunk {
	if remaining == "" {
		return Chunk{Start: offset}
	}
	end := 0
	inWord := true
	for end < len(remaining) {
		r, size := utf8.DecodeRuneInString(remaining[end:])
		space := unicode.IsSpace(r)
		switch {
		case end == 0:
			inWord = !space
		case inWord && space:
			inWord = false
		case !inWord && !space:
			return Chunk{Text: remaining[:end], Start: offset}
		}
		end += size
	}
	return Chunk{Text: remaining[:end], Start: offset}
}
