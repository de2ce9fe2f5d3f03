package composer

import "unicode/utf8"

// MatchResult splits typed input against the active chunk.
type MatchResult struct {
	Correct string // longest common prefix of chunk text and input
	Wrong   string // input after Correct
	Rest    string // chunk text after Correct
}

// Typed returns the already typed region, Correct followed by Wrong.
func (r MatchResult) Typed() string {
	return r.Correct + r.Wrong
}

// HasMistake reports whether the input diverges from the chunk.
func (r MatchResult) HasMistake() bool {
	return r.Wrong != ""
}

// Evaluate compares the whole input buffer with the chunk text rune by rune.
// It is total: any pair of strings, empty ones included, yields a result.
func Evaluate(chunk Chunk, input string) MatchResult {
	n := commonPrefixLen(chunk.Text, input)
	return MatchResult{
		Correct: input[:n],
		Wrong:   input[n:],
		Rest:    chunk.Text[n:],
	}
}

// commonPrefixLen returns the byte length of the longest common prefix made
// of whole runes.
func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) {
		ra, sa := utf8.DecodeRuneInString(a[n:])
		rb, sb := utf8.DecodeRuneInString(b[n:])
		if ra != rb || sa != sb {
			break
		}
		if ra == utf8.RuneError && a[n] != b[n] {
			break
		}
		n += sa
	}
	return n
}
