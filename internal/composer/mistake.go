package composer

import "unicode/utf8"

// Mistake describes the current divergence inside the active chunk.
type Mistake struct {
	Index    int // rune offset in the reference text where typing went wrong
	Original string
	Correct  string
	Wrong    string
}

// MistakeTracker turns match results into mistake notifications.
type MistakeTracker struct {
	last *Mistake
}

// Active returns the mistake of the current mismatch run, if any.
func (t *MistakeTracker) Active() *Mistake {
	return t.last
}

// Observe records a match result for chunk. It returns the mistake to report
// and whether the host must be notified: on every diverging result, and once
// when a mismatch run ends.
func (t *MistakeTracker) Observe(chunk Chunk, r MatchResult) (*Mistake, bool) {
	if r.HasMistake() {
		t.last = &Mistake{
			Index:    chunk.Start + utf8.RuneCountInString(r.Correct),
			Original: chunk.Text,
			Correct:  r.Correct,
			Wrong:    r.Wrong,
		}
		return t.last, true
	}
	if t.last == nil {
		return nil, false
	}
	t.last = nil
	return nil, true
}

// Clear drops the active mistake and reports whether one was active.
func (t *MistakeTracker) Clear() bool {
	active := t.last != nil
	t.last = nil
	return active
}
