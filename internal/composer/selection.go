package composer

// Direction is the direction a selection was made in.
type Direction int

// Selection directions as reported by the host input surface.
const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

// Selection is a range over the typed region of the active chunk, measured
// in runes. Caret is always Start or End.
type Selection struct {
	Start int
	End   int
	Caret int
}

// NewSelection builds a selection from host offsets. Reversed offsets are
// reordered; the caret sits at Start only for backward selections.
func NewSelection(start, end int, dir Direction) Selection {
	if start > end {
		start, end = end, start
	}
	caret := end
	if dir == DirectionBackward {
		caret = start
	}
	return Selection{Start: start, End: end, Caret: caret}
}

// CaretAt returns a collapsed selection at pos.
func CaretAt(pos int) Selection {
	return Selection{Start: pos, End: pos, Caret: pos}
}

// Collapsed reports whether the selection is a bare caret.
func (s Selection) Collapsed() bool {
	return s.Start == s.End
}

// Clamp bounds the selection to [0, n] and keeps the caret on an edge.
func (s Selection) Clamp(n int) Selection {
	backward := s.Caret == s.Start && s.Start != s.End
	s.Start = clampInt(s.Start, 0, n)
	s.End = clampInt(s.End, s.Start, n)
	if backward {
		s.Caret = s.Start
	} else {
		s.Caret = s.End
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
