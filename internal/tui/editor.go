package tui

import (
	"strings"

	"github.com/verte-zerg/typist/internal/composer"
)

// The editing helpers below compute the next buffer and selection for a key
// press. They never touch the session; the model forwards the results as
// text-change and selection-change events.

func replaceSelection(buf string, sel composer.Selection, insert string) (string, composer.Selection) {
	runes := []rune(buf)
	sel = sel.Clamp(len(runes))
	var b strings.Builder
	b.WriteString(string(runes[:sel.Start]))
	b.WriteString(insert)
	b.WriteString(string(runes[sel.End:]))
	return b.String(), composer.CaretAt(sel.Start + len([]rune(insert)))
}

func deleteBackward(buf string, sel composer.Selection) (string, composer.Selection) {
	runes := []rune(buf)
	sel = sel.Clamp(len(runes))
	if !sel.Collapsed() {
		return replaceSelection(buf, sel, "")
	}
	if sel.Start == 0 {
		return buf, sel
	}
	return replaceSelection(buf, composer.Selection{Start: sel.Start - 1, End: sel.Start, Caret: sel.Start}, "")
}

func deleteForward(buf string, sel composer.Selection) (string, composer.Selection) {
	runes := []rune(buf)
	sel = sel.Clamp(len(runes))
	if !sel.Collapsed() {
		return replaceSelection(buf, sel, "")
	}
	if sel.End == len(runes) {
		return buf, sel
	}
	return replaceSelection(buf, composer.Selection{Start: sel.Start, End: sel.Start + 1, Caret: sel.Start + 1}, "")
}

// moveCaret moves the caret to pos. With extend the opposite edge of the
// selection stays anchored; without it a non-empty selection collapses
// towards the movement.
func moveCaret(buf string, sel composer.Selection, pos int, extend bool) composer.Selection {
	n := len([]rune(buf))
	sel = sel.Clamp(n)
	if pos < 0 {
		pos = 0
	}
	if pos > n {
		pos = n
	}
	if !extend {
		return composer.CaretAt(pos)
	}
	anchor := sel.Start
	if sel.Caret == sel.Start && !sel.Collapsed() {
		anchor = sel.End
	}
	dir := composer.DirectionForward
	if pos < anchor {
		dir = composer.DirectionBackward
	}
	return composer.NewSelection(anchor, pos, dir)
}

// stepCaret moves by delta runes; an unextended move out of a selection lands
// on the selection edge in that direction.
func stepCaret(buf string, sel composer.Selection, delta int, extend bool) composer.Selection {
	if !extend && !sel.Collapsed() {
		if delta < 0 {
			return composer.CaretAt(sel.Start)
		}
		return composer.CaretAt(sel.End)
	}
	return moveCaret(buf, sel, sel.Caret+delta, extend)
}

func selectionDirection(sel composer.Selection) composer.Direction {
	switch {
	case sel.Collapsed():
		return composer.DirectionNone
	case sel.Caret == sel.Start:
		return composer.DirectionBackward
	default:
		return composer.DirectionForward
	}
}
