package composer

import (
	"strings"
	"unicode/utf8"
)

// Placeholders for markers while whitespace formatting runs. They are Unicode
// noncharacters, so they never occur in interchanged text.
const (
	caretMark          = '\uFDD0'
	selectionStartMark = '\uFDD1'
	selectionEndMark   = '\uFDD2'
)

// SpanKind tags a decorated span.
type SpanKind int

// Span kinds in display order.
const (
	SpanCorrect SpanKind = iota
	SpanWrong
	SpanRest
)

func (k SpanKind) String() string {
	switch k {
	case SpanCorrect:
		return "correct"
	case SpanWrong:
		return "wrong"
	case SpanRest:
		return "rest"
	default:
		return "unknown"
	}
}

// Span is one tagged section of the active chunk.
type Span struct {
	Kind  SpanKind
	Parts []Part
}

// Text returns the span content without markers.
func (s Span) Text() string {
	var b strings.Builder
	for _, p := range s.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// Decorated is the renderable view of the active chunk: the correct, wrong
// and rest spans in that order.
type Decorated struct {
	Spans []Span
}

// Span returns the span of the given kind.
func (d Decorated) Span(kind SpanKind) Span {
	for _, s := range d.Spans {
		if s.Kind == kind {
			return s
		}
	}
	return Span{Kind: kind}
}

// Decorate renders the active chunk of state with caret and selection
// markers. It is a pure function of its arguments.
func Decorate(state TypingState, sel Selection, showWhitespace bool) Decorated {
	return DecorateResult(Evaluate(state.Chunk, state.Buffer), sel, showWhitespace)
}

// DecorateResult is Decorate for an already evaluated match result.
func DecorateResult(r MatchResult, sel Selection, showWhitespace bool) Decorated {
	correct := []rune(sanitize(r.Correct))
	wrong := []rune(sanitize(r.Wrong))
	l1 := len(correct)
	sel = sel.Clamp(l1 + len(wrong))

	correctMarks := markers{}
	if sel.Collapsed() {
		if sel.Start <= l1 {
			correctMarks.add(sel.Start, caretMark)
		}
	} else if sel.Start < l1 {
		correctMarks.add(sel.Start, selectionStartMark)
		if sel.Caret == sel.Start {
			correctMarks.add(sel.Start, caretMark)
		}
		if sel.End <= l1 {
			if sel.Caret == sel.End {
				correctMarks.add(sel.End, caretMark)
			}
			correctMarks.add(sel.End, selectionEndMark)
		} else {
			correctMarks.add(l1, selectionEndMark)
		}
	}

	wrongMarks := markers{}
	start, end := sel.Start-l1, sel.End-l1
	if sel.Collapsed() {
		if start > 0 {
			wrongMarks.add(start, caretMark)
		}
	} else if end > 0 {
		if start >= 0 {
			wrongMarks.add(start, selectionStartMark)
			if sel.Caret == sel.Start {
				wrongMarks.add(start, caretMark)
			}
		} else {
			wrongMarks.add(0, selectionStartMark)
		}
		if sel.Caret == sel.End {
			wrongMarks.add(end, caretMark)
		}
		wrongMarks.add(end, selectionEndMark)
	}

	return Decorated{Spans: []Span{
		{Kind: SpanCorrect, Parts: expandMarkers(FormatWhitespace(correctMarks.apply(correct), showWhitespace))},
		{Kind: SpanWrong, Parts: expandMarkers(FormatWhitespace(wrongMarks.apply(wrong), showWhitespace))},
		{Kind: SpanRest, Parts: FormatWhitespace(r.Rest, showWhitespace)},
	}}
}

// markers maps a rune offset to the placeholders inserted before it.
type markers map[int][]rune

func (m markers) add(pos int, mark rune) {
	m[pos] = append(m[pos], mark)
}

func (m markers) apply(runes []rune) string {
	if len(m) == 0 {
		return string(runes)
	}
	var b strings.Builder
	for i := 0; i <= len(runes); i++ {
		for _, mark := range m[i] {
			b.WriteRune(mark)
		}
		if i < len(runes) {
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}

// expandMarkers replaces placeholders inside text parts with marker parts.
// Whitespace parts never contain placeholders.
func expandMarkers(parts []Part) []Part {
	out := make([]Part, 0, len(parts))
	for _, p := range parts {
		if p.Kind != PartText || !strings.ContainsFunc(p.Text, isMark) {
			out = append(out, p)
			continue
		}
		text := p.Text
		for text != "" {
			i := strings.IndexFunc(text, isMark)
			if i < 0 {
				out = append(out, Part{Kind: PartText, Text: text})
				break
			}
			if i > 0 {
				out = append(out, Part{Kind: PartText, Text: text[:i]})
			}
			r, size := utf8.DecodeRuneInString(text[i:])
			out = append(out, Part{Kind: markKind(r)})
			text = text[i+size:]
		}
	}
	return out
}

func isMark(r rune) bool {
	return r == caretMark || r == selectionStartMark || r == selectionEndMark
}

func markKind(r rune) PartKind {
	switch r {
	case selectionStartMark:
		return PartSelectionStart
	case selectionEndMark:
		return PartSelectionEnd
	default:
		return PartCaret
	}
}

// sanitize keeps typed placeholders from being read back as markers.
func sanitize(s string) string {
	if !strings.ContainsFunc(s, isMark) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isMark(r) {
			return utf8.RuneError
		}
		return r
	}, s)
}
