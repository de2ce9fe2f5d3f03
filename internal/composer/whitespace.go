package composer

import "strings"

// PartKind classifies a piece of decorated text.
type PartKind int

// Part kinds. Markers carry no text.
const (
	PartText PartKind = iota
	PartSpace
	PartTab
	PartNewline
	PartCaret
	PartSelectionStart
	PartSelectionEnd
)

func (k PartKind) String() string {
	switch k {
	case PartText:
		return "text"
	case PartSpace:
		return "space"
	case PartTab:
		return "tab"
	case PartNewline:
		return "newline"
	case PartCaret:
		return "caret"
	case PartSelectionStart:
		return "selection-start"
	case PartSelectionEnd:
		return "selection-end"
	default:
		return "unknown"
	}
}

// IsMarker reports whether the kind is a zero-width marker.
func (k PartKind) IsMarker() bool {
	return k == PartCaret || k == PartSelectionStart || k == PartSelectionEnd
}

// Part is a classified run of text or a marker.
type Part struct {
	Kind PartKind
	Text string
}

// FormatWhitespace classifies text for display. When enabled, every space,
// tab and newline becomes its own part and other runes are grouped into text
// parts; when disabled the text passes through as one part.
func FormatWhitespace(text string, enabled bool) []Part {
	if text == "" {
		return nil
	}
	if !enabled {
		return []Part{{Kind: PartText, Text: text}}
	}
	var parts []Part
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			parts = append(parts, Part{Kind: PartText, Text: run.String()})
			run.Reset()
		}
	}
	for _, r := range text {
		kind := PartText
		switch r {
		case ' ':
			kind = PartSpace
		case '\t':
			kind = PartTab
		case '\n':
			kind = PartNewline
		}
		if kind == PartText {
			run.WriteRune(r)
			continue
		}
		flush()
		parts = append(parts, Part{Kind: kind, Text: string(r)})
	}
	flush()
	return parts
}
