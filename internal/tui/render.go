package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typist/internal/composer"
)

const tabWidth = 4

const (
	spaceGlyph      = "·"
	tabGlyph        = "→"
	newlineGlyph    = "↵"
	wrongSpaceGlyph = "•"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	whitespaceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	selectionColor   = lipgloss.Color("#3A3F5C")
)

// runeBuilder turns decorated parts into display cells. Markers do not take a
// cell: the caret underlines the cell that follows it and a selection paints
// the background of the cells between its bounds.
type runeBuilder struct {
	out       []styledRune
	selecting bool
	caret     bool
}

func buildStyledRunes(prefix string, view composer.Decorated, remainder string, showWhitespace bool) []styledRune {
	b := &runeBuilder{}
	b.addParts(composer.FormatWhitespace(prefix, showWhitespace), correctStyle, false)
	for _, span := range view.Spans {
		switch span.Kind {
		case composer.SpanCorrect:
			b.addParts(span.Parts, correctStyle, false)
		case composer.SpanWrong:
			b.addParts(span.Parts, incorrectStyle, true)
		default:
			b.addParts(span.Parts, currentWordStyle, false)
		}
	}
	b.selecting = false
	b.addParts(composer.FormatWhitespace(remainder, showWhitespace), pendingStyle, false)
	if b.caret {
		b.cell(" ", pendingStyle, 1, true)
	}
	return b.out
}

func (b *runeBuilder) addParts(parts []composer.Part, style lipgloss.Style, wrong bool) {
	glyphStyle := whitespaceStyle
	if wrong {
		glyphStyle = incorrectStyle
	}
	for _, p := range parts {
		switch p.Kind {
		case composer.PartCaret:
			b.caret = true
		case composer.PartSelectionStart:
			b.selecting = true
		case composer.PartSelectionEnd:
			b.selecting = false
		case composer.PartSpace:
			for range p.Text {
				b.cell(spaceGlyph, glyphStyle, 1, true)
			}
		case composer.PartTab:
			for range p.Text {
				b.cell(tabGlyph+strings.Repeat(" ", tabWidth-1), glyphStyle, tabWidth, true)
			}
		case composer.PartNewline:
			for range p.Text {
				b.cell(newlineGlyph, glyphStyle, 1, false)
				b.lineBreak(style)
			}
		default:
			b.addText(p.Text, style, wrong)
		}
	}
}

func (b *runeBuilder) addText(text string, style lipgloss.Style, wrong bool) {
	for _, r := range text {
		switch r {
		case '\n':
			b.lineBreak(style)
		case '\t':
			b.cell(strings.Repeat(" ", tabWidth), style, tabWidth, true)
		case ' ':
			if wrong {
				b.cell(wrongSpaceGlyph, style, 1, true)
				continue
			}
			b.cell(" ", style, 1, true)
		default:
			b.cell(string(r), style, runewidth.RuneWidth(r), false)
		}
	}
}

func (b *runeBuilder) cell(glyph string, style lipgloss.Style, width int, isSpace bool) {
	item := styledRune{glyph: glyph, width: width, isSpace: isSpace}
	if b.selecting {
		style = style.Background(selectionColor)
		item.selected = true
	}
	if b.caret {
		style = style.Underline(true)
		item.caret = true
		b.caret = false
	}
	item.s = style.Render(glyph)
	b.out = append(b.out, item)
}

func (b *runeBuilder) lineBreak(style lipgloss.Style) {
	// A caret right before a hard break still needs a visible cell.
	if b.caret {
		b.cell(" ", style, 1, true)
	}
	b.out = append(b.out, styledRune{isBreak: true})
}

func plainText(runes []styledRune) string {
	var sb strings.Builder
	for _, item := range runes {
		if item.isBreak {
			sb.WriteRune('\n')
			continue
		}
		sb.WriteString(item.glyph)
	}
	return sb.String()
}
