// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typist/internal/composer"
	"github.com/verte-zerg/typist/internal/model"
	statsPkg "github.com/verte-zerg/typist/internal/stats"
	"github.com/verte-zerg/typist/internal/texts"
)

// RandomText is the catalog name of the generated practice text. Its body is
// regenerated every time it is started.
const RandomText = "Random"

const progressWidth = 30

// Store persists finished sessions and provides history for the footer.
type Store interface {
	InsertSession(ctx context.Context, stats model.SessionStats, mistakes []model.MistakeRecord) (int64, error)
	ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error)
}

// Options configures the typing model.
type Options struct {
	Texts          *texts.Catalog
	Active         string
	ShowWhitespace *bool // nil keeps each text's own default
	Store          Store
	Logger         *slog.Logger
	Generate       func() string
}

type focusArea int

const (
	focusEditor focusArea = iota
	focusTabs
)

// Model implements the Bubble Tea typing UI around a composer session.
type Model struct {
	catalog            *texts.Catalog
	active             int
	tabCursor          int
	whitespaceOverride *bool
	showWhitespace     bool
	store              Store
	logger             *slog.Logger
	generate           func() string
	paste              func() (string, error)
	now                func() time.Time

	session *composer.Session
	keys    keyMap
	help    help.Model
	focus   focusArea

	width  int
	height int

	entered    string
	hasMistake bool
	mistakes   []model.MistakeRecord
	started    bool
	startedAt  time.Time
	finished   bool

	lastWPM float64
	lastAcc float64
	hasLast bool

	allWPM      float64
	allAcc      float64
	allChars    int
	allMistakes int
	allDuration int64
}

var (
	footerStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	tabStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Padding(0, 1)
	activeTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(selectionColor).Bold(true).Padding(0, 1)
	progressStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	progressMistakeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	progressTrackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
)

// NewModel constructs a typing TUI model positioned on the requested text.
func NewModel(opts Options) (*Model, error) {
	if opts.Texts == nil || opts.Texts.Len() == 0 {
		return nil, errors.New("no texts to practice")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		catalog:            opts.Texts,
		whitespaceOverride: opts.ShowWhitespace,
		store:              opts.Store,
		logger:             logger,
		generate:           opts.Generate,
		paste:              clipboard.ReadAll,
		now:                time.Now,
		keys:               defaultKeyMap(),
		help:               help.New(),
	}
	if opts.Active != "" {
		i := opts.Texts.Index(opts.Active)
		if i < 0 {
			return nil, fmt.Errorf("unknown text %q", opts.Active)
		}
		m.active = i
	}
	m.session = composer.NewSession("",
		composer.WithCallbacks(composer.Callbacks{
			OnInput:    m.onInput,
			OnMistake:  m.onMistake,
			OnComplete: m.finishSession,
		}),
		composer.WithFocuser(m),
	)
	m.startText()
	m.loadFooterStats()
	return m, nil
}

// Focus implements composer.Focuser: the editor takes keyboard input again.
func (m *Model) Focus() {
	m.focus = focusEditor
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.focus == focusTabs {
			m.updateTabs(msg)
			return m, nil
		}
		m.updateEditor(msg)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateTabs(msg tea.KeyMsg) {
	n := m.catalog.Len()
	switch {
	case key.Matches(msg, m.keys.Left), msg.String() == "h":
		m.tabCursor = (m.tabCursor - 1 + n) % n
	case key.Matches(msg, m.keys.Right), msg.String() == "l":
		m.tabCursor = (m.tabCursor + 1) % n
	case key.Matches(msg, m.keys.Enter):
		m.selectText(m.tabCursor)
	case key.Matches(msg, m.keys.Tabs), key.Matches(msg, m.keys.Tab):
		m.session.Focus()
	}
}

func (m *Model) updateEditor(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Tabs):
		m.focus = focusTabs
		m.tabCursor = m.active
		return
	case key.Matches(msg, m.keys.NextText):
		m.selectText(m.active + 1)
		return
	case key.Matches(msg, m.keys.PrevText):
		m.selectText(m.active - 1)
		return
	case key.Matches(msg, m.keys.Restart):
		m.startText()
		return
	case key.Matches(msg, m.keys.Whitespace):
		m.showWhitespace = !m.showWhitespace
		return
	}
	if m.finished {
		if key.Matches(msg, m.keys.Enter) {
			m.startText()
		}
		return
	}

	buf := m.session.Buffer()
	sel := m.session.Selection()
	n := utf8.RuneCountInString(buf)
	switch {
	case key.Matches(msg, m.keys.Paste):
		m.pasteClipboard()
	case key.Matches(msg, m.keys.SelectAll):
		m.applySelection(composer.NewSelection(0, n, composer.DirectionForward))
	case key.Matches(msg, m.keys.Backspace):
		m.applyEdit(deleteBackward(buf, sel))
	case key.Matches(msg, m.keys.Delete):
		m.applyEdit(deleteForward(buf, sel))
	case key.Matches(msg, m.keys.Enter):
		m.applyEdit(replaceSelection(buf, sel, "\n"))
	case key.Matches(msg, m.keys.Tab):
		m.markStarted()
		m.session.InsertTab()
	case key.Matches(msg, m.keys.Left):
		m.applySelection(stepCaret(buf, sel, -1, false))
	case key.Matches(msg, m.keys.Right):
		m.applySelection(stepCaret(buf, sel, 1, false))
	case key.Matches(msg, m.keys.ShiftLeft):
		m.applySelection(stepCaret(buf, sel, -1, true))
	case key.Matches(msg, m.keys.ShiftRight):
		m.applySelection(stepCaret(buf, sel, 1, true))
	case key.Matches(msg, m.keys.Home):
		m.applySelection(moveCaret(buf, sel, 0, false))
	case key.Matches(msg, m.keys.End):
		m.applySelection(moveCaret(buf, sel, n, false))
	case key.Matches(msg, m.keys.ShiftHome):
		m.applySelection(moveCaret(buf, sel, 0, true))
	case key.Matches(msg, m.keys.ShiftEnd):
		m.applySelection(moveCaret(buf, sel, n, true))
	case msg.Type == tea.KeySpace:
		m.applyEdit(replaceSelection(buf, sel, " "))
	case msg.Type == tea.KeyRunes:
		text := string(msg.Runes)
		if msg.Paste {
			text = normalizePaste(text)
		}
		m.applyEdit(replaceSelection(buf, sel, text))
	}
}

// applyEdit delivers a text change and, if the chunk is still active, the
// caret or selection that goes with it.
func (m *Model) applyEdit(text string, sel composer.Selection) {
	if text == m.session.Buffer() {
		m.applySelection(sel)
		return
	}
	m.markStarted()
	if m.session.Input(text) != composer.Accepted {
		return
	}
	m.applySelection(sel)
}

func (m *Model) applySelection(sel composer.Selection) {
	if sel == m.session.Selection() {
		return
	}
	m.session.Select(sel.Start, sel.End, selectionDirection(sel))
}

func (m *Model) pasteClipboard() {
	text, err := m.paste()
	if err != nil {
		m.logger.Warn("failed to read clipboard", "err", err)
		return
	}
	text = normalizePaste(text)
	if text == "" {
		return
	}
	m.applyEdit(replaceSelection(m.session.Buffer(), m.session.Selection(), text))
}

func normalizePaste(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

func (m *Model) markStarted() {
	if m.started {
		return
	}
	m.started = true
	m.startedAt = m.now()
	m.logger.Info("session started", "text", m.currentText().Name)
}

func (m *Model) currentText() texts.Text {
	return m.catalog.At(m.active)
}

// selectText switches to the text at i, wrapping around the catalog.
func (m *Model) selectText(i int) {
	n := m.catalog.Len()
	m.active = ((i % n) + n) % n
	m.tabCursor = m.active
	m.startText()
}

// startText resets the session on the active text and gives the editor focus.
func (m *Model) startText() {
	t := m.currentText()
	if t.Name == RandomText && m.generate != nil {
		t.Body = m.generate()
		m.catalog.Add(t)
	}
	m.showWhitespace = t.ShowWhitespace
	if m.whitespaceOverride != nil {
		m.showWhitespace = *m.whitespaceOverride
	}
	m.session.Reset(t.Body)
	m.entered = ""
	m.hasMistake = false
	m.mistakes = nil
	m.started = false
	m.startedAt = time.Time{}
	m.finished = m.session.Done()
	m.session.Focus()
}

func (m *Model) onInput(entered string) {
	m.entered = entered
}

// onMistake records the first report of each mistake run.
func (m *Model) onMistake(mk *composer.Mistake) {
	if mk != nil && !m.hasMistake {
		m.mistakes = append(m.mistakes, model.MistakeRecord{
			Index:    mk.Index,
			Original: mk.Original,
			Correct:  mk.Correct,
			Wrong:    mk.Wrong,
		})
		m.logger.Debug("mistake",
			"text", m.currentText().Name,
			"index", mk.Index,
			"original", mk.Original,
			"correct", mk.Correct,
			"wrong", mk.Wrong,
		)
	}
	m.hasMistake = mk != nil
}

func (m *Model) finishSession() {
	endedAt := m.now()
	if !m.started {
		m.startedAt = endedAt
	}
	stats := model.SessionStats{
		StartedAt:  m.startedAt,
		EndedAt:    endedAt,
		TextName:   m.currentText().Name,
		Chars:      utf8.RuneCountInString(m.session.Reference()),
		Mistakes:   len(m.mistakes),
		DurationMs: endedAt.Sub(m.startedAt).Milliseconds(),
	}
	m.finished = true

	if m.store != nil {
		if _, err := m.store.InsertSession(context.Background(), stats, m.mistakes); err != nil {
			m.logger.Error("failed to save session", "err", err)
		}
	}
	wpm, _, acc := statsPkg.SessionMetrics(stats.Chars, stats.Mistakes, stats.DurationMs)
	m.logger.Info("session finished",
		"text", stats.TextName,
		"chars", stats.Chars,
		"mistakes", stats.Mistakes,
		"duration_ms", stats.DurationMs,
		"wpm", wpm,
	)
	m.lastWPM = wpm
	m.lastAcc = acc
	m.hasLast = true
	m.allChars += stats.Chars
	m.allMistakes += stats.Mistakes
	m.allDuration += stats.DurationMs
	m.recomputeAllTime()
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	sessions, err := m.store.ListSessions(context.Background(), model.StatsConfig{})
	if err != nil {
		m.logger.Error("failed to load session stats", "err", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	last := sessions[len(sessions)-1]
	m.lastWPM, _, m.lastAcc = statsPkg.SessionMetrics(last.Chars, last.Mistakes, last.DurationMs)
	m.hasLast = true
	for _, s := range sessions {
		m.allChars += s.Chars
		m.allMistakes += s.Mistakes
		m.allDuration += s.DurationMs
	}
	m.recomputeAllTime()
}

func (m *Model) recomputeAllTime() {
	m.allWPM, _, m.allAcc = statsPkg.SessionMetrics(m.allChars, m.allMistakes, m.allDuration)
}

// View implements tea.Model.
func (m *Model) View() string {
	tabs := m.renderTabs()
	styledRunes := m.bodyRunes()
	if m.width == 0 || m.height == 0 {
		return tabs + "\n" + renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	if m.height < 5 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	header := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, tabs)
	body := lipgloss.Place(m.width, m.height-3, lipgloss.Center, lipgloss.Center, content)
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer, helpLine)
}

func (m *Model) bodyRunes() []styledRune {
	if m.session.Done() {
		return buildStyledRunes(m.session.Reference(), composer.Decorated{}, "", m.showWhitespace)
	}
	typing := m.session.Typing()
	return buildStyledRunes(typing.CompletedPrefix, m.session.View(m.showWhitespace), m.session.Remainder(), m.showWhitespace)
}

func (m *Model) renderTabs() string {
	names := m.catalog.Names()
	parts := make([]string, len(names))
	for i, name := range names {
		style := tabStyle
		if i == m.active {
			style = activeTabStyle
		}
		if m.focus == focusTabs && i == m.tabCursor {
			style = style.Underline(true)
		}
		parts[i] = style.Render(name)
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderFooter() string {
	total := utf8.RuneCountInString(m.session.Reference())
	segments := []string{}
	if bar := renderProgress(utf8.RuneCountInString(m.entered), total, progressWidth, m.hasMistake); bar != "" {
		segments = append(segments, bar)
	}
	if m.finished && total > 0 {
		segments = append(segments, "Done, enter to restart")
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc*100))
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allWPM, m.allAcc*100))
	return footerStyle.Render(strings.Join(segments, "  "))
}

// renderProgress draws the share of the reference typed correctly. The bar
// turns red while a mistake is active.
func renderProgress(done, total, width int, mistake bool) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	if done > total {
		done = total
	}
	filled := done * width / total
	style := progressStyle
	if mistake {
		style = progressMistakeStyle
	}
	bar := style.Render(strings.Repeat("█", filled)) + progressTrackStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d%%", bar, done*100/total)
}
