package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typist/internal/logging"
	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/texts"
)

type fakeStore struct {
	history  []model.SessionAggregate
	sessions []model.SessionStats
	mistakes [][]model.MistakeRecord
	err      error
}

func (f *fakeStore) InsertSession(_ context.Context, stats model.SessionStats, mistakes []model.MistakeRecord) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.sessions = append(f.sessions, stats)
	f.mistakes = append(f.mistakes, append([]model.MistakeRecord(nil), mistakes...))
	return int64(len(f.sessions)), nil
}

func (f *fakeStore) ListSessions(_ context.Context, _ model.StatsConfig) ([]model.SessionAggregate, error) {
	return f.history, nil
}

func newTestModel(t *testing.T, st *fakeStore, list ...texts.Text) *Model {
	t.Helper()
	if len(list) == 0 {
		list = []texts.Text{{Name: "One", Body: "ab cd"}, {Name: "Two", Body: "xy"}}
	}
	m, err := NewModel(Options{Texts: texts.NewCatalog(list...), Store: st, Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return m
}

func typeText(m *Model, text string) {
	for _, r := range text {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, keyType tea.KeyType) {
	m.Update(tea.KeyMsg{Type: keyType})
}

func TestNewModelRequiresTexts(t *testing.T) {
	if _, err := NewModel(Options{}); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
	catalog := texts.NewCatalog(texts.Text{Name: "One", Body: "a"})
	if _, err := NewModel(Options{Texts: catalog, Active: "missing"}); err == nil {
		t.Fatalf("expected error for unknown text")
	}
}

func TestTypingWholeTextSavesSession(t *testing.T) {
	st := &fakeStore{}
	m := newTestModel(t, st)

	typeText(m, "ab cd")

	if !m.finished {
		t.Fatalf("expected session to be finished")
	}
	if m.entered != "ab cd" {
		t.Fatalf("expected entered text to be complete, got %q", m.entered)
	}
	if len(st.sessions) != 1 {
		t.Fatalf("expected 1 saved session, got %d", len(st.sessions))
	}
	got := st.sessions[0]
	if got.TextName != "One" || got.Chars != 5 || got.Mistakes != 0 {
		t.Fatalf("unexpected session stats: %+v", got)
	}
	if got.DurationMs <= 0 {
		t.Fatalf("expected positive duration, got %d", got.DurationMs)
	}
	if !m.hasLast {
		t.Fatalf("expected last session metrics")
	}
}

func TestMistakeRunsRecordedOnce(t *testing.T) {
	st := &fakeStore{}
	m := newTestModel(t, st)

	typeText(m, "ax")
	if !m.hasMistake || len(m.mistakes) != 1 {
		t.Fatalf("expected one active mistake, got %v %d", m.hasMistake, len(m.mistakes))
	}
	if rec := m.mistakes[0]; rec.Index != 1 || rec.Wrong != "x" || rec.Original != "ab " {
		t.Fatalf("unexpected mistake record: %+v", rec)
	}
	typeText(m, "y")
	if len(m.mistakes) != 1 {
		t.Fatalf("expected same mistake run, got %d records", len(m.mistakes))
	}
	press(m, tea.KeyBackspace)
	press(m, tea.KeyBackspace)
	if m.hasMistake {
		t.Fatalf("expected mistake to clear after correction")
	}
	typeText(m, "z")
	if len(m.mistakes) != 2 {
		t.Fatalf("expected a second mistake run, got %d", len(m.mistakes))
	}
	press(m, tea.KeyBackspace)
	typeText(m, "b cd")
	if len(st.mistakes) != 1 || len(st.mistakes[0]) != 2 {
		t.Fatalf("expected 2 stored mistakes, got %+v", st.mistakes)
	}
	if st.sessions[0].Mistakes != 2 {
		t.Fatalf("expected mistake count 2, got %d", st.sessions[0].Mistakes)
	}
}

func TestSaveFailureIsLoggedNotFatal(t *testing.T) {
	st := &fakeStore{err: errors.New("disk full")}
	m := newTestModel(t, st)
	typeText(m, "ab cd")
	if !m.finished || !m.hasLast {
		t.Fatalf("expected session to finish despite store error")
	}
}

func TestSwitchTextResetsHostState(t *testing.T) {
	m := newTestModel(t, &fakeStore{})
	typeText(m, "ax")

	press(m, tea.KeyCtrlN)

	if m.currentText().Name != "Two" {
		t.Fatalf("expected second text, got %q", m.currentText().Name)
	}
	if m.entered != "" || m.hasMistake || len(m.mistakes) != 0 {
		t.Fatalf("expected host state reset, got %q %v %d", m.entered, m.hasMistake, len(m.mistakes))
	}
	if m.session.Buffer() != "" || m.session.Reference() != "xy" {
		t.Fatalf("expected fresh session on new text")
	}

	press(m, tea.KeyCtrlP)
	if m.currentText().Name != "One" {
		t.Fatalf("expected wrap back to first text, got %q", m.currentText().Name)
	}
}

func TestTabBarFocusAndSelect(t *testing.T) {
	m := newTestModel(t, &fakeStore{})

	press(m, tea.KeyEsc)
	if m.focus != focusTabs {
		t.Fatalf("expected tab bar focus")
	}
	typeText(m, "a")
	if m.session.Buffer() != "" {
		t.Fatalf("typing must not reach the editor while tabs are focused")
	}
	press(m, tea.KeyRight)
	press(m, tea.KeyEnter)
	if m.focus != focusEditor {
		t.Fatalf("expected editor focus after selecting a text")
	}
	if m.currentText().Name != "Two" {
		t.Fatalf("expected second text, got %q", m.currentText().Name)
	}
	typeText(m, "x")
	if m.entered != "x" {
		t.Fatalf("expected typing to resume, got %q", m.entered)
	}
}

func TestPasteFromClipboard(t *testing.T) {
	m := newTestModel(t, &fakeStore{})
	m.paste = func() (string, error) { return "ab ", nil }

	press(m, tea.KeyCtrlV)

	if got := m.session.Typing().CompletedPrefix; got != "ab " {
		t.Fatalf("expected pasted chunk to commit, got %q", got)
	}

	m.paste = func() (string, error) { return "", errors.New("no clipboard") }
	press(m, tea.KeyCtrlV)
	if m.session.Buffer() != "" {
		t.Fatalf("expected clipboard error to leave buffer untouched")
	}
}

func TestBracketedPasteNormalizesNewlines(t *testing.T) {
	m := newTestModel(t, &fakeStore{}, texts.Text{Name: "Code", Body: "a\nb"})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\r\n"), Paste: true})
	if got := m.session.Typing().CompletedPrefix; got != "a\n" {
		t.Fatalf("expected pasted line to commit, got %q", got)
	}
}

func TestSelectionReplace(t *testing.T) {
	m := newTestModel(t, &fakeStore{})
	typeText(m, "ax")
	press(m, tea.KeyShiftLeft)
	sel := m.session.Selection()
	if sel.Start != 1 || sel.End != 2 || sel.Caret != 1 {
		t.Fatalf("expected backward selection over x, got %+v", sel)
	}
	typeText(m, "b")
	if m.session.Buffer() != "ab" || m.hasMistake {
		t.Fatalf("expected selection replaced, got %q", m.session.Buffer())
	}
	if m.session.Selection().Caret != 2 {
		t.Fatalf("expected caret after replacement, got %+v", m.session.Selection())
	}
}

func TestTabAndEnterInsertWhitespace(t *testing.T) {
	m := newTestModel(t, &fakeStore{}, texts.Text{Name: "Code", Body: "\tif x\n\treturn"})
	press(m, tea.KeyTab)
	if got := m.session.Typing().CompletedPrefix; got != "\t" {
		t.Fatalf("expected tab chunk committed, got %q", got)
	}
	typeText(m, "if x")
	press(m, tea.KeyEnter)
	if got := m.session.Buffer(); got != "x\n" {
		t.Fatalf("expected newline in buffer, got %q", got)
	}
	press(m, tea.KeyTab)
	if got := m.session.Typing().CompletedPrefix; got != "\tif x\n\t" {
		t.Fatalf("expected newline chunk committed, got %q", got)
	}
}

func TestRandomTextRegenerates(t *testing.T) {
	n := 0
	catalog := texts.NewCatalog(texts.Text{Name: RandomText})
	m, err := NewModel(Options{
		Texts:  catalog,
		Logger: logging.Discard(),
		Generate: func() string {
			n++
			return fmt.Sprintf("word%d", n)
		},
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if m.session.Reference() != "word1" {
		t.Fatalf("expected generated text, got %q", m.session.Reference())
	}
	press(m, tea.KeyCtrlR)
	if m.session.Reference() != "word2" {
		t.Fatalf("expected regenerated text, got %q", m.session.Reference())
	}
}

func TestWhitespaceDefaultsAndToggle(t *testing.T) {
	code := texts.Text{Name: "Code", Body: "a\tb", ShowWhitespace: true}
	m := newTestModel(t, &fakeStore{}, code)
	if !m.showWhitespace {
		t.Fatalf("expected text default to show whitespace")
	}
	press(m, tea.KeyCtrlW)
	if m.showWhitespace {
		t.Fatalf("expected toggle to hide whitespace")
	}

	off := false
	m, err := NewModel(Options{Texts: texts.NewCatalog(code), ShowWhitespace: &off, Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if m.showWhitespace {
		t.Fatalf("expected override to hide whitespace")
	}
}

func TestFinishedSessionRestartsOnEnter(t *testing.T) {
	m := newTestModel(t, &fakeStore{}, texts.Text{Name: "One", Body: "ab"})
	typeText(m, "ab")
	if !m.finished {
		t.Fatalf("expected finished session")
	}
	typeText(m, "c")
	if m.session.Buffer() != "" {
		t.Fatalf("expected input ignored after completion")
	}
	press(m, tea.KeyEnter)
	if m.finished || m.entered != "" || m.session.Done() {
		t.Fatalf("expected restart on enter")
	}
}

func TestRenderFooterFormats(t *testing.T) {
	st := &fakeStore{history: []model.SessionAggregate{
		{Chars: 100, Mistakes: 0, DurationMs: 60000},
	}}
	m := newTestModel(t, st)
	typeText(m, "a")

	out := m.renderFooter()
	if !containsAll(out, []string{"20%", "Last 20.0 WPM", "100.0%", "All-time 20.0 WPM"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestViewRendersTabsAndText(t *testing.T) {
	m := newTestModel(t, &fakeStore{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	out := m.View()
	if !containsAll(out, []string{"One", "Two"}) {
		t.Fatalf("expected tab names in view: %s", out)
	}
	if !strings.Contains(plainText(m.bodyRunes()), "ab cd") {
		t.Fatalf("expected reference text in body")
	}
}

func TestRenderProgress(t *testing.T) {
	if got := renderProgress(0, 0, 10, false); got != "" {
		t.Fatalf("expected empty progress for empty text, got %q", got)
	}
	got := renderProgress(5, 10, 10, false)
	if !strings.Contains(got, "50%") || strings.Count(got, "█") != 5 {
		t.Fatalf("unexpected progress %q", got)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
