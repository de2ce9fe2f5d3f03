package composer

import (
	"strings"
	"unicode/utf8"
)

// State is the phase of a typing session.
type State int

// Session states.
const (
	AwaitingChunk State = iota
	Editing
	Committing
	Completed
)

func (s State) String() string {
	switch s {
	case AwaitingChunk:
		return "awaiting-chunk"
	case Editing:
		return "editing"
	case Committing:
		return "committing"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Outcome tells the host what an event did.
type Outcome int

// Event outcomes.
const (
	// Rejected means the session is complete and the event was ignored.
	Rejected Outcome = iota
	// Accepted means the buffer or selection was updated without a commit.
	Accepted
	// Committed means the active chunk was typed and the next one is active.
	Committed
	// Finished means the last chunk was committed.
	Finished
)

// TypingState is the matching state of a session.
type TypingState struct {
	CompletedPrefix string
	Chunk           Chunk
	Buffer          string
}

// Callbacks are invoked synchronously, in event order. Nil callbacks are skipped.
type Callbacks struct {
	OnInput    func(entered string)
	OnMistake  func(m *Mistake)
	OnComplete func()
}

// Focuser is the host input surface that can take focus.
type Focuser interface {
	Focus()
}

// Option configures a Session.
type Option func(*Session)

// WithCallbacks sets the host notification callbacks.
func WithCallbacks(cb Callbacks) Option {
	return func(s *Session) {
		s.callbacks = cb
	}
}

// WithFocuser sets the surface Focus delegates to.
func WithFocuser(f Focuser) Option {
	return func(s *Session) {
		s.focuser = f
	}
}

// Session tracks typing progress over one reference text. It is not safe for
// concurrent use; the host delivers events one at a time.
type Session struct {
	reference string
	state     State
	typing    TypingState
	selection Selection

	mistakes  MistakeTracker
	entered   Accumulator
	callbacks Callbacks
	focuser   Focuser
}

// NewSession starts a session over text.
func NewSession(text string, opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	s.start(text)
	return s
}

// Reset replaces the reference text and discards all derived state. The host
// is told about a cleared progress or mistake only if it had been told
// otherwise before.
func (s *Session) Reset(text string) {
	hadMistake := s.mistakes.Clear()
	hadEntered := s.entered.Clear()
	s.start(text)
	if hadEntered {
		s.notifyInput("")
	}
	if hadMistake {
		s.notifyMistake(nil)
	}
}

func (s *Session) start(text string) {
	s.reference = text
	s.typing = TypingState{Chunk: NextChunk(text, 0)}
	s.selection = CaretAt(0)
	s.state = AwaitingChunk
	if s.typing.Chunk.Empty() {
		s.state = Completed
	}
}

// Reference returns the reference text.
func (s *Session) Reference() string {
	return s.reference
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}

// Done reports whether the whole text has been typed.
func (s *Session) Done() bool {
	return s.state == Completed
}

// Typing returns a copy of the matching state.
func (s *Session) Typing() TypingState {
	return s.typing
}

// Buffer returns the input typed for the active chunk.
func (s *Session) Buffer() string {
	return s.typing.Buffer
}

// Selection returns the current selection over the buffer.
func (s *Session) Selection() Selection {
	return s.selection
}

// Entered returns the verified-correct prefix of the reference text.
func (s *Session) Entered() string {
	return s.typing.CompletedPrefix + s.Result().Correct
}

// Mistake returns the active mistake, if any.
func (s *Session) Mistake() *Mistake {
	return s.mistakes.Active()
}

// Result evaluates the buffer against the active chunk.
func (s *Session) Result() MatchResult {
	return Evaluate(s.typing.Chunk, s.typing.Buffer)
}

// Remainder returns the reference text after the active chunk.
func (s *Session) Remainder() string {
	return s.reference[len(s.typing.CompletedPrefix)+len(s.typing.Chunk.Text):]
}

// View decorates the active chunk for display.
func (s *Session) View(showWhitespace bool) Decorated {
	return Decorate(s.typing, s.selection, showWhitespace)
}

// Focus asks the host input surface for focus.
func (s *Session) Focus() {
	if s.focuser != nil {
		s.focuser.Focus()
	}
}

// Input handles a text change: text is the whole buffer for the active chunk.
func (s *Session) Input(text string) Outcome {
	if s.state == Completed {
		return Rejected
	}
	s.typing.Buffer = text
	s.selection = s.selection.Clamp(utf8.RuneCountInString(text))
	return s.evaluate()
}

// Select handles a selection change over the buffer.
func (s *Session) Select(start, end int, dir Direction) Outcome {
	if s.state == Completed {
		return Rejected
	}
	s.selection = NewSelection(start, end, dir).Clamp(utf8.RuneCountInString(s.typing.Buffer))
	return s.evaluate()
}

// InsertTab replaces the selection with one tab and moves the caret past it.
// The buffer is evaluated once.
func (s *Session) InsertTab() Outcome {
	if s.state == Completed {
		return Rejected
	}
	runes := []rune(s.typing.Buffer)
	sel := s.selection.Clamp(len(runes))
	var b strings.Builder
	b.WriteString(string(runes[:sel.Start]))
	b.WriteRune('\t')
	b.WriteString(string(runes[sel.End:]))
	s.typing.Buffer = b.String()
	s.selection = CaretAt(sel.Start + 1)
	return s.evaluate()
}

func (s *Session) evaluate() Outcome {
	chunk := s.typing.Chunk
	result := Evaluate(chunk, s.typing.Buffer)
	outcome := Accepted
	if s.typing.Buffer == chunk.Text {
		s.state = Committing
		s.commit()
		outcome = Committed
		if s.state == Completed {
			outcome = Finished
		}
		result = MatchResult{Rest: s.typing.Chunk.Text}
	} else if s.typing.Buffer == "" {
		s.state = AwaitingChunk
	} else {
		s.state = Editing
	}

	if entered, changed := s.entered.Update(s.typing.CompletedPrefix, result.Correct); changed {
		s.notifyInput(entered)
	}
	if m, notify := s.mistakes.Observe(chunk, result); notify {
		s.notifyMistake(m)
	}
	if outcome == Finished && s.callbacks.OnComplete != nil {
		s.callbacks.OnComplete()
	}
	return outcome
}

func (s *Session) commit() {
	s.typing.CompletedPrefix += s.typing.Chunk.Text
	s.typing.Buffer = ""
	s.selection = CaretAt(0)
	offset := s.typing.Chunk.Start + s.typing.Chunk.Len()
	s.typing.Chunk = NextChunk(s.reference[len(s.typing.CompletedPrefix):], offset)
	if s.typing.Chunk.Empty() {
		s.state = Completed
		return
	}
	s.state = AwaitingChunk
}

func (s *Session) notifyInput(entered string) {
	if s.callbacks.OnInput != nil {
		s.callbacks.OnInput(entered)
	}
}

func (s *Session) notifyMistake(m *Mistake) {
	if s.callbacks.OnMistake == nil {
		return
	}
	if m != nil {
		cp := *m
		m = &cp
	}
	s.callbacks.OnMistake(m)
}
