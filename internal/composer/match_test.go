package composer

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		chunk string
		input string
		want  MatchResult
	}{
		{name: "empty both", chunk: "", input: "", want: MatchResult{}},
		{name: "nothing typed", chunk: "Hi ", input: "", want: MatchResult{Rest: "Hi "}},
		{name: "partial", chunk: "Hi ", input: "H", want: MatchResult{Correct: "H", Rest: "i "}},
		{name: "diverged", chunk: "Hi ", input: "Hx", want: MatchResult{Correct: "H", Wrong: "x", Rest: "i "}},
		{name: "overtyped", chunk: "Hi ", input: "Hi  x", want: MatchResult{Correct: "Hi ", Wrong: " x"}},
		{name: "exact", chunk: "Hi ", input: "Hi ", want: MatchResult{Correct: "Hi "}},
		{name: "wrong first rune", chunk: "cat ", input: "bat", want: MatchResult{Wrong: "bat", Rest: "cat "}},
		{name: "multibyte", chunk: "héllo ", input: "hél", want: MatchResult{Correct: "hél", Rest: "lo "}},
		{name: "multibyte mismatch", chunk: "é", input: "è", want: MatchResult{Wrong: "è", Rest: "é"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(Chunk{Text: tt.chunk}, tt.input)
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
			if got.Correct+got.Rest != tt.chunk {
				t.Fatalf("correct is not a prefix of the chunk: %+v", got)
			}
			if got.Typed() != tt.input {
				t.Fatalf("typed region %q does not match input %q", got.Typed(), tt.input)
			}
		})
	}
}

func TestMistakeTrackerLifecycle(t *testing.T) {
	chunk := Chunk{Text: "cat ", Start: 4}
	var tracker MistakeTracker

	if _, notify := tracker.Observe(chunk, Evaluate(chunk, "c")); notify {
		t.Fatalf("expected no notification without a mistake")
	}
	m, notify := tracker.Observe(chunk, Evaluate(chunk, "cx"))
	if !notify || m == nil {
		t.Fatalf("expected mistake notification")
	}
	if m.Index != 5 || m.Original != "cat " || m.Correct != "c" || m.Wrong != "x" {
		t.Fatalf("unexpected mistake: %+v", m)
	}
	m, notify = tracker.Observe(chunk, Evaluate(chunk, "cxy"))
	if !notify || m == nil || m.Wrong != "xy" {
		t.Fatalf("expected mistake to be re-emitted, got %+v", m)
	}
	m, notify = tracker.Observe(chunk, Evaluate(chunk, "c"))
	if !notify || m != nil {
		t.Fatalf("expected a single null transition")
	}
	if _, notify = tracker.Observe(chunk, Evaluate(chunk, "ca")); notify {
		t.Fatalf("expected no redundant null notification")
	}
}

func TestAccumulatorReportsChangesOnly(t *testing.T) {
	var acc Accumulator
	if _, changed := acc.Update("", ""); changed {
		t.Fatalf("expected no change for empty value")
	}
	if got, changed := acc.Update("Hi ", "t"); !changed || got != "Hi t" {
		t.Fatalf("expected change to %q, got %q (%v)", "Hi t", got, changed)
	}
	if _, changed := acc.Update("Hi t", ""); changed {
		t.Fatalf("expected no change when value is the same")
	}
	if !acc.Clear() {
		t.Fatalf("expected clear to report a non-empty value")
	}
}
