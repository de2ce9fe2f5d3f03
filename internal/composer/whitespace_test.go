package composer

import (
	"reflect"
	"testing"
)

func TestFormatWhitespace(t *testing.T) {
	got := FormatWhitespace("a b\t\nc", true)
	want := []Part{
		{Kind: PartText, Text: "a"},
		{Kind: PartSpace, Text: " "},
		{Kind: PartText, Text: "b"},
		{Kind: PartTab, Text: "\t"},
		{Kind: PartNewline, Text: "\n"},
		{Kind: PartText, Text: "c"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected parts: %+v", got)
	}
}

func TestFormatWhitespaceDisabled(t *testing.T) {
	got := FormatWhitespace("a b\t\nc", false)
	if len(got) != 1 || got[0].Kind != PartText || got[0].Text != "a b\t\nc" {
		t.Fatalf("expected passthrough, got %+v", got)
	}
	if FormatWhitespace("", true) != nil {
		t.Fatalf("expected no parts for empty text")
	}
}

func TestWhitespaceToggleKeepsState(t *testing.T) {
	s := NewSession("a b")
	s.Input("a")
	before := s.Typing()
	_ = s.View(true)
	_ = s.View(false)
	if s.Typing() != before {
		t.Fatalf("rendering must not change typing state")
	}
}
