// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Text           string
	TextsDir       string
	File           string
	ShowWhitespace *bool // nil keeps each text's own default
	Wordlist       string
	Lang           string
	Words          int
	CapsPct        float64
	PunctPct       float64
	PunctSet       string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Text     string
	Since    *time.Time
	Last     int
	Mistakes int
}

// SessionStats captures a completed typing session.
type SessionStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	TextName   string
	Chars      int
	Mistakes   int
	DurationMs int64
}

// MistakeRecord is the first report of one mistake run.
type MistakeRecord struct {
	Index    int
	Original string
	Correct  string
	Wrong    string
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	TextName   string
	Chars      int
	Mistakes   int
	DurationMs int64
}

// SessionMistake is a stored mistake with its session context.
type SessionMistake struct {
	SessionID int64
	EndedAt   time.Time
	TextName  string
	MistakeRecord
}
