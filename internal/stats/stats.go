// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/typist/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes WPM, CPM and accuracy for a session. Accuracy is
// the share of characters typed without starting a mistake run.
func SessionMetrics(chars, mistakes int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(chars) / 5.0) / minutes
	cpm = float64(chars) / minutes
	den := float64(chars + mistakes)
	if den > 0 {
		accuracy = float64(chars) / den
	}
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWPM, totalCPM, totalAcc float64
	bestWPM := 0.0
	mistakes := 0
	for _, s := range sessions {
		wpm, cpm, acc := SessionMetrics(s.Chars, s.Mistakes, s.DurationMs)
		totalWPM += wpm
		totalCPM += cpm
		totalAcc += acc
		mistakes += s.Mistakes
		if wpm > bestWPM {
			bestWPM = wpm
		}
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f", bestWPM),
		fmt.Sprintf("Avg CPM: %.2f", totalCPM/count),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
		fmt.Sprintf("Mistakes: %d", mistakes),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints a WPM sparkline over the last width sessions, smoothed
// over window sessions.
func RenderTrend(w io.Writer, sessions []model.SessionAggregate, window, width int) error {
	if len(sessions) < 2 || width <= 0 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	for i, s := range sessions {
		wpms[i], _, _ = SessionMetrics(s.Chars, s.Mistakes, s.DurationMs)
	}
	wpms = MovingAverage(wpms, window)
	if len(wpms) > width {
		wpms = wpms[len(wpms)-width:]
	}
	if _, err := fmt.Fprintln(w, "WPM Trend"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, Sparkline(wpms)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSessionTable prints one row per session, newest last.
func RenderSessionTable(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	headers := []string{"Ended", "Text", "Chars", "WPM", "Accuracy", "Mistakes"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		wpm, _, acc := SessionMetrics(s.Chars, s.Mistakes, s.DurationMs)
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			s.TextName,
			fmt.Sprintf("%d", s.Chars),
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.2f%%", acc*100),
			fmt.Sprintf("%d", s.Mistakes),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
