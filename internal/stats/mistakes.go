package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/verte-zerg/typist/internal/model"
)

// MistakeDiff marks where typed text left the expected chunk: expected
// runes the user missed appear as [-x-], extra typed runes as {+y+}.
func MistakeDiff(expected, typed string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, typed, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + visible(d.Text) + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + visible(d.Text) + "+}")
		case diffmatchpatch.DiffEqual:
			b.WriteString(visible(d.Text))
		}
	}
	return b.String()
}

// visible spells out whitespace that would otherwise vanish in a table.
func visible(s string) string {
	return strings.NewReplacer("\t", `\t`, "\n", `\n`).Replace(s)
}

// RenderMistakes prints recent mistakes as expected-vs-typed diffs.
func RenderMistakes(w io.Writer, mistakes []model.SessionMistake) error {
	if len(mistakes) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Recent Mistakes"); err != nil {
		return err
	}
	headers := []string{"Text", "At", "Expected", "Typed"}
	rows := make([][]string, 0, len(mistakes))
	for _, m := range mistakes {
		rows = append(rows, []string{
			m.TextName,
			fmt.Sprintf("%d", m.Index),
			visible(m.Original),
			MistakeDiff(m.Original, m.Correct+m.Wrong),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
