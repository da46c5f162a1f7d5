package game

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const cornerLabel = "v PC\\User >"

// RenderTable writes the move-vs-move grid. Rows are the computer's moves,
// columns the user's, and each cell is the user's outcome.
func RenderTable(w io.Writer, moves MoveSet, rel *Relation) error {
	width := utf8.RuneCountInString(cornerLabel)
	for _, l := range moves.labels {
		width = max(width, utf8.RuneCountInString(l))
	}
	for _, o := range []Outcome{Win, Lose, Draw} {
		width = max(width, len(o.String()))
	}

	cell := func(s string) string {
		return " " + s + strings.Repeat(" ", width-utf8.RuneCountInString(s)) + " "
	}

	sep := "+" + strings.Repeat(strings.Repeat("-", width+2)+"+", moves.Len()+1)

	var b strings.Builder
	b.WriteString(sep + "\n")
	b.WriteString("|" + cell(cornerLabel) + "|")
	for _, l := range moves.labels {
		b.WriteString(cell(l) + "|")
	}
	b.WriteString("\n" + sep + "\n")

	for pc, row := range rel.UserView() {
		b.WriteString("|" + cell(moves.labels[pc]) + "|")
		for _, o := range row {
			b.WriteString(cell(o) + "|")
		}
		b.WriteString("\n" + sep + "\n")
	}

	_, err := fmt.Fprint(w, b.String())
	return err
}
