package board

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

var (
	blackGlyph = termenv.String("X").Foreground(termenv.ANSIBrightWhite).Background(termenv.ANSIBlack)
	whiteGlyph = termenv.String("O").Foreground(termenv.ANSIBlack).Background(termenv.ANSIBrightWhite)
)

// files are the column letters used for rendering, skipping 'I' as Go
// convention dictates (board_print in the Pachi original).
const files = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// String renders the board as text: ranks size..1 top-to-bottom, files
// A.. skipping I left-to-right, the most recent move's stone marked with a
// trailing ')' instead of a space. When the output is attached to a
// terminal, stones are additionally colored via termenv; otherwise this
// degrades to the plain-text rendering.
func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Move: %3d  Komi: %.1f  Captures B: %d W: %d\n    ",
		b.Moves, b.Komi, b.Captures[Black], b.Captures[White])
	for x := 0; x < b.Size; x++ {
		fmt.Fprintf(&sb, "%c ", files[x])
	}
	sb.WriteString("\n   +")
	sb.WriteString(strings.Repeat("--", b.Size))
	sb.WriteString("+\n")

	profile := termenv.ColorProfile()
	colorize := profile != termenv.Ascii

	for y := b.Size - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%2d | ", y+1)
		for x := 0; x < b.Size; x++ {
			c := Coord{X: int16(x), Y: int16(y)}
			glyph := stoneGlyph(b.At(c), colorize)
			sb.WriteString(glyph)
			if b.LastMove.Coord == c {
				sb.WriteString(")")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   +")
	sb.WriteString(strings.Repeat("--", b.Size))
	sb.WriteString("+\n")
	return sb.String()
}

func stoneGlyph(s Stone, colorize bool) string {
	switch s {
	case Black:
		if colorize {
			return blackGlyph.String()
		}
		return "X"
	case White:
		if colorize {
			return whiteGlyph.String()
		}
		return "O"
	default:
		return "."
	}
}
