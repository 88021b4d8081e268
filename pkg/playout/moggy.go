package playout

import "github.com/gomcts/gomcts/pkg/board"

// Moggy is the default rollout policy (spec §4.4's playout=moggy default):
// play uniformly among legal, sensible, non-eye-filling points, falling
// back to Pass when none remain. It is the Go-native reading of
// skybrian-Gongo's playRandomGame/wouldFillEye — not a literal port, since
// the original Pachi moggy.c heuristic rollout policy was not retrieved
// into the example pack.
type Moggy struct {
	// SkipEyes, when true, never fills a simple eye as wouldFillEye defines
	// it (every orthogonal neighbor is the filling color, with a limit on
	// opponent stones at the diagonals) — this is what keeps random
	// rollouts from needlessly killing their own territory.
	SkipEyes bool
}

// NewMoggy returns the default-configured Moggy driver.
func NewMoggy() *Moggy { return &Moggy{SkipEyes: true} }

func (p *Moggy) Playout(b *board.Board, toMove board.Stone, maxPlies int, rng Rand, amaf AMAFMap) Result {
	candidates := make([]board.Coord, 0, b.Size*b.Size)
	color := toMove
	passes := 0

	for ply := 0; ply < maxPlies && passes < 2; ply++ {
		candidates = candidates[:0]
		for y := 0; y < b.Size; y++ {
			for x := 0; x < b.Size; x++ {
				c := board.Coord{X: int16(x), Y: int16(y)}
				if b.At(c) != board.Empty {
					continue
				}
				if p.SkipEyes && wouldFillEye(b, c, color) {
					continue
				}
				if b.ValidMove(board.Move{Coord: c, Color: color}, true) {
					candidates = append(candidates, c)
				}
			}
		}

		var move board.Coord
		if len(candidates) == 0 {
			move = board.Pass
		} else {
			move = candidates[rng.Intn(len(candidates))]
		}

		b.Play(board.Move{Coord: move, Color: color})

		if move.IsReal() {
			amaf.record(b, move, color)
			passes = 0
		} else {
			passes++
		}
		color = color.Other()
	}

	score := b.FastScore()
	won := score != 0 && (score > 0) == (toMove == board.White)
	if won {
		return Win
	}
	return Loss
}

// wouldFillEye reports whether playing color at the empty point c would
// only fill a simple eye: every on-board orthogonal neighbor is color, and
// no on-board diagonal neighbor is the opponent when c is on the edge or in
// a corner (some diagonal is off-board), at most one otherwise. Empty
// diagonals do not count against the eye. Mirrors skybrian-Gongo's
// wouldFillEye.
func wouldFillEye(b *board.Board, c board.Coord, color board.Stone) bool {
	var nbuf [4]board.Coord
	neighbors := b.Neighbors(c, nbuf[:0])
	for _, n := range neighbors {
		if b.At(n) != color {
			return false
		}
	}

	enemyDiagonals := 0
	edgeDiagonals := 0
	for _, d := range diagonalsOf(b, c) {
		if !b.InBounds(d) {
			edgeDiagonals++
			continue
		}
		if b.At(d) == color.Other() {
			enemyDiagonals++
		}
	}
	maxEnemy := 0
	if edgeDiagonals > 0 {
		maxEnemy = 0
	} else {
		maxEnemy = 1
	}
	return enemyDiagonals <= maxEnemy
}

// diagonalsOf returns all four diagonal points of c, including those that
// fall off the board — wouldFillEye relies on seeing those out-of-bounds
// points to apply its edge relaxation.
func diagonalsOf(b *board.Board, c board.Coord) []board.Coord {
	return []board.Coord{
		{X: c.X - 1, Y: c.Y - 1},
		{X: c.X - 1, Y: c.Y + 1},
		{X: c.X + 1, Y: c.Y - 1},
		{X: c.X + 1, Y: c.Y + 1},
	}
}
