package playout

import "github.com/gomcts/gomcts/pkg/board"

// Light is the cheap rollout policy (spec §6's playout=light): uniformly
// random among legal (not necessarily sensible) moves, no eye avoidance.
// Faster per-playout than Moggy at the cost of noisier rollouts — useful
// for the "deterministic search" scenario in spec §8 where playout=light
// is requested explicitly.
type Light struct{}

func (Light) Playout(b *board.Board, toMove board.Stone, maxPlies int, rng Rand, amaf AMAFMap) Result {
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
				if b.ValidMove(board.Move{Coord: c, Color: color}, false) {
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
