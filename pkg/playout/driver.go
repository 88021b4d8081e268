// Package playout implements the Playout Driver plug-in: given a board and
// a side to move, play random legal moves until both sides pass or a ply
// limit is reached, then report who won. The core MCTS engine treats this
// as an opaque black box (see the Driver interface).
package playout

import "github.com/gomcts/gomcts/pkg/board"

// AMAFMap records, for each board point, the color of the first player to
// play it during a rollout — used by AMAF-aware tree policies (spec §4.3).
// A zero value (board.Empty) means the point was never played during the
// rollout.
type AMAFMap []board.Stone

// NewAMAFMap allocates a map sized for a board of the given side length.
func NewAMAFMap(size int) AMAFMap {
	return make(AMAFMap, size*size)
}

// Record credits color as the first player to play point c, if it has not
// already been credited to someone else this rollout. Safe to call on a
// nil map (a no-op) or with a non-real coord (Pass/Resign, also a no-op).
func (m AMAFMap) Record(b *board.Board, c board.Coord, color board.Stone) {
	m.record(b, c, color)
}

func (m AMAFMap) record(b *board.Board, c board.Coord, color board.Stone) {
	if m == nil || !c.IsReal() {
		return
	}
	idx := int(c.Y)*b.Size + int(c.X)
	if m[idx] == board.Empty {
		m[idx] = color
	}
}

// Driver plays one random game to completion from the given board and
// reports whether toMove's side won. amaf may be nil; when non-nil, the
// driver records the first player to play each point.
type Driver interface {
	Playout(b *board.Board, toMove board.Stone, maxPlies int, rng Rand, amaf AMAFMap) Result
}

// Result is the black-box outcome of one playout: 1 if toMove won, 0
// otherwise (spec §4.2).
type Result float32

const (
	Loss Result = 0
	Win  Result = 1
)

// Rand is the minimal random source a Driver needs; satisfied by both
// math/rand.Rand and golang.org/x/exp/rand.Rand so callers can hand
// rollouts an independent per-worker stream (spec §5).
type Rand interface {
	Intn(n int) int
}
