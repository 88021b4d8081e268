package mcts

import (
	"github.com/chewxy/math32"
	"github.com/gomcts/gomcts/pkg/board"
	"github.com/gomcts/gomcts/pkg/playout"
)

// UCB1Tuned refines UCB1's exploration term with a per-child variance
// bound (Auer, Cesa-Bianchi & Fischer 2002), tracked incrementally via
// Node.SumSq alongside the running mean already kept in Node.Value.
type UCB1Tuned struct {
	ExplorationParam float32
}

func NewUCB1Tuned() *UCB1Tuned {
	return &UCB1Tuned{ExplorationParam: math32.Sqrt(2)}
}

func (u *UCB1Tuned) WantsAMAF() bool { return false }

func (u *UCB1Tuned) Prior(tree *Tree, node *Node, b *board.Board, color board.Stone, parity int) {
	node.Playouts = 0
	node.Value = 0.5
	node.SumSq = 0
}

func (u *UCB1Tuned) Descend(node *Node, parity int, passLimit float32) *Node {
	if len(node.Children) == 0 {
		return nil
	}
	var best *Node
	bestScore := float32(-1)
	lnParent := math32.Log(float32(node.Playouts) + 1)

	for _, c := range node.Children {
		if c.Playouts == 0 {
			return c
		}
		n := float32(c.Playouts)
		mean := c.Value
		variance := c.SumSq/n - mean*mean
		if variance < 0 {
			variance = 0
		}
		vBound := variance + math32.Sqrt(2*lnParent/n)
		if vBound > 0.25 {
			vBound = 0.25 // known upper bound for rewards in [0,1]
		}
		score := mean + u.ExplorationParam*math32.Sqrt((lnParent/n)*vBound)
		if c.Coord.IsPass() {
			score *= passLimit
		}
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

func (u *UCB1Tuned) Choose(node *Node) *Node {
	var best *Node
	var bestVisits int32 = -1
	for _, c := range node.Children {
		if c.Playouts > bestVisits {
			bestVisits = c.Playouts
			best = c
		}
	}
	return best
}

func (u *UCB1Tuned) Update(leaf *Node, nodeColor, playerColor board.Stone, amaf playout.AMAFMap, result playout.Result) {
	r := float32(result)
	if nodeColor != playerColor {
		r = 1 - r
	}
	if leaf.Depth%2 == 0 {
		r = 1 - r
	}
	for n := leaf; n != nil; n = n.Parent {
		n.Playouts++
		n.Value = clampUnit(n.Value + (r-n.Value)/float32(n.Playouts))
		n.SumSq += r * r
		r = 1 - r
	}
}
