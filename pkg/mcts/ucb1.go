package mcts

import (
	"github.com/chewxy/math32"
	"github.com/gomcts/gomcts/pkg/board"
	"github.com/gomcts/gomcts/pkg/playout"
)

// UCB1 is the classic UCB1 selection policy: wins/visits + C*sqrt(ln(parentVisits)/visits),
// grounded on the teacher's UCB1.Select (pkg/mcts/ucb.go in the retrieved
// snapshot), adapted from its generic NodeBase[T] arena to this module's
// concrete single-threaded-per-worker Node.
type UCB1 struct {
	ExplorationParam float32
}

// NewUCB1 returns a UCB1 policy with the conventional exploration constant
// sqrt(2).
func NewUCB1() *UCB1 {
	return &UCB1{ExplorationParam: math32.Sqrt(2)}
}

func (u *UCB1) WantsAMAF() bool { return false }

func (u *UCB1) Prior(tree *Tree, node *Node, b *board.Board, color board.Stone, parity int) {
	node.Playouts = 0
	node.Value = 0.5
}

func (u *UCB1) bestChild(node *Node, passLimit float32) *Node {
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
		score := c.Value + u.ExplorationParam*math32.Sqrt(lnParent/float32(c.Playouts))
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

func (u *UCB1) Descend(node *Node, parity int, passLimit float32) *Node {
	return u.bestChild(node, passLimit)
}

// Choose picks the most-visited child for reporting, the conventional
// "robust child" selection independent of the exploration term.
func (u *UCB1) Choose(node *Node) *Node {
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

func (u *UCB1) Update(leaf *Node, nodeColor, playerColor board.Stone, amaf playout.AMAFMap, result playout.Result) {
	backpropagate(leaf, nodeColor, playerColor, result)
}

// backpropagate is UCB1's update routine (UCB1Tuned and UCB1AMAF run the
// same ascent in their own Update with extra statistics): result is from
// nodeColor's point of view, so it is first flipped to the root player's
// perspective (spec §4.4 step 4), then turned into the perspective of the
// leaf's own mover (the root player at odd depths, the opponent at even
// ones), and flipped again at every level on the way up, because each
// node's Value is defined from the perspective of the mover at its
// *parent* (spec §3).
func backpropagate(leaf *Node, nodeColor, playerColor board.Stone, result playout.Result) {
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
		r = 1 - r
	}
}
