package mcts

import (
	"github.com/chewxy/math32"
	"github.com/gomcts/gomcts/pkg/board"
	"github.com/gomcts/gomcts/pkg/playout"
)

// UCB1AMAF is the default tree-selection policy (spec §4.4's policy=ucb1amaf
// default): UCB1 blended with a RAVE/AMAF estimate, weighted down as a
// child accumulates its own direct visits. Grounded on the teacher's RAVE
// policy (pkg/mcts/rave.go in the retrieved snapshot) and Silverman's beta
// schedule, adapted to this module's AMAFMap (indexed by board point
// rather than by move-in-a-result-list).
type UCB1AMAF struct {
	ExplorationParam float32
	Beta             func(n, nRave int32) float32
}

// NewUCB1AMAF returns the default-configured RAVE policy: lower
// exploration than plain UCB1 since AMAF already broadens the estimate.
func NewUCB1AMAF() *UCB1AMAF {
	return &UCB1AMAF{ExplorationParam: 0.3, Beta: silvermanBeta}
}

// silvermanBeta is the RAVE weighting schedule: close to 1 for small n
// (trust AMAF), close to 0 for large n (trust the direct estimate).
func silvermanBeta(n, nRave int32) float32 {
	const (
		b      = 0.1
		factor = 4 * b * b
	)
	fn, fnr := float32(n), float32(nRave)
	return fnr / (fn + fnr + factor*fn*fnr)
}

func (u *UCB1AMAF) WantsAMAF() bool { return true }

func (u *UCB1AMAF) Prior(tree *Tree, node *Node, b *board.Board, color board.Stone, parity int) {
	node.Playouts = 0
	node.Value = 0.5
	if node.AMAF == nil {
		node.AMAF = &AMAFStats{}
	}
}

func (u *UCB1AMAF) Descend(node *Node, parity int, passLimit float32) *Node {
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
		q := c.Value
		beta := float32(0)
		amafQ := float32(0)
		if c.AMAF != nil && c.AMAF.Playouts > 0 {
			beta = u.Beta(c.Playouts, c.AMAF.Playouts)
			amafQ = c.AMAF.Value
		}
		score := (1-beta)*q + beta*amafQ +
			u.ExplorationParam*math32.Sqrt(lnParent/float32(c.Playouts))
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

func (u *UCB1AMAF) Choose(node *Node) *Node {
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

// Update backpropagates result up the descent path exactly like UCB1, and
// additionally credits every sibling at each level whose move was played
// anywhere during the rollout (per the AMAF map) — the "all moves as
// first" statistic of spec §4.3.
func (u *UCB1AMAF) Update(leaf *Node, nodeColor, playerColor board.Stone, amaf playout.AMAFMap, result playout.Result) {
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

		if n.Parent != nil && amaf != nil {
			for _, sibling := range n.Parent.Children {
				if !sibling.Coord.IsReal() || sibling.AMAF == nil {
					continue
				}
				idx := int(sibling.Coord.Y)*boardSizeOf(amaf) + int(sibling.Coord.X)
				if idx < 0 || idx >= len(amaf) || amaf[idx] == board.Empty {
					continue
				}
				sibling.AMAF.Playouts++
				sibling.AMAF.Value = clampUnit(sibling.AMAF.Value + (r-sibling.AMAF.Value)/float32(sibling.AMAF.Playouts))
			}
		}
		r = 1 - r
	}
}

// boardSizeOf recovers the board side length from a flattened AMAF map.
func boardSizeOf(amaf playout.AMAFMap) int {
	size := 1
	for size*size < len(amaf) {
		size++
	}
	return size
}
