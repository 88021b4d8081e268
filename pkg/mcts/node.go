package mcts

import "github.com/gomcts/gomcts/pkg/board"

// AMAFStats holds the secondary "all moves as first" statistics a node
// accumulates when the active Policy requests them (spec §4.3).
type AMAFStats struct {
	Playouts int32
	Value    float32 // clamped [0,1]
}

// Node is a single tree node: the move it represents, its place in the
// forest, and its playout statistics. Unlike the generic arena the teacher
// library uses for a tree shared across goroutines, each Node here is
// owned by exactly one worker's private Tree at a time (spec §5's
// root-parallel clone-and-merge model), so no field needs atomic access —
// a worker's descent/expand/backprop loop is single-threaded and
// synchronous by construction.
type Node struct {
	Coord    board.Coord
	Parent   *Node
	Children []*Node
	Depth    int

	Playouts int32
	Value    float32 // clamped [0,1]; perspective of the mover at Parent
	SumSq    float32 // running sum of squared outcomes, for UCB1Tuned's variance bound

	AMAF *AMAFStats // nil unless the policy's WantsAMAF() is true
}

func newNode(parent *Node, c board.Coord) *Node {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}
	return &Node{Coord: c, Parent: parent, Depth: depth}
}

// IsLeaf reports whether the node has not yet been expanded.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// clone deep-copies a node and its subtree, re-parenting every descendant.
func (n *Node) clone(parent *Node) *Node {
	c := &Node{
		Coord:    n.Coord,
		Parent:   parent,
		Depth:    n.Depth,
		Playouts: n.Playouts,
		Value:    n.Value,
		SumSq:    n.SumSq,
	}
	if n.AMAF != nil {
		amaf := *n.AMAF
		c.AMAF = &amaf
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = ch.clone(c)
		}
	}
	return c
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
