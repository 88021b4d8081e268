package mcts

import (
	"strings"
	"testing"

	"github.com/gomcts/gomcts/pkg/board"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Games = 200
	cfg.GameLen = 40
	return cfg
}

func newTestEngine(cfg Config) *Engine {
	return &Engine{
		Config:   cfg,
		Policy:   BuildPolicy(cfg.PolicyName),
		Driver:   BuildPlayout(cfg.PlayoutName),
		Listener: klogListener{},
	}
}

func TestGenMoveReturnsLegalOrPass(t *testing.T) {
	b := board.New(5)
	e := newTestEngine(smallConfig())

	c, err := e.GenMove(b, board.Black)
	if err != nil {
		t.Fatalf("GenMove: %v", err)
	}
	if c.IsResign() {
		t.Fatalf("engine resigned on an empty board")
	}
	if !c.IsPass() && !b.ValidMove(board.Move{Coord: c, Color: board.Black}, true) {
		t.Fatalf("GenMove returned illegal move %v", c)
	}
}

func TestGenMoveDeterministicWithForceSeed(t *testing.T) {
	cfg := smallConfig()
	cfg.ForceSeed = 42
	cfg.ForceSeedIsSet = true
	cfg.Threads = 0

	b := board.New(5)
	e1 := newTestEngine(cfg)
	c1, err := e1.GenMove(b, board.Black)
	if err != nil {
		t.Fatalf("GenMove: %v", err)
	}

	e2 := newTestEngine(cfg)
	c2, err := e2.GenMove(b, board.Black)
	if err != nil {
		t.Fatalf("GenMove: %v", err)
	}

	if c1 != c2 {
		t.Fatalf("force_seed runs diverged: %v vs %v", c1, c2)
	}
}

func TestNotifyPlayPromotesTree(t *testing.T) {
	b := board.New(5)
	e := newTestEngine(smallConfig())

	if _, err := e.GenMove(b, board.Black); err != nil {
		t.Fatalf("GenMove: %v", err)
	}
	if e.tree == nil || len(e.tree.Root.Children) == 0 {
		t.Fatal("expected a populated tree after GenMove")
	}

	childCoord := e.tree.Root.Children[0].Coord
	oldRoot := e.tree.Root
	e.NotifyPlay(b, board.Move{Coord: childCoord, Color: board.Black})

	if e.tree == nil {
		t.Fatal("tree should not be discarded when the child exists")
	}
	if e.tree.Root == oldRoot {
		t.Fatal("expected the root to change after a successful promote")
	}
	if e.tree.Root.Coord != childCoord {
		t.Fatalf("promoted root coord = %v, want %v", e.tree.Root.Coord, childCoord)
	}
}

func TestNotifyPlayResetsTreeOnUnknownMove(t *testing.T) {
	b := board.New(5)
	e := newTestEngine(smallConfig())
	if _, err := e.GenMove(b, board.Black); err != nil {
		t.Fatalf("GenMove: %v", err)
	}

	e.NotifyPlay(b, board.Move{Coord: board.Coord{X: 99, Y: 99}, Color: board.Black})
	if e.tree != nil {
		t.Fatal("expected tree to be discarded on an unrecognized promote target")
	}
}

func TestMergeIsCommutativeOnValue(t *testing.T) {
	b := board.New(5)
	color := board.Black

	t1 := NewTree(b, color)
	t2 := NewTree(b, color)
	policy := NewUCB1()
	t1.Expand(t1.Root, b, color, 0, policy, 1)
	t2.Expand(t2.Root, b, color, 0, policy, 1)

	for i, c := range t1.Root.Children {
		c.Playouts = int32(i + 1)
		c.Value = 0.6
	}
	for i, c := range t2.Root.Children {
		c.Playouts = int32(i + 2)
		c.Value = 0.4
	}

	ab := t1.Clone()
	Merge(ab, t2.Clone())

	ba := t2.Clone()
	Merge(ba, t1.Clone())

	if len(ab.Root.Children) != len(ba.Root.Children) {
		t.Fatalf("merged child counts differ: %d vs %d", len(ab.Root.Children), len(ba.Root.Children))
	}
	for _, ca := range ab.Root.Children {
		var cb *Node
		for _, c := range ba.Root.Children {
			if c.Coord == ca.Coord {
				cb = c
				break
			}
		}
		if cb == nil {
			t.Fatalf("child %v missing from reverse merge", ca.Coord)
		}
		if ca.Playouts != cb.Playouts {
			t.Fatalf("playouts not commutative for %v: %d vs %d", ca.Coord, ca.Playouts, cb.Playouts)
		}
		diff := ca.Value - cb.Value
		if diff < 0 {
			diff = -diff
		}
		if diff > 1e-4 {
			t.Fatalf("merged value not commutative for %v: %v vs %v", ca.Coord, ca.Value, cb.Value)
		}
	}
}

func TestPromoteAtIsSubsetOfTree(t *testing.T) {
	b := board.New(5)
	tree := NewTree(b, board.Black)
	policy := NewUCB1()
	tree.Expand(tree.Root, b, board.Black, 0, policy, 1)

	if len(tree.Root.Children) == 0 {
		t.Fatal("expected at least the Pass child")
	}
	target := tree.Root.Children[0]
	wantChildren := len(target.Children)

	if !tree.PromoteAt(target.Coord) {
		t.Fatal("PromoteAt failed for an existing child")
	}
	if len(tree.Root.Children) != wantChildren {
		t.Fatalf("promoted root has %d children, want %d", len(tree.Root.Children), wantChildren)
	}
	if tree.Root.Parent != nil {
		t.Fatal("promoted root must have no parent")
	}
}

func TestResignBelowRatio(t *testing.T) {
	b := board.New(5)
	tree := NewTree(b, board.Black)
	policy := NewUCB1()
	tree.Expand(tree.Root, b, board.Black, 0, policy, 1)

	for _, c := range tree.Root.Children {
		c.Playouts = 100
		c.Value = 0.01
		if c.Coord.IsPass() {
			c.Playouts = 1
		}
	}

	e := newTestEngine(smallConfig())
	e.tree = tree
	best := e.Policy.Choose(tree.Root)
	if best == nil {
		t.Fatal("expected a best child")
	}
	if best.Coord.IsPass() {
		t.Fatal("expected the most-visited child to be a real move, not Pass")
	}
	if best.Value >= e.Config.ResignRatio {
		t.Fatalf("best.Value = %v, want below ResignRatio %v", best.Value, e.Config.ResignRatio)
	}
}

func TestDumpBookRespectsThreshold(t *testing.T) {
	b := board.New(5)
	tree := NewTree(b, board.Black)
	policy := NewUCB1()
	tree.Expand(tree.Root, b, board.Black, 0, policy, 1)
	tree.Root.Children[0].Playouts = 5000

	e := &Engine{Config: DefaultConfig(), tree: tree}
	e.Config.DumpThres = 4000

	dump := e.DumpBook(b, board.Black)
	if !strings.Contains(dump, tree.Root.Children[0].Coord.String()) {
		t.Fatalf("expected high-visit child in dump, got: %q", dump)
	}
}

func TestSaveLoadRoundTripsTree(t *testing.T) {
	b := board.New(5)
	tree := NewTree(b, board.Black)
	policy := NewUCB1()
	tree.Expand(tree.Root, b, board.Black, 0, policy, 1)
	tree.Root.Children[0].Playouts = 10
	tree.Root.Children[0].Value = 0.75

	var buf strings.Builder
	if err := tree.Save(&buf, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(strings.NewReader(buf.String()), b, board.Black)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Root.Children) != len(tree.Root.Children) {
		t.Fatalf("loaded tree has %d children, want %d", len(loaded.Root.Children), len(tree.Root.Children))
	}
}
