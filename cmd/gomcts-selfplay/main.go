// Command gomcts-selfplay runs the engine against itself on an empty board,
// printing each move and the final score. There is no GTP front end here —
// this binary exists only to exercise the Engine end to end.
package main

import (
	"flag"
	"fmt"

	"github.com/gomcts/gomcts/pkg/board"
	"github.com/gomcts/gomcts/pkg/mcts"
	"k8s.io/klog/v2"
)

func main() {
	size := flag.Int("size", 9, "board side length")
	args := flag.String("mcts", "", "engine configuration, e.g. games=20000,threads=4,policy=ucb1amaf")
	maxMoves := flag.Int("max-moves", 400, "hard cap on plies before the game is forced to end")
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	e, err := mcts.Init(*args)
	if err != nil {
		klog.Warningf("gomcts-selfplay: configuration diagnostics: %v", err)
	}

	b := board.New(*size)
	color := board.Black
	consecutivePasses := 0

	for ply := 0; ply < *maxMoves; ply++ {
		c, err := e.GenMove(b, color)
		if err != nil {
			klog.Errorf("gomcts-selfplay: gen_move failed: %v", err)
			return
		}

		fmt.Printf("%3d %s %s\n", ply+1, color, c)

		if c.IsResign() {
			fmt.Printf("%s resigns\n", color)
			break
		}

		move := board.Move{Coord: c, Color: color}
		if _, err := b.Play(move); err != nil {
			klog.Errorf("gomcts-selfplay: engine chose an illegal move %v: %v", c, err)
			return
		}
		e.NotifyPlay(b, move)
		fmt.Println(b.String())

		if c.IsPass() {
			consecutivePasses++
		} else {
			consecutivePasses = 0
		}
		if consecutivePasses >= 2 {
			break
		}

		color = color.Other()
	}

	fmt.Printf("final score (positive favors White): %.1f\n", b.OfficialScore())
}
