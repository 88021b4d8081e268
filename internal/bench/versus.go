package bench

import (
	"sync"

	"github.com/gomcts/gomcts/pkg/board"
	"github.com/gomcts/gomcts/pkg/mcts"
	"golang.org/x/exp/rand"
)

// VersusArena plays a series of games between two engine configurations on
// a fixed board size, grounded on the teacher's VersusArena[...] (the
// generic type parameters T/P/S/R collapse away since this module has only
// one concrete game).
type VersusArena struct {
	Stats

	Config1, Config2 mcts.Config
	BoardSize        int
	MaxMoves         int

	p1name, p2name string
}

// NewVersusArena returns an arena ready to Run; names are cosmetic labels
// for the returned Summary.
func NewVersusArena(cfg1, cfg2 mcts.Config, boardSize, maxMoves int, name1, name2 string) *VersusArena {
	return &VersusArena{
		Config1:   cfg1,
		Config2:   cfg2,
		BoardSize: boardSize,
		MaxMoves:  maxMoves,
		p1name:    name1,
		p2name:    name2,
	}
}

// Run plays nGames split evenly across nWorkers goroutines and blocks until
// every worker has finished, returning the aggregate Summary.
func (va *VersusArena) Run(nGames, nWorkers int) Summary {
	if nWorkers < 1 {
		nWorkers = 1
	}
	perWorker := nGames / nWorkers
	rest := nGames % nWorkers

	var wg sync.WaitGroup
	wg.Add(nWorkers)
	for i := 0; i < nWorkers; i++ {
		n := perWorker
		if i < rest {
			n++
		}
		go func(workerID, games int) {
			defer wg.Done()
			va.worker(workerID, games)
		}(i, n)
	}
	wg.Wait()

	return Summary{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		Draws:            va.Draws(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Workers:          nWorkers,
		P1Name:           va.p1name,
		P2Name:           va.p2name,
	}
}

func (va *VersusArena) worker(id, nGames int) {
	rng := rand.New(rand.NewSource(timeSeed(id)))

	for i := 0; i < nGames; i++ {
		p1First := rng.Intn(2) == 0

		var firstPlayerWon, isDraw bool
		if p1First {
			firstPlayerWon, isDraw = playOneGame(va.Config1, va.Config2, va.BoardSize, va.MaxMoves)
		} else {
			firstPlayerWon, isDraw = playOneGame(va.Config2, va.Config1, va.BoardSize, va.MaxMoves)
		}

		result := Draw
		if !isDraw {
			p1Won := firstPlayerWon == p1First
			if p1Won {
				result = Player1Win
			} else {
				result = Player2Win
			}
		}
		va.record(result, firstPlayerWon)
	}
}

// playOneGame runs cfgFirst against cfgSecond (cfgFirst moving as Black)
// until both pass consecutively, either resigns, or maxMoves is reached,
// then scores the board. It reports whether the first-moving side (Black)
// won and whether the game was a draw (an exact-zero official_score).
func playOneGame(cfgFirst, cfgSecond mcts.Config, boardSize, maxMoves int) (firstPlayerWon, isDraw bool) {
	b := board.New(boardSize)
	black := &mcts.Engine{Config: cfgFirst, Policy: mcts.BuildPolicy(cfgFirst.PolicyName), Driver: mcts.BuildPlayout(cfgFirst.PlayoutName)}
	white := &mcts.Engine{Config: cfgSecond, Policy: mcts.BuildPolicy(cfgSecond.PolicyName), Driver: mcts.BuildPlayout(cfgSecond.PlayoutName)}

	color := board.Black
	consecutivePasses := 0

	for ply := 0; ply < maxMoves; ply++ {
		var mover *mcts.Engine
		if color == board.Black {
			mover = black
		} else {
			mover = white
		}

		c, err := mover.GenMove(b, color)
		if err != nil {
			break
		}
		if c.IsResign() {
			return color != board.Black, false
		}

		move := board.Move{Coord: c, Color: color}
		if _, err := b.Play(move); err != nil {
			return color != board.Black, false
		}
		black.NotifyPlay(b, move)
		white.NotifyPlay(b, move)

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

	score := b.OfficialScore()
	if score == 0 {
		return false, true
	}
	return score < 0, false // Black (first mover) wants a negative score
}

// timeSeed mixes in the worker id so concurrently started workers never
// share an RNG stream.
func timeSeed(workerID int) uint64 {
	return uint64(nowNano()) ^ (uint64(workerID) << 32)
}
