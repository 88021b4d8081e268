package bench

import (
	"testing"

	"github.com/gomcts/gomcts/pkg/mcts"
)

func smallCfg() mcts.Config {
	cfg := mcts.DefaultConfig()
	cfg.Games = 30
	cfg.GameLen = 20
	return cfg
}

func TestVersusArenaTallies(t *testing.T) {
	arena := NewVersusArena(smallCfg(), smallCfg(), 5, 30, "alice", "bob")
	summary := arena.Run(4, 2)

	if summary.TotalGames != 4 {
		t.Fatalf("TotalGames = %d, want 4", summary.TotalGames)
	}
	if summary.P1Wins+summary.P2Wins+summary.Draws != 4 {
		t.Fatalf("wins+draws = %d, want 4", summary.P1Wins+summary.P2Wins+summary.Draws)
	}
	if summary.FirstToMoveWins+summary.SecondToMoveWins+summary.Draws != 4 {
		t.Fatalf("first+second+draws = %d, want 4", summary.FirstToMoveWins+summary.SecondToMoveWins+summary.Draws)
	}
	if summary.P1Name != "alice" || summary.P2Name != "bob" {
		t.Fatalf("unexpected names: %+v", summary)
	}
	if summary.Workers != 2 {
		t.Fatalf("Workers = %d, want 2", summary.Workers)
	}
}
