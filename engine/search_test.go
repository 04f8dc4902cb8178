package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"othello-engine/othello"
)

// negamax is the unpruned reference search.
func negamax(p othello.Position, depth int, passed bool, w *Weights, nodes *uint64) int {
	*nodes++
	if depth == 0 {
		if p.IsFull() {
			return FinalScore(p)
		}
		return Evaluate(p, w)
	}
	legal := othello.LegalMoves(p)
	if legal == 0 {
		if passed {
			return FinalScore(p)
		}
		return -negamax(p.Pass(), depth, true, w, nodes)
	}
	best := -Infinity
	for legal != 0 {
		c := othello.PopCell(&legal)
		best = max(best, -negamax(p.Apply(othello.ComputeFlip(p, c)), depth-1, false, w, nodes))
	}
	return best
}

func TestAlphaBetaMatchesNegamax(t *testing.T) {
	positions := randomPositions(testRNG(11), 3)
	for i, p := range positions {
		if i%3 != 0 {
			continue
		}
		for depth := 1; depth <= 4; depth++ {
			var full uint64
			want := negamax(p, depth, false, &DefaultWeights, &full)
			s := NewSearcher(nil, nil)
			if got := s.negaAlpha(p, depth, -Infinity, Infinity, false); got != want {
				t.Fatalf("depth %d: alpha-beta %d, negamax %d\n%v", depth, got, want, p)
			}
			if s.Nodes > full {
				t.Fatalf("depth %d: alpha-beta visited %d nodes, negamax %d", depth, s.Nodes, full)
			}
		}
	}
}

func TestBestMoveMatchesNegamax(t *testing.T) {
	for _, p := range randomPositions(testRNG(12), 2) {
		const depth = 3
		res, err := BestMove(p, depth, &DefaultWeights)
		if err != nil {
			t.Fatal(err)
		}
		want := -Infinity
		var nodes uint64
		legal := othello.LegalMoves(p)
		for legal != 0 {
			c := othello.PopCell(&legal)
			want = max(want, -negamax(p.Apply(othello.ComputeFlip(p, c)), depth-1, false, &DefaultWeights, &nodes))
		}
		if res.Score != want {
			t.Fatalf("best move %s scores %d, negamax %d\n%v", res.Cell, res.Score, want, p)
		}
		var check uint64
		child := p.Apply(othello.ComputeFlip(p, res.Cell))
		if got := -negamax(child, depth-1, false, &DefaultWeights, &check); got != res.Score {
			t.Fatalf("reported move %s scores %d, not %d", res.Cell, got, res.Score)
		}
	}
}

func TestBestMoveOpening(t *testing.T) {
	res, err := BestMove(othello.Initial(), 1, &DefaultWeights)
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 0 {
		t.Fatalf("opening score %d, want 0", res.Score)
	}
	switch res.Cell.String() {
	case "d3", "c4", "f5", "e6":
	default:
		t.Fatalf("opening move %s is not one of the four legal openings", res.Cell)
	}
	// Equal scores keep the lowest cell index.
	if res.Cell.String() != "e6" {
		t.Fatalf("opening move %s, want e6 (lowest index)", res.Cell)
	}
}

func TestBestMoveDeterministic(t *testing.T) {
	a, err := BestMove(othello.Initial(), 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := BestMove(othello.Initial(), 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("two searches disagree: %+v vs %+v", a, b)
	}
}

func TestDoublePassReturnsFinalScore(t *testing.T) {
	// Neither side can move: no disc touches a disc of the other side.
	board := "00......" + "........" + "........" + "........" +
		"........" + "........" + "........" + ".......1"
	p := mustBoard(t, board, 0)
	for depth := 1; depth <= 8; depth++ {
		s := NewSearcher(nil, nil)
		if got := s.negaAlpha(p, depth, -Infinity, Infinity, false); got != FinalScore(p) {
			t.Fatalf("depth %d: got %d want %d", depth, got, FinalScore(p))
		}
		if s.Nodes != 2 {
			t.Fatalf("depth %d: visited %d nodes, want the node and its pass", depth, s.Nodes)
		}
	}
	if _, err := BestMove(p, 3, nil); !errors.Is(err, ErrNoLegalMoves) {
		t.Fatalf("got %v, want ErrNoLegalMoves", err)
	}
}

func TestLastMoveScoresExactly(t *testing.T) {
	board := "0111111." + "10101010" + "01010101" + "10101010" +
		"01010101" + "10101010" + "01010101" + "10101010"
	p := mustBoard(t, board, 0)
	h1, _ := othello.ParseCell("h1")
	if othello.LegalMoves(p) != h1.Bit() {
		t.Fatalf("expected h1 as the only move\n%v", p)
	}
	want := -FinalScore(p.Apply(othello.ComputeFlip(p, h1)))
	for depth := 1; depth <= 6; depth++ {
		res, err := BestMove(p, depth, &DefaultWeights)
		if err != nil {
			t.Fatal(err)
		}
		if res.Cell != h1 || res.Score != want {
			t.Fatalf("depth %d: got %s %d, want h1 %d", depth, res.Cell, res.Score, want)
		}
	}
}

func TestBestMoveRejectsBadDepth(t *testing.T) {
	for _, depth := range []int{0, -1, MaxDepth + 1} {
		if _, err := BestMove(othello.Initial(), depth, nil); !errors.Is(err, ErrInvalidDepth) {
			t.Fatalf("depth %d: got %v, want ErrInvalidDepth", depth, err)
		}
	}
}

func TestBestMoveContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := BestMoveContext(ctx, othello.Initial(), 8, nil)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
	if res.Cell != othello.NoCell {
		t.Fatalf("cancelled search reported %s", res.Cell)
	}
	if res, err := BestMoveContext(context.Background(), othello.Initial(), 2, nil); err != nil || res.Cell == othello.NoCell {
		t.Fatalf("live context: %+v, %v", res, err)
	}
}

func TestCancelledTokenStopsSearch(t *testing.T) {
	s := NewSearcher(nil, nil)
	s.Stop.Cancel()
	if _, err := s.BestMove(othello.Initial(), 10); !errors.Is(err, ErrCancelled) {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
	if s.Nodes > 2 {
		t.Fatalf("cancelled search visited %d nodes", s.Nodes)
	}
}

func BenchmarkBestMoveDepth6(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := BestMove(othello.Initial(), 6, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func TestCutStatistics(t *testing.T) {
	s := NewSearcher(nil, nil)
	res, err := s.BestMove(othello.Initial(), 5)
	if err != nil {
		t.Fatal(err)
	}
	c := s.Cuts
	if c.BetaCutoffs == 0 {
		t.Fatal("no beta cutoffs at depth 5")
	}
	if leaves := c.EvalLeaves + c.ExactLeaves; leaves == 0 || leaves >= res.Nodes {
		t.Fatalf("%d leaves out of %d nodes", leaves, res.Nodes)
	}
	var b strings.Builder
	c.Dump(&b)
	if !strings.Contains(b.String(), "Beta cutoffs: ") {
		t.Fatalf("dump: %q", b.String())
	}
}
